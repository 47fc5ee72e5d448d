package loom_test

import (
	"context"
	"fmt"
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/mvoloskov/loom"
)

type Notifier interface {
	Notify(msg string) error
}

type EmailNotifier struct {
	Sent []string
}

func (n *EmailNotifier) Notify(msg string) error {
	n.Sent = append(n.Sent, msg)
	return nil
}

type SMSNotifier struct {
	Sent []string
}

func (n *SMSNotifier) Notify(msg string) error {
	n.Sent = append(n.Sent, msg)
	return nil
}

func (n *SMSNotifier) String() string {
	return "sms"
}

func notifierDispatch(calls *atomic.Int64) func(requested reflect.Type) (*loom.BindingSpec, error) {
	return func(requested reflect.Type) (*loom.BindingSpec, error) {
		switch requested {
		case reflect.TypeOf((*EmailNotifier)(nil)):
			return loom.NewSingleton(func(ctx context.Context, r loom.Resolver) (*EmailNotifier, error) {
				calls.Add(1)
				return &EmailNotifier{}, nil
			}), nil
		case reflect.TypeOf((*SMSNotifier)(nil)):
			return loom.NewSingleton(func(ctx context.Context, r loom.Resolver) (*SMSNotifier, error) {
				calls.Add(1)
				return &SMSNotifier{}, nil
			}), nil
		default:
			return nil, nil
		}
	}
}

func TestSubtypeDispatch(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	c, err := loom.New(func(b *loom.Builder) {
		loom.BindSubtypes[Notifier](b, notifierDispatch(&calls))
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	email, err := loom.Instance[*EmailNotifier](c)
	if err != nil {
		t.Fatalf("Instance failed: %v", err)
	}
	sms, err := loom.Instance[*SMSNotifier](c)
	if err != nil {
		t.Fatalf("Instance failed: %v", err)
	}

	if email == nil || sms == nil {
		t.Fatal("dispatch should build both subtypes")
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 constructions, got %d", calls.Load())
	}
}

func TestSubtypeDispatchMemoizesPolicy(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	c, err := loom.New(func(b *loom.Builder) {
		loom.BindSubtypes[Notifier](b, notifierDispatch(&calls))
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	first := loom.MustInstance[*EmailNotifier](c)
	second := loom.MustInstance[*EmailNotifier](c)

	if first != second {
		t.Error("dispatched singleton should keep its cache across retrievals")
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 construction, got %d", calls.Load())
	}
}

func TestSubtypeDispatchUnknownType(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	c, err := loom.New(func(b *loom.Builder) {
		loom.BindSubtypes[Notifier](b, notifierDispatch(&calls))
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// *Database does not implement Notifier, so the entry is never consulted.
	_, err = loom.Instance[*Database](c)
	if !loom.IsBindingNotFound(err) {
		t.Fatalf("expected BINDING_NOT_FOUND, got %v", err)
	}
}

func TestSubtypeDispatchNilSpecIsNotFound(t *testing.T) {
	t.Parallel()

	c, err := loom.New(func(b *loom.Builder) {
		loom.BindSubtypes[any](b, func(requested reflect.Type) (*loom.BindingSpec, error) {
			return nil, nil
		})
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = loom.Instance[*Config](c)
	if !loom.IsBindingNotFound(err) {
		t.Fatalf("expected BINDING_NOT_FOUND, got %v", err)
	}
}

func TestSubtypeExactBindingWins(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	exact := &EmailNotifier{Sent: []string{"pre-wired"}}
	c, err := loom.New(func(b *loom.Builder) {
		loom.BindSubtypes[Notifier](b, notifierDispatch(&calls))
		loom.BindInstance(b, exact)
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got := loom.MustInstance[*EmailNotifier](c)
	if got != exact {
		t.Error("an exact binding should take precedence over dispatch")
	}
	if calls.Load() != 0 {
		t.Errorf("dispatch should not run, got %d constructions", calls.Load())
	}
}

func TestSubtypeTaggedRequestSkipsDispatch(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	c, err := loom.New(func(b *loom.Builder) {
		loom.BindSubtypes[Notifier](b, notifierDispatch(&calls))
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = loom.Instance[*EmailNotifier](c, loom.Tagged("primary"))
	if !loom.IsBindingNotFound(err) {
		t.Fatalf("expected BINDING_NOT_FOUND for tagged request, got %v", err)
	}
	if calls.Load() != 0 {
		t.Error("tagged requests should never reach subtype dispatch")
	}
}

func TestSubtypeFirstMatchWins(t *testing.T) {
	t.Parallel()

	// *SMSNotifier satisfies both Notifier and fmt.Stringer; the entry
	// registered first serves it.
	c, err := loom.New(func(b *loom.Builder) {
		loom.BindSubtypes[Notifier](b, func(requested reflect.Type) (*loom.BindingSpec, error) {
			return loom.NewInstance(&SMSNotifier{Sent: []string{"via-notifier"}}), nil
		})
		loom.BindSubtypes[fmt.Stringer](b, func(requested reflect.Type) (*loom.BindingSpec, error) {
			return loom.NewInstance(&SMSNotifier{Sent: []string{"via-stringer"}}), nil
		})
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got := loom.MustInstance[*SMSNotifier](c)
	if len(got.Sent) != 1 || got.Sent[0] != "via-notifier" {
		t.Errorf("expected the first registered entry to win, got %v", got.Sent)
	}
}

func TestSubtypeRejectsTag(t *testing.T) {
	t.Parallel()

	_, err := loom.New(func(b *loom.Builder) {
		loom.BindSubtypes[Notifier](b, func(requested reflect.Type) (*loom.BindingSpec, error) {
			return nil, nil
		}, loom.WithTag("primary"))
	})
	if !loom.IsInvalidBinding(err) {
		t.Fatalf("expected INVALID_BINDING, got %v", err)
	}
}

func TestSubtypeHas(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	c, err := loom.New(func(b *loom.Builder) {
		loom.BindSubtypes[Notifier](b, notifierDispatch(&calls))
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if !loom.Has[*EmailNotifier](c) {
		t.Error("Has should see dispatchable subtypes")
	}
	if loom.Has[*Database](c) {
		t.Error("Has should reject non-subtypes")
	}
	if loom.Has[*EmailNotifier](c, loom.Tagged("primary")) {
		t.Error("Has should reject tagged subtype requests")
	}
}
