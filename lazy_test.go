package loom_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/mvoloskov/loom"
)

func TestLazyMemoizesValue(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	c, err := loom.New(func(b *loom.Builder) {
		loom.BindProvider(b, func(ctx context.Context, r loom.Resolver) (*Dice, error) {
			calls.Add(1)
			return &Dice{Sides: 6}, nil
		})
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	lazy := loom.LazyInstance[*Dice](c)
	if calls.Load() != 0 {
		t.Fatal("creating a lazy handle must not resolve")
	}

	first, err := lazy.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	second, err := lazy.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	if first != second {
		t.Error("one handle should memoize one instance")
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 producer call, got %d", calls.Load())
	}

	// A second handle over the same provider binding resolves independently.
	other := loom.LazyInstance[*Dice](c).Must()
	if other == first {
		t.Error("handles should not share memoized results")
	}
}

func TestLazyMemoizesFailure(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	boom := errors.New("boom")
	c, err := loom.New(func(b *loom.Builder) {
		loom.BindProvider(b, func(ctx context.Context, r loom.Resolver) (*Database, error) {
			calls.Add(1)
			return nil, boom
		})
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	lazy := loom.LazyInstance[*Database](c)

	_, firstErr := lazy.Get()
	_, secondErr := lazy.Get()

	if !errors.Is(firstErr, boom) {
		t.Fatalf("expected the producer failure, got %v", firstErr)
	}
	if firstErr != secondErr {
		t.Error("failures should be memoized like successes")
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 producer call, got %d", calls.Load())
	}
}

func TestLazyInstanceArg(t *testing.T) {
	t.Parallel()

	c, err := loom.New(func(b *loom.Builder) {
		loom.BindFactory(b, func(ctx context.Context, r loom.Resolver, sides int) (*Dice, error) {
			return &Dice{Sides: sides}, nil
		})
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	lazy := loom.LazyInstanceArg[int, *Dice](c, 20)
	got, err := lazy.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Sides != 20 {
		t.Errorf("expected 20 sides, got %d", got.Sides)
	}
}

func TestLazyMustPanicsOnFailure(t *testing.T) {
	t.Parallel()

	c, err := loom.New(nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected Must to panic")
		}
	}()
	loom.LazyInstance[*Dice](c).Must()
}
