package loom

import (
	"context"
	"fmt"

	"github.com/mvoloskov/loom/internal/container"
	"github.com/mvoloskov/loom/internal/typekey"
)

// BindingSpec is a type-erased binding recipe. Specs are produced by the
// New* constructors and consumed by the Bind* declaration functions and by
// subtype dispatch functions.
type BindingSpec struct {
	binding *container.Binding
}

// NewProvider describes a binding whose producer runs on every retrieval.
func NewProvider[T any](fn func(ctx context.Context, r Resolver) (T, error)) *BindingSpec {
	return &BindingSpec{
		binding: &container.Binding{
			Kind:    container.KindProvider,
			Produce: wrapProducer(fn),
		},
	}
}

// NewSingleton describes a binding whose producer runs once, under the
// reference policy selected by the options (WithSync, WithRef).
func NewSingleton[T any](fn func(ctx context.Context, r Resolver) (T, error), opts ...BindOption) *BindingSpec {
	cfg := newBindConfig(opts)
	return &BindingSpec{
		binding: &container.Binding{
			Kind:    container.KindSingleton,
			Produce: wrapProducer(fn),
			Policy:  cfg.policy(),
			Eager:   cfg.eager,
		},
	}
}

// NewFactory describes a binding whose producer runs on every retrieval
// with the caller-supplied argument.
func NewFactory[A, T any](fn func(ctx context.Context, r Resolver, arg A) (T, error)) *BindingSpec {
	return &BindingSpec{
		binding: &container.Binding{
			Kind:    container.KindFactory,
			Produce: wrapFactory(fn),
		},
	}
}

// NewMultiton describes a per-argument singleton: one cached instance per
// distinct argument value, under the policy selected by the options.
func NewMultiton[A, T any](fn func(ctx context.Context, r Resolver, arg A) (T, error), opts ...BindOption) *BindingSpec {
	cfg := newBindConfig(opts)
	return &BindingSpec{
		binding: &container.Binding{
			Kind:    container.KindMultiton,
			Produce: wrapFactory(fn),
			Policy:  cfg.policy(),
		},
	}
}

// NewInstance describes a binding that always returns value.
func NewInstance[T any](value T) *BindingSpec {
	return &BindingSpec{
		binding: &container.Binding{
			Kind: container.KindInstance,
			Produce: func(ctx context.Context, scope, arg any) (any, error) {
				return value, nil
			},
		},
	}
}

func wrapProducer[T any](fn func(ctx context.Context, r Resolver) (T, error)) container.ProduceFunc {
	return func(ctx context.Context, scope, _ any) (any, error) {
		return fn(ctx, scope.(Resolver))
	}
}

func wrapFactory[A, T any](fn func(ctx context.Context, r Resolver, arg A) (T, error)) container.ProduceFunc {
	return func(ctx context.Context, scope, arg any) (any, error) {
		typed, ok := arg.(A)
		if !ok {
			return nil, fmt.Errorf("factory argument is %T, want %s", arg, typekey.Of[A]())
		}
		return fn(ctx, scope.(Resolver), typed)
	}
}
