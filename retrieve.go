package loom

import (
	"context"

	"github.com/mvoloskov/loom/internal/typekey"
)

type RetrieveOption func(*retrieveConfig)

type retrieveConfig struct {
	tag any
}

func newRetrieveConfig(opts []RetrieveOption) *retrieveConfig {
	cfg := &retrieveConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Tagged selects a tagged binding instead of the untagged one.
func Tagged(tag any) RetrieveOption {
	return func(cfg *retrieveConfig) {
		cfg.tag = tag
	}
}

// Instance resolves T now, consulting the binding's reference policy, and
// surfaces any failure synchronously.
func Instance[T any](r Resolver, opts ...RetrieveOption) (T, error) {
	return InstanceCtx[T](context.Background(), r, opts...)
}

func InstanceCtx[T any](ctx context.Context, r Resolver, opts ...RetrieveOption) (T, error) {
	var zero T
	cfg := newRetrieveConfig(opts)
	key := typekey.NewTagged[T](cfg.tag)

	instance, err := r.resolve(ctx, key, nil)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, errTypeMismatch(key.String())
	}
	return typed, nil
}

func MustInstance[T any](r Resolver, opts ...RetrieveOption) T {
	v, err := Instance[T](r, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

func MustInstanceCtx[T any](ctx context.Context, r Resolver, opts ...RetrieveOption) T {
	v, err := InstanceCtx[T](ctx, r, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// InstanceArg resolves T from a factory or multiton binding over argument
// type A.
func InstanceArg[A, T any](r Resolver, arg A, opts ...RetrieveOption) (T, error) {
	return InstanceArgCtx[A, T](context.Background(), r, arg, opts...)
}

func InstanceArgCtx[A, T any](ctx context.Context, r Resolver, arg A, opts ...RetrieveOption) (T, error) {
	var zero T
	cfg := newRetrieveConfig(opts)
	key := typekey.NewWithArg[A, T](cfg.tag)

	instance, err := r.resolve(ctx, key, arg)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, errTypeMismatch(key.String())
	}
	return typed, nil
}

func MustInstanceArg[A, T any](r Resolver, arg A, opts ...RetrieveOption) T {
	v, err := InstanceArg[A, T](r, arg, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// Provider returns a function resolving T on every call. The binding must
// exist at call time; each invocation of the returned function performs a
// full direct retrieval.
func Provider[T any](r Resolver, opts ...RetrieveOption) (func() (T, error), error) {
	cfg := newRetrieveConfig(opts)
	key := typekey.NewTagged[T](cfg.tag)
	if !r.has(key) {
		var zero func() (T, error)
		return zero, errBindingNotFound(key.String())
	}

	return func() (T, error) {
		return Instance[T](r, opts...)
	}, nil
}

func MustProvider[T any](r Resolver, opts ...RetrieveOption) func() (T, error) {
	p, err := Provider[T](r, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Factory returns a function resolving T from its argument on every call.
func Factory[A, T any](r Resolver, opts ...RetrieveOption) (func(A) (T, error), error) {
	cfg := newRetrieveConfig(opts)
	key := typekey.NewWithArg[A, T](cfg.tag)
	if !r.has(key) {
		var zero func(A) (T, error)
		return zero, errBindingNotFound(key.String())
	}

	return func(arg A) (T, error) {
		return InstanceArg[A, T](r, arg, opts...)
	}, nil
}

func MustFactory[A, T any](r Resolver, opts ...RetrieveOption) func(A) (T, error) {
	f, err := Factory[A, T](r, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// Has reports whether a request for T could be served, either by an exact
// binding or through a subtype factory.
func Has[T any](r Resolver, opts ...RetrieveOption) bool {
	cfg := newRetrieveConfig(opts)
	return r.has(typekey.NewTagged[T](cfg.tag))
}

// HasArg is Has for factory and multiton bindings over argument type A.
func HasArg[A, T any](r Resolver, opts ...RetrieveOption) bool {
	cfg := newRetrieveConfig(opts)
	return r.has(typekey.NewWithArg[A, T](cfg.tag))
}
