package loom

import (
	"context"
	"sync"
)

// Lazy is a deferred retrieval: a memoizing thunk that performs one direct
// resolution on first Get and caches the outcome, failure included, for
// the thunk's own lifetime. That memoization is independent of any
// reference policy: two Lazy handles over the same provider binding hold
// two separate results.
type Lazy[T any] struct {
	once  sync.Once
	fetch func() (T, error)

	value T
	err   error
}

func (l *Lazy[T]) Get() (T, error) {
	l.once.Do(func() {
		l.value, l.err = l.fetch()
	})
	return l.value, l.err
}

func (l *Lazy[T]) Must() T {
	v, err := l.Get()
	if err != nil {
		panic(err)
	}
	return v
}

// LazyInstance returns a deferred handle on T. Nothing is resolved until
// Get is called; on a mutable container not even the snapshot is built.
func LazyInstance[T any](r Resolver, opts ...RetrieveOption) *Lazy[T] {
	return &Lazy[T]{
		fetch: func() (T, error) {
			return Instance[T](r, opts...)
		},
	}
}

func LazyInstanceCtx[T any](ctx context.Context, r Resolver, opts ...RetrieveOption) *Lazy[T] {
	return &Lazy[T]{
		fetch: func() (T, error) {
			return InstanceCtx[T](ctx, r, opts...)
		},
	}
}

// LazyInstanceArg returns a deferred handle on T resolved from a factory or
// multiton binding; the argument is captured now, resolution happens on
// first Get.
func LazyInstanceArg[A, T any](r Resolver, arg A, opts ...RetrieveOption) *Lazy[T] {
	return &Lazy[T]{
		fetch: func() (T, error) {
			return InstanceArg[A, T](r, arg, opts...)
		},
	}
}
