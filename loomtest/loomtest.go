// Package loomtest provides helpers for wiring containers in tests:
// fatal-on-error construction, retrieval assertions, and test doubles
// installed through override extensions.
package loomtest

import (
	"github.com/mvoloskov/loom"
)

type TB interface {
	Helper()
	Fatal(args ...any)
	Fatalf(format string, args ...any)
	Cleanup(f func())
}

// New builds a container from cfg and fails the test on any configuration
// or eager-initialization error.
func New(tb TB, cfg loom.ConfigFunc, opts ...loom.Option) *loom.Container {
	tb.Helper()

	c, err := loom.New(cfg, opts...)
	if err != nil {
		tb.Fatalf("failed to build container: %v", err)
	}
	return c
}

// NewMutable builds a MutableContainer. Mutable ones are cleared on test
// cleanup so state never leaks between tests sharing one.
func NewMutable(tb TB, mutable bool, opts ...loom.Option) *loom.MutableContainer {
	tb.Helper()

	mc := loom.NewMutable(mutable, opts...)
	if mutable {
		tb.Cleanup(func() {
			if err := mc.Clear(); err != nil {
				tb.Fatalf("failed to clear container: %v", err)
			}
		})
	}
	return mc
}

// Extend returns a child of parent with cfg applied over it, the usual way
// to install test doubles: child bindings shadow the parent's without
// touching it.
func Extend(tb TB, parent *loom.Container, cfg loom.ConfigFunc) *loom.Container {
	tb.Helper()

	c, err := loom.Extend(parent, cfg)
	if err != nil {
		tb.Fatalf("failed to extend container: %v", err)
	}
	return c
}

// InitGlobal activates the process-global container for one test and
// resets it on cleanup.
func InitGlobal(tb TB, mutable bool, opts ...loom.Option) *loom.MutableContainer {
	tb.Helper()

	mc, err := loom.InitGlobal(mutable, opts...)
	if err != nil {
		tb.Fatalf("failed to init global container: %v", err)
	}
	tb.Cleanup(loom.ResetGlobal)
	return mc
}

func MustInstance[T any](tb TB, r loom.Resolver, opts ...loom.RetrieveOption) T {
	tb.Helper()

	v, err := loom.Instance[T](r, opts...)
	if err != nil {
		tb.Fatalf("failed to resolve instance: %v", err)
	}
	return v
}

func MustInstanceArg[A, T any](tb TB, r loom.Resolver, arg A, opts ...loom.RetrieveOption) T {
	tb.Helper()

	v, err := loom.InstanceArg[A, T](r, arg, opts...)
	if err != nil {
		tb.Fatalf("failed to resolve instance: %v", err)
	}
	return v
}

func AssertHas[T any](tb TB, r loom.Resolver, opts ...loom.RetrieveOption) {
	tb.Helper()

	if !loom.Has[T](r, opts...) {
		tb.Fatal("expected container to have a binding")
	}
}

func AssertNotHas[T any](tb TB, r loom.Resolver, opts ...loom.RetrieveOption) {
	tb.Helper()

	if loom.Has[T](r, opts...) {
		tb.Fatal("expected container to not have a binding")
	}
}
