package loom

import (
	"context"
	"log/slog"

	"github.com/mvoloskov/loom/internal/container"
	"github.com/mvoloskov/loom/internal/typekey"
)

// Resolver is the retrieval surface shared by Container and
// MutableContainer. Producers receive the Resolver their request entered
// through and resolve transitive dependencies against it with the package
// retrieval functions (Instance, Provider, Factory, ...).
type Resolver interface {
	resolve(ctx context.Context, key typekey.Key, arg any) (any, error)
	has(key typekey.Key) bool
}

// Container is an immutable façade over a finalized binding registry.
// A finalized registry is read-only, so a Container may be shared between
// goroutines without synchronization; all blocking happens inside
// synchronized reference policies.
type Container struct {
	internal *container.Container
	config   *containerConfig
}

type containerConfig struct {
	logger    *slog.Logger
	onResolve []ResolveHook
	onEager   []EagerHook
}

// New applies the configuration block, finalizes the registry, and forces
// eager singletons in registration order. An eager failure aborts
// construction.
func New(cfg ConfigFunc, opts ...Option) (*Container, error) {
	conf := &containerConfig{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(conf)
	}

	b := newBuilder()
	if cfg != nil {
		cfg(b)
	}
	if b.err != nil {
		return nil, b.err
	}

	c := &Container{config: conf}
	c.internal = container.New(
		b.internal.Build(),
		&container.Config{
			Logger:    conf.logger,
			OnResolve: resolveHooks(conf.onResolve),
			OnEager:   eagerHooks(conf.onEager),
		},
	)

	if err := c.internal.Initialize(context.Background(), c); err != nil {
		return nil, convertError(err)
	}

	for _, fn := range b.ready {
		fn()
	}
	return c, nil
}

// Extend produces a new container composed from a parent and an overriding
// configuration block: the child's bindings take precedence over the
// parent's, and parent subtype entries are consulted after the child's.
// Parent bindings keep their policy caches, so singletons built through the
// parent stay shared with the child.
func Extend(parent *Container, cfg ConfigFunc, opts ...Option) (*Container, error) {
	merged := append([]Option{WithLogger(parent.config.logger)}, opts...)
	return New(
		func(b *Builder) {
			b.Extend(parent)
			if cfg != nil {
				cfg(b)
			}
		}, merged...,
	)
}

// Extend merges an already-built parent container into the builder. Parent
// entries land as inherited bindings that later declarations shadow
// silently; a parent entry colliding with a key this builder already
// declared fails unless the composition allows overrides.
func (b *Builder) Extend(parent *Container, opts ...ComposeOption) {
	cc := newComposeConfig(opts)
	if err := b.internal.Absorb(parent.internal.Registry(), cc.allowOverride); err != nil {
		b.fail(convertError(err))
	}
}

func (c *Container) Size() int {
	return c.internal.Registry().Size()
}

func (c *Container) resolve(ctx context.Context, key typekey.Key, arg any) (any, error) {
	instance, err := c.internal.Resolve(ctx, c, arg, key)
	if err != nil {
		return nil, convertError(err)
	}
	return instance, nil
}

func (c *Container) has(key typekey.Key) bool {
	return c.internal.Has(key)
}

func resolveHooks(hooks []ResolveHook) []container.ResolveHook {
	out := make([]container.ResolveHook, 0, len(hooks))
	for _, h := range hooks {
		out = append(out, container.ResolveHook(h))
	}
	return out
}

func eagerHooks(hooks []EagerHook) []container.ResolveHook {
	out := make([]container.ResolveHook, 0, len(hooks))
	for _, h := range hooks {
		out = append(out, container.ResolveHook(h))
	}
	return out
}
