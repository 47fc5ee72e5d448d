package container

import (
	"context"
	"log/slog"
	"time"

	"github.com/mvoloskov/loom/internal/typekey"
)

// ResolveHook observes one resolution attempt.
type ResolveHook func(key string, duration time.Duration, err error)

type Container struct {
	registry *Registry
	logger   *slog.Logger

	onResolve []ResolveHook
	onEager   []ResolveHook
}

type Config struct {
	Logger    *slog.Logger
	OnResolve []ResolveHook
	OnEager   []ResolveHook
}

func New(registry *Registry, cfg *Config) *Container {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Container{
		registry:  registry,
		logger:    logger,
		onResolve: cfg.OnResolve,
		onEager:   cfg.OnEager,
	}
}

func (c *Container) Registry() *Registry {
	return c.registry
}

// Has reports whether a request for key could be served: an exact binding,
// or a subtype-factory entry covering the bound type for untagged requests.
func (c *Container) Has(key typekey.Key) bool {
	if _, ok := c.registry.Lookup(key); ok {
		return true
	}
	if key.Tag != nil {
		return false
	}
	for _, e := range c.registry.subtypes {
		if key.Bound.IsSubtypeOf(e.bound) {
			return true
		}
	}
	return false
}

// Initialize forces every eager binding in registration order. Called once,
// right after the registry is finalized; the first failure aborts the whole
// initialization.
func (c *Container) Initialize(ctx context.Context, scope any) error {
	for _, key := range c.registry.order {
		binding := c.registry.exact[key]
		if !binding.Eager {
			continue
		}

		c.logger.Debug("initializing eager binding", "key", key.String())

		start := time.Now()
		_, err := c.Resolve(ctx, scope, nil, key)
		for _, hook := range c.onEager {
			hook(key.String(), time.Since(start), err)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
