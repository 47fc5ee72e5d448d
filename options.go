package loom

import "log/slog"

type Option func(*containerConfig)

func WithLogger(logger *slog.Logger) Option {
	return func(cfg *containerConfig) {
		cfg.logger = logger
	}
}

func WithResolveObserver(hook ResolveHook) Option {
	return func(cfg *containerConfig) {
		cfg.onResolve = append(cfg.onResolve, hook)
	}
}

func WithEagerObserver(hook EagerHook) Option {
	return func(cfg *containerConfig) {
		cfg.onEager = append(cfg.onEager, hook)
	}
}
