package loom

import (
	"context"
	"reflect"

	"github.com/mvoloskov/loom/internal/container"
	"github.com/mvoloskov/loom/internal/policy"
	"github.com/mvoloskov/loom/internal/typekey"
)

// Builder accumulates binding declarations and composition inputs while a
// container is being configured. Config blocks receive a Builder and call
// the Bind* functions on it; the first error is kept and fails New even
// when individual return values go unchecked.
type Builder struct {
	internal *container.Builder
	err      error

	// Explicit overrides inside an imported module are rejected unless the
	// import allowed them.
	allowOverride bool
	// Declarations land silently on occupied keys while a block added with
	// override permission is applied.
	silentOverride bool

	imported map[string]bool
	ready    []func()
}

// ConfigFunc is one configuration block: a batch of declarations applied to
// a Builder.
type ConfigFunc func(b *Builder)

func newBuilder() *Builder {
	return &Builder{
		internal:      container.NewBuilder(),
		allowOverride: true,
		imported:      make(map[string]bool),
	}
}

// OnReady registers a callback run once the container under construction
// has been finalized, after its eager bindings are forced. On a mutable
// container this happens when the snapshot is built, not when the block is
// added.
func (b *Builder) OnReady(fn func()) {
	b.ready = append(b.ready, fn)
}

func (b *Builder) fail(err error) error {
	if b.err == nil {
		b.err = err
	}
	return err
}

type BindOption func(*bindConfig)

type bindConfig struct {
	tag      any
	override bool
	eager    bool
	sync     bool
	ref      Ref
}

func newBindConfig(opts []BindOption) *bindConfig {
	cfg := &bindConfig{sync: true, ref: Strong}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (cfg *bindConfig) policy() policy.Policy {
	switch cfg.ref {
	case Weak:
		return policy.NewWeak()
	case Soft:
		return policy.NewSoft()
	case ThreadLocal:
		return policy.NewThreadScoped()
	default:
		return policy.NewStrong(cfg.sync)
	}
}

// WithTag disambiguates several bindings of the same type. Tags must be
// comparable values: strings, integers, or immutable value structs.
func WithTag(tag any) BindOption {
	return func(cfg *bindConfig) {
		cfg.tag = tag
	}
}

// WithOverride declares that this binding replaces an existing one at the
// same key. Declaring it against an occupied key without this flag fails
// with OVERRIDE_NOT_ALLOWED.
func WithOverride() BindOption {
	return func(cfg *bindConfig) {
		cfg.override = true
	}
}

// WithEager forces a singleton during container finalization instead of at
// first retrieval.
func WithEager() BindOption {
	return func(cfg *bindConfig) {
		cfg.eager = true
	}
}

// WithSync selects between the synchronized strong policy (default) and the
// non-blocking racy-commit one. Ignored by Weak, Soft and ThreadLocal refs.
func WithSync(sync bool) BindOption {
	return func(cfg *bindConfig) {
		cfg.sync = sync
	}
}

// WithRef selects the reference strategy of the binding's cache.
func WithRef(ref Ref) BindOption {
	return func(cfg *bindConfig) {
		cfg.ref = ref
	}
}

func (b *Builder) add(key typekey.Key, spec *BindingSpec, cfg *bindConfig) error {
	if cfg.override && !b.allowOverride {
		return b.fail(errOverrideNotAllowed(key.String()))
	}

	override := cfg.override || b.silentOverride
	if err := b.internal.Bind(key, spec.binding, override); err != nil {
		return b.fail(convertError(err))
	}
	return nil
}

// BindProvider binds T to a producer invoked on every retrieval.
func BindProvider[T any](b *Builder, fn func(ctx context.Context, r Resolver) (T, error), opts ...BindOption) error {
	cfg := newBindConfig(opts)
	return b.add(typekey.NewTagged[T](cfg.tag), NewProvider(fn), cfg)
}

// BindSingleton binds T to a producer invoked at most once, under the
// reference policy selected by the options.
func BindSingleton[T any](b *Builder, fn func(ctx context.Context, r Resolver) (T, error), opts ...BindOption) error {
	cfg := newBindConfig(opts)
	return b.add(typekey.NewTagged[T](cfg.tag), NewSingleton(fn, opts...), cfg)
}

// BindFactory binds T to a producer taking one argument of type A, invoked
// on every retrieval. Multi-parameter factories take one composite struct
// argument.
func BindFactory[A, T any](b *Builder, fn func(ctx context.Context, r Resolver, arg A) (T, error), opts ...BindOption) error {
	cfg := newBindConfig(opts)
	return b.add(typekey.NewWithArg[A, T](cfg.tag), NewFactory(fn), cfg)
}

// BindMultiton binds T to a per-argument singleton over A: value-equal
// arguments share one instance.
func BindMultiton[A, T any](b *Builder, fn func(ctx context.Context, r Resolver, arg A) (T, error), opts ...BindOption) error {
	cfg := newBindConfig(opts)
	return b.add(typekey.NewWithArg[A, T](cfg.tag), NewMultiton(fn, opts...), cfg)
}

// BindInstance binds T to an already-constructed value.
func BindInstance[T any](b *Builder, value T, opts ...BindOption) error {
	cfg := newBindConfig(opts)
	return b.add(typekey.NewTagged[T](cfg.tag), NewInstance(value), cfg)
}

// BindConstant binds a tagged value. Constants are instance bindings
// restricted to tag-bearing value payloads: primitives or immutable value
// objects.
func BindConstant[T any](b *Builder, tag any, value T, opts ...BindOption) error {
	if tag == nil {
		return b.fail(errInvalidBinding(typekey.New[T]().String(), "constant requires a tag"))
	}
	opts = append(opts, WithTag(tag))
	return BindInstance(b, value, opts...)
}

// BindSubtypes registers a dispatch function for T: any untagged request
// for a subtype of T with no exact binding is served by the binding the
// dispatch function returns for that concrete type. The dispatched binding
// is not entered into the registry, but its policy cache persists, keyed by
// the concrete type.
func BindSubtypes[T any](b *Builder, dispatch func(requested reflect.Type) (*BindingSpec, error), opts ...BindOption) error {
	cfg := newBindConfig(opts)
	bound := typekey.Of[T]()
	if cfg.tag != nil {
		return b.fail(errInvalidBinding(bound.String(), "subtype bindings are keyed by type only and cannot carry a tag"))
	}

	b.internal.BindSubtype(bound, func(requested typekey.Type) (*container.Binding, error) {
		spec, err := dispatch(requested.Reflect())
		if err != nil {
			return nil, err
		}
		if spec == nil {
			return nil, &container.NotFoundError{Key: typekey.Key{Bound: requested}}
		}
		return spec.binding, nil
	})
	return nil
}
