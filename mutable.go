package loom

import (
	"context"
	"sync"

	"github.com/mvoloskov/loom/internal/typekey"
)

// MutableContainer is a configurable wrapper around Container. Configuration
// inputs (config blocks, module imports, parent extensions) accumulate and
// are only materialized into an immutable snapshot when the first retrieval
// arrives; any further configuration invalidates the snapshot and the next
// retrieval rebuilds it.
//
// A MutableContainer constructed non-mutable admits exactly one
// configuration call; every later AddConfig, AddImport, AddExtend or Clear
// fails with MUTATION_NOT_ALLOWED.
//
// One mutex guards configuration and snapshot rebuild, so the
// build-then-notify sequence is atomic with respect to concurrent
// configuration and retrieval.
type MutableContainer struct {
	mu         sync.Mutex
	mutable    bool
	configured bool

	inputs []func(b *Builder)
	opts   []Option

	snapshot *Container
	ready    []func()
	fired    bool
}

func NewMutable(mutable bool, opts ...Option) *MutableContainer {
	return &MutableContainer{
		mutable: mutable,
		opts:    opts,
	}
}

func (mc *MutableContainer) Mutable() bool {
	return mc.mutable
}

// AddConfig appends a configuration block. With AllowOverride, declarations
// in the block land on occupied keys without per-declaration override
// flags.
func (mc *MutableContainer) AddConfig(cfg ConfigFunc, opts ...ComposeOption) error {
	cc := newComposeConfig(opts)
	return mc.addInput(func(b *Builder) {
		if cc.allowOverride {
			prev := b.silentOverride
			b.silentOverride = true
			cfg(b)
			b.silentOverride = prev
			return
		}
		cfg(b)
	})
}

// AddImport appends a module as a composition input.
func (mc *MutableContainer) AddImport(m *Module, opts ...ComposeOption) error {
	return mc.addInput(func(b *Builder) {
		b.Import(m, opts...)
	})
}

// AddExtend appends an already-built container as a composition input.
func (mc *MutableContainer) AddExtend(parent *Container, opts ...ComposeOption) error {
	return mc.addInput(func(b *Builder) {
		b.Extend(parent, opts...)
	})
}

func (mc *MutableContainer) addInput(input func(b *Builder)) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if !mc.mutable && mc.configured {
		return errMutationNotAllowed("configuration")
	}

	mc.inputs = append(mc.inputs, input)
	mc.configured = true
	mc.snapshot = nil
	mc.fired = false
	return nil
}

// Clear discards all configuration inputs and the cached snapshot.
// Registered ready callbacks survive and fire again after the next
// configure-and-retrieve cycle.
func (mc *MutableContainer) Clear() error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if !mc.mutable {
		return errMutationNotAllowed("clear")
	}

	mc.inputs = nil
	mc.configured = false
	mc.snapshot = nil
	mc.fired = false
	return nil
}

// OnReady registers a callback run exactly once per snapshot, immediately
// after the first successful build triggered by a retrieval. It never runs
// during AddConfig itself.
func (mc *MutableContainer) OnReady(fn func()) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.ready = append(mc.ready, fn)
}

// Container builds the snapshot if needed and returns it. Ready callbacks
// pending for this snapshot fire before it returns.
func (mc *MutableContainer) Container() (*Container, error) {
	return mc.ensure()
}

func (mc *MutableContainer) ensure() (*Container, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if mc.snapshot == nil {
		inputs := mc.inputs
		c, err := New(
			func(b *Builder) {
				for _, input := range inputs {
					input(b)
				}
			}, mc.opts...,
		)
		if err != nil {
			return nil, err
		}
		mc.snapshot = c
	}

	if !mc.fired {
		for _, fn := range mc.ready {
			fn()
		}
		mc.fired = true
	}
	return mc.snapshot, nil
}

func (mc *MutableContainer) resolve(ctx context.Context, key typekey.Key, arg any) (any, error) {
	c, err := mc.ensure()
	if err != nil {
		return nil, err
	}
	return c.resolve(ctx, key, arg)
}

func (mc *MutableContainer) has(key typekey.Key) bool {
	c, err := mc.ensure()
	if err != nil {
		return false
	}
	return c.has(key)
}
