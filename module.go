package loom

// Module is a named, reusable configuration block, composed into a
// container with Builder.Import.
type Module struct {
	name string
	cfg  ConfigFunc
}

func NewModule(name string, cfg ConfigFunc) *Module {
	return &Module{
		name: name,
		cfg:  cfg,
	}
}

func (m *Module) Name() string {
	return m.name
}

type ComposeOption func(*composeConfig)

type composeConfig struct {
	allowOverride bool
}

func newComposeConfig(opts []ComposeOption) *composeConfig {
	cfg := &composeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// AllowOverride permits the composed input to replace existing bindings:
// on Import it admits the module's explicit overrides, on Extend and the
// mutable Add* operations it lets the input land on occupied keys.
func AllowOverride() ComposeOption {
	return func(cfg *composeConfig) {
		cfg.allowOverride = true
	}
}

// Import applies a module's declarations to the builder. Explicit overrides
// inside the module are rejected unless the import carries AllowOverride;
// override permission has to be granted the whole way down.
func (b *Builder) Import(m *Module, opts ...ComposeOption) {
	cc := newComposeConfig(opts)

	prev := b.allowOverride
	b.allowOverride = prev && cc.allowOverride
	m.cfg(b)
	b.allowOverride = prev
}

// ImportOnce applies a module only if no module with the same name has been
// imported into this builder yet.
func (b *Builder) ImportOnce(m *Module, opts ...ComposeOption) {
	if b.imported[m.name] {
		return
	}
	b.imported[m.name] = true
	b.Import(m, opts...)
}
