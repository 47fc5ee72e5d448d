package loom_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/mvoloskov/loom"
)

func TestImport(t *testing.T) {
	t.Parallel()

	dbModule := loom.NewModule("database", func(b *loom.Builder) {
		loom.BindInstance(b, &Config{DSN: "postgres://module"})
		loom.BindSingleton(b, func(ctx context.Context, r loom.Resolver) (*Database, error) {
			cfg, err := loom.InstanceCtx[*Config](ctx, r)
			if err != nil {
				return nil, err
			}
			return &Database{Config: cfg}, nil
		})
	})

	if dbModule.Name() != "database" {
		t.Errorf("expected module name %q, got %q", "database", dbModule.Name())
	}

	c, err := loom.New(func(b *loom.Builder) {
		b.Import(dbModule)
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	db := loom.MustInstance[*Database](c)
	if db.Config.DSN != "postgres://module" {
		t.Errorf("module bindings not applied, got DSN %q", db.Config.DSN)
	}
}

func TestImportOnce(t *testing.T) {
	t.Parallel()

	var applied atomic.Int64
	m := loom.NewModule("counter", func(b *loom.Builder) {
		applied.Add(1)
		loom.BindInstance(b, &Config{})
	})

	c, err := loom.New(func(b *loom.Builder) {
		b.ImportOnce(m)
		b.ImportOnce(m)
		b.ImportOnce(m)
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if applied.Load() != 1 {
		t.Errorf("expected module applied once, got %d", applied.Load())
	}
	if !loom.Has[*Config](c) {
		t.Error("expected the module binding to be present")
	}
}

func TestImportOnceDistinguishesByName(t *testing.T) {
	t.Parallel()

	a := loom.NewModule("a", func(b *loom.Builder) {
		loom.BindConstant(b, "from", "a")
	})
	aShadow := loom.NewModule("a", func(b *loom.Builder) {
		loom.BindConstant(b, "from", "shadow")
	})

	c, err := loom.New(func(b *loom.Builder) {
		b.ImportOnce(a)
		b.ImportOnce(aShadow)
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if got := loom.MustInstance[string](c, loom.Tagged("from")); got != "a" {
		t.Errorf("same-named module should be skipped, got %q", got)
	}
}

func TestImportModuleOverrideRequiresPermission(t *testing.T) {
	t.Parallel()

	overriding := loom.NewModule("test-doubles", func(b *loom.Builder) {
		loom.BindInstance(b, &Config{DSN: "mock"}, loom.WithOverride())
	})

	_, err := loom.New(func(b *loom.Builder) {
		loom.BindInstance(b, &Config{DSN: "real"})
		b.Import(overriding)
	})
	if !loom.IsOverrideNotAllowed(err) {
		t.Fatalf("expected OVERRIDE_NOT_ALLOWED, got %v", err)
	}

	c, err := loom.New(func(b *loom.Builder) {
		loom.BindInstance(b, &Config{DSN: "real"})
		b.Import(overriding, loom.AllowOverride())
	})
	if err != nil {
		t.Fatalf("New with AllowOverride failed: %v", err)
	}

	if got := loom.MustInstance[*Config](c); got.DSN != "mock" {
		t.Errorf("expected the module override to win, got %q", got.DSN)
	}
}

func TestImportOverridePermissionDoesNotPropagate(t *testing.T) {
	t.Parallel()

	inner := loom.NewModule("inner", func(b *loom.Builder) {
		loom.BindInstance(b, &Config{DSN: "inner"}, loom.WithOverride())
	})
	outer := loom.NewModule("outer", func(b *loom.Builder) {
		b.Import(inner)
	})

	// AllowOverride on the outer import does not reach the inner one; the
	// permission has to be granted at every level.
	_, err := loom.New(func(b *loom.Builder) {
		loom.BindInstance(b, &Config{DSN: "real"})
		b.Import(outer, loom.AllowOverride())
	})
	if !loom.IsOverrideNotAllowed(err) {
		t.Fatalf("expected OVERRIDE_NOT_ALLOWED, got %v", err)
	}

	outerGranting := loom.NewModule("outer-granting", func(b *loom.Builder) {
		b.Import(inner, loom.AllowOverride())
	})
	c, err := loom.New(func(b *loom.Builder) {
		loom.BindInstance(b, &Config{DSN: "real"})
		b.Import(outerGranting, loom.AllowOverride())
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := loom.MustInstance[*Config](c); got.DSN != "inner" {
		t.Errorf("expected the nested override to win, got %q", got.DSN)
	}
}

func TestNestedModules(t *testing.T) {
	t.Parallel()

	configModule := loom.NewModule("config", func(b *loom.Builder) {
		loom.BindInstance(b, &Config{DSN: "nested"})
	})
	appModule := loom.NewModule("app", func(b *loom.Builder) {
		b.Import(configModule)
		loom.BindSingleton(b, func(ctx context.Context, r loom.Resolver) (*Database, error) {
			cfg, err := loom.InstanceCtx[*Config](ctx, r)
			if err != nil {
				return nil, err
			}
			return &Database{Config: cfg}, nil
		})
	})

	c, err := loom.New(func(b *loom.Builder) {
		b.Import(appModule)
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	db := loom.MustInstance[*Database](c)
	if db.Config.DSN != "nested" {
		t.Errorf("nested module binding not applied, got %q", db.Config.DSN)
	}
}
