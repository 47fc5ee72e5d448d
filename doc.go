// Package loom is a type-key dependency-injection container for Go 1.25+.
//
// Bindings map a type key (bound type, optional tag, optional argument
// type) to a construction recipe, and the container lazily builds and
// caches object graphs from them. Client code declares bindings once and
// retrieves fully wired instances by type.
//
// # Quick Start
//
// Build a container from a configuration block and retrieve by type:
//
//	c, err := loom.New(func(b *loom.Builder) {
//	    loom.BindSingleton(b, func(ctx context.Context, r loom.Resolver) (*Database, error) {
//	        cfg, err := loom.Instance[*Config](r)
//	        if err != nil {
//	            return nil, err
//	        }
//	        return OpenDatabase(cfg.DSN)
//	    })
//	    loom.BindInstance(b, &Config{DSN: "postgres://localhost"})
//	})
//
//	db, err := loom.Instance[*Database](c)
//
// # Binding kinds
//
//	loom.BindProvider(b, fn)       // new instance on every retrieval
//	loom.BindSingleton(b, fn)      // one instance, built on first retrieval
//	loom.BindFactory[Arg](b, fn)   // new instance from an argument
//	loom.BindMultiton[Arg](b, fn)  // one instance per distinct argument value
//	loom.BindInstance(b, value)    // an already-built value
//	loom.BindConstant(b, tag, v)   // a tagged value
//	loom.BindSubtypes[T](b, fn)    // dispatch on the requested subtype of T
//
// # Tags
//
// Several bindings of one type coexist under distinct comparable tags:
//
//	loom.BindSingleton(b, newPrimary, loom.WithTag("primary"))
//	loom.BindSingleton(b, newReplica, loom.WithTag("replica"))
//
//	db, err := loom.Instance[*Database](c, loom.Tagged("primary"))
//
// # Reference policies
//
// Singletons and multitons cache under a pluggable reference policy. The
// default is strong and synchronized: exactly one construction, concurrent
// first retrievals block and share the instance.
//
//	loom.BindSingleton(b, fn)                            // strong, synchronized
//	loom.BindSingleton(b, fn, loom.WithSync(false))      // racy commit, never blocks
//	loom.BindSingleton(b, fn, loom.WithRef(loom.Weak))   // evictable, rebuilt on miss
//	loom.BindSingleton(b, fn, loom.WithRef(loom.ThreadLocal)) // one per goroutine
//
// # Eager singletons
//
// An eager singleton is forced while New finalizes the container, before
// any retrieval; a failure aborts construction:
//
//	loom.BindSingleton(b, fn, loom.WithEager())
//
// # Retrieval
//
//	v, err := loom.Instance[T](c)               // resolve now
//	v := loom.MustInstance[T](c)                // panic on failure
//	p, err := loom.Provider[T](c)               // func() (T, error), resolves per call
//	f, err := loom.Factory[Arg, T](c)           // func(Arg) (T, error)
//	v, err := loom.InstanceArg[Arg, T](c, arg)  // factory/multiton retrieval
//	l := loom.LazyInstance[T](c)                // deferred, memoized thunk
//
// Lazy handles resolve on first Get and memoize the outcome, failures
// included, independently of any reference policy.
//
// # Modules
//
// Group declarations into named, reusable modules:
//
//	var dbModule = loom.NewModule("database", func(b *loom.Builder) {
//	    loom.BindSingleton(b, newPool)
//	})
//
//	c, err := loom.New(func(b *loom.Builder) {
//	    b.Import(dbModule)
//	    b.ImportOnce(dbModule) // skipped, already imported
//	})
//
// # Overrides
//
// Re-declaring an occupied key fails unless the declaration carries
// loom.WithOverride, and a module's overrides are rejected unless imported
// with loom.AllowOverride:
//
//	loom.BindSingleton(b, newMock, loom.WithOverride())
//	b.Import(testModule, loom.AllowOverride())
//
// # Extension
//
// Extend composes a child container over a parent: child bindings shadow
// the parent's, and parent singletons keep their caches:
//
//	child, err := loom.Extend(parent, func(b *loom.Builder) {
//	    loom.BindInstance(b, &Config{DSN: "postgres://test"})
//	})
//
// # Mutable containers
//
// A MutableContainer accumulates configuration and builds an immutable
// snapshot lazily, on first retrieval. Constructed non-mutable, it accepts
// exactly one configuration call:
//
//	mc := loom.NewMutable(true)
//	mc.AddConfig(func(b *loom.Builder) { ... })
//	mc.OnReady(func() { log.Println("wired") })
//	v, err := loom.Instance[T](mc) // builds the snapshot, fires OnReady
//
// The process-global container is explicit: loom.InitGlobal activates it,
// loom.Global accesses it, loom.ResetGlobal tears it down for tests.
//
// # Diagnostics
//
//	c.PrintBindings()             // text listing, registration order
//	s := c.SprintBindings()
//	js, err := c.BindingsJSON()   // JSON dump
//	infos := c.Bindings()         // structured []BindingInfo
//
// # Observability
//
//	c, err := loom.New(cfg,
//	    loom.WithResolveObserver(func(key string, d time.Duration, err error) {
//	        metrics.RecordResolve(key, d, err)
//	    }),
//	    loom.WithEagerObserver(func(key string, d time.Duration, err error) {
//	        metrics.RecordEagerInit(key, d, err)
//	    }),
//	)
package loom
