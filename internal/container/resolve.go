package container

import (
	"context"
	"errors"
	"time"

	"github.com/mvoloskov/loom/internal/typekey"
)

// Resolve serves one retrieval request: exact lookup first, then the
// subtype-factory list in registration order, first match wins. The scope
// is threaded through to the producer so transitive dependencies resolve
// against the requesting container.
func (c *Container) Resolve(ctx context.Context, scope, arg any, key typekey.Key) (any, error) {
	start := time.Now()

	result, err := c.resolve(ctx, scope, arg, key)

	for _, hook := range c.onResolve {
		hook(key.String(), time.Since(start), err)
	}
	return result, err
}

func (c *Container) resolve(ctx context.Context, scope, arg any, key typekey.Key) (any, error) {
	binding, ok := c.registry.Lookup(key)
	if !ok {
		var err error
		binding, err = c.subtypeBinding(key)
		if err != nil {
			var nf *NotFoundError
			if errors.As(err, &nf) {
				return nil, err
			}
			return nil, &ProduceError{Key: key, Cause: err}
		}
		if binding == nil {
			return nil, &NotFoundError{Key: key}
		}
	}

	c.logger.Debug("resolving binding", "key", key.String(), "kind", binding.Kind.String())

	produce := func() (any, error) {
		instance, err := binding.Produce(ctx, scope, arg)
		if err != nil {
			return nil, &ProduceError{Key: key, Cause: err}
		}
		return instance, nil
	}

	if binding.Policy == nil {
		return produce()
	}

	slot := any(unitKey{})
	if key.HasArg() {
		slot = arg
	}
	return binding.Policy.Get(slot, produce)
}

// subtypeBinding scans the subtype-factory list for the first entry whose
// bound type covers the requested one. Subtype entries are keyed by bound
// type only, so tagged requests never consult them.
func (c *Container) subtypeBinding(key typekey.Key) (*Binding, error) {
	if key.Tag != nil {
		return nil, nil
	}
	for _, e := range c.registry.subtypes {
		if key.Bound.IsSubtypeOf(e.bound) {
			return e.bindingFor(key.Bound)
		}
	}
	return nil, nil
}
