package container

import (
	"context"
	"sync"

	"github.com/mvoloskov/loom/internal/policy"
	"github.com/mvoloskov/loom/internal/typekey"
)

type Kind int

const (
	KindProvider Kind = iota
	KindSingleton
	KindFactory
	KindMultiton
	KindInstance
	KindSubtypeFactory
)

func (k Kind) String() string {
	switch k {
	case KindProvider:
		return "provider"
	case KindSingleton:
		return "singleton"
	case KindFactory:
		return "factory"
	case KindMultiton:
		return "multiton"
	case KindInstance:
		return "instance"
	case KindSubtypeFactory:
		return "subtype factory"
	default:
		return "unknown"
	}
}

// ProduceFunc builds one instance. The scope is the container the request
// entered through; producers resolve their own dependencies against it.
// Provider, singleton and instance bindings ignore arg.
type ProduceFunc func(ctx context.Context, scope, arg any) (any, error)

// Binding is the recipe for satisfying one key. The policy cache, when
// present, lives for as long as the binding object itself.
type Binding struct {
	Kind    Kind
	Produce ProduceFunc
	Policy  policy.Policy
	Eager   bool
}

func (b *Binding) Describe() string {
	s := b.Kind.String()
	if b.Eager {
		s = "eager " + s
	}
	if b.Policy != nil {
		s += " [" + b.Policy.Describe() + "]"
	}
	return s
}

// DispatchFunc maps a concrete requested type to the binding serving it.
// Evaluated during resolution for subtype-factory entries.
type DispatchFunc func(requested typekey.Type) (*Binding, error)

// subtypeEntry is a dispatch registration against a broad bound type. The
// dispatched binding is not entered into the registry, but it is memoized
// per concrete type so its own policy cache survives across calls.
type subtypeEntry struct {
	bound    typekey.Type
	dispatch DispatchFunc

	cache sync.Map // reflect.Type -> *Binding
}

func (e *subtypeEntry) bindingFor(requested typekey.Type) (*Binding, error) {
	if v, ok := e.cache.Load(requested.Reflect()); ok {
		return v.(*Binding), nil
	}

	b, err := e.dispatch(requested)
	if err != nil {
		return nil, err
	}

	actual, _ := e.cache.LoadOrStore(requested.Reflect(), b)
	return actual.(*Binding), nil
}

// unitKey is the cache slot key for argument-less bindings.
type unitKey struct{}
