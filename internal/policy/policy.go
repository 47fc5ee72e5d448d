// Package policy implements the reference policies consulted by singleton
// and multiton bindings: each policy owns a cache of built instances, keyed
// per slot, and decides how many times a producer may run and how its result
// is shared between callers.
package policy

// Producer builds one instance for a cache slot.
type Producer func() (any, error)

// Policy is a caching strategy. Get returns the instance cached under key,
// invoking produce as required by the policy's guarantee. The key is
// struct{}{} for singletons and the factory argument for multitons.
type Policy interface {
	Get(key any, produce Producer) (any, error)
	Describe() string
}
