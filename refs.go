package loom

// Ref selects the reference strategy of a singleton or multiton cache.
//
// Strong entries live for the container's lifetime. Weak and Soft entries
// may be evicted at any time and are rebuilt on the next retrieval: Weak
// uses a small LRU cache and Soft a larger frequency-aware one, approximating
// reclamation-driven references with explicit bounded eviction. ThreadLocal
// keeps one independent cache per calling goroutine.
type Ref int

const (
	Strong Ref = iota
	Weak
	Soft
	ThreadLocal
)

func (r Ref) String() string {
	switch r {
	case Strong:
		return "strong"
	case Weak:
		return "weak"
	case Soft:
		return "soft"
	case ThreadLocal:
		return "thread-local"
	default:
		return "unknown"
	}
}
