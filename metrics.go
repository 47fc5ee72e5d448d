package loom

import (
	"time"
)

// ResolveHook observes one retrieval: the rendered key, how long resolution
// took, and its outcome.
type ResolveHook func(key string, duration time.Duration, err error)

// EagerHook observes the forced construction of one eager binding during
// container finalization.
type EagerHook func(key string, duration time.Duration, err error)
