package policy

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// NewStrong returns the default strong policy: synchronized when sync is
// true, racy-commit otherwise.
func NewStrong(sync bool) Policy {
	if sync {
		return &strongSync{slots: make(map[any]*syncSlot)}
	}
	return &strongRacy{}
}

// strongSync guarantees exactly one successful construction per slot.
// Concurrent callers of the same slot share a singleflight round: all block
// until the first completes and receive the same instance, or the same
// error, in which case the slot stays empty and a later call retries.
// Each slot carries its own flight, so unrelated slots never contend.
type strongSync struct {
	mu    sync.Mutex
	slots map[any]*syncSlot
}

type syncSlot struct {
	flight singleflight.Group
	mu     sync.RWMutex
	built  bool
	value  any
}

func (p *strongSync) Get(key any, produce Producer) (any, error) {
	p.mu.Lock()
	s, ok := p.slots[key]
	if !ok {
		s = &syncSlot{}
		p.slots[key] = s
	}
	p.mu.Unlock()

	s.mu.RLock()
	if s.built {
		v := s.value
		s.mu.RUnlock()
		return v, nil
	}
	s.mu.RUnlock()

	v, err, _ := s.flight.Do("", func() (any, error) {
		s.mu.RLock()
		built, val := s.built, s.value
		s.mu.RUnlock()
		if built {
			return val, nil
		}

		v, err := produce()
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.built, s.value = true, v
		s.mu.Unlock()
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (p *strongSync) Describe() string {
	return "strong, synchronized"
}

// strongRacy never blocks. Concurrent first callers may each run the
// producer; the first result is committed via LoadOrStore, each racer
// returns its own instance for that single call, and every later call
// observes the committed winner.
type strongRacy struct {
	slots sync.Map
}

func (p *strongRacy) Get(key any, produce Producer) (any, error) {
	if v, ok := p.slots.Load(key); ok {
		return v, nil
	}

	v, err := produce()
	if err != nil {
		return nil, err
	}

	p.slots.LoadOrStore(key, v)
	return v, nil
}

func (p *strongRacy) Describe() string {
	return "strong"
}
