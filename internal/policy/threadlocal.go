package policy

import (
	"github.com/timandy/routine"
)

// NewThreadScoped returns a policy whose cache is partitioned per calling
// goroutine: each goroutine owns an independent slot map, built once per
// goroutine. No cross-goroutine synchronization is needed because no state
// is shared.
func NewThreadScoped() Policy {
	return &threadScoped{local: routine.NewThreadLocal[map[any]any]()}
}

type threadScoped struct {
	local routine.ThreadLocal[map[any]any]
}

func (p *threadScoped) Get(key any, produce Producer) (any, error) {
	slots := p.local.Get()
	if slots == nil {
		slots = make(map[any]any)
		p.local.Set(slots)
	}

	if v, ok := slots[key]; ok {
		return v, nil
	}

	v, err := produce()
	if err != nil {
		return nil, err
	}

	slots[key] = v
	return v, nil
}

func (p *threadScoped) Describe() string {
	return "thread-local"
}
