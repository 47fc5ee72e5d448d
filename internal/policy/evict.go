package policy

import (
	lru "github.com/hashicorp/golang-lru"
)

// Weak and soft policies approximate reference-based caching with explicit
// bounded eviction: an entry may be dropped at any time and Get rebuilds it
// on the next call. Weak uses a small plain LRU; soft uses a larger ARC
// cache, so entries under active use survive longer. Commits are racy:
// concurrent first callers may each build an instance, which the eviction
// contract already permits.

const (
	weakCacheSize = 64
	softCacheSize = 512
)

func NewWeak() Policy {
	c, _ := lru.New(weakCacheSize)
	return &weakPolicy{cache: c}
}

type weakPolicy struct {
	cache *lru.Cache
}

func (p *weakPolicy) Get(key any, produce Producer) (any, error) {
	if v, ok := p.cache.Get(key); ok {
		return v, nil
	}

	v, err := produce()
	if err != nil {
		return nil, err
	}

	p.cache.Add(key, v)
	return v, nil
}

func (p *weakPolicy) Describe() string {
	return "weak"
}

func NewSoft() Policy {
	c, _ := lru.NewARC(softCacheSize)
	return &softPolicy{cache: c}
}

type softPolicy struct {
	cache *lru.ARCCache
}

func (p *softPolicy) Get(key any, produce Producer) (any, error) {
	if v, ok := p.cache.Get(key); ok {
		return v, nil
	}

	v, err := produce()
	if err != nil {
		return nil, err
	}

	p.cache.Add(key, v)
	return v, nil
}

func (p *softPolicy) Describe() string {
	return "soft"
}
