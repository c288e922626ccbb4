package store

import (
	"sync"

	"eviction-cache/internal/sharding"
	"eviction-cache/internal/store/policy"
)

// DefaultShards is the shard count used when none is configured.
const DefaultShards = 16

const defaultVirtualNodes = 20

// Sharded is a concurrent front over independent Cache shards. Keys are
// routed to a shard by consistent hash and each shard is guarded by its own
// mutex, so the evict-then-insert step of a Put stays atomic with respect to
// readers of the same key.
//
// Each shard runs its own policy instance, so eviction decisions are local to
// a shard rather than global. The configured capacity is split evenly across
// shards, rounding up.
type Sharded[V any] struct {
	ring   *sharding.Ring
	shards []*shard[V]
}

type shard[V any] struct {
	mu    sync.Mutex
	cache *Cache[string, V]
}

// NewSharded creates a Sharded cache with the given total capacity and
// eviction policy kind. shards <= 0 selects DefaultShards. The optional
// onEvict callback must be safe for concurrent use; it is shared by all
// shards.
func NewSharded[V any](shards, capacity int, kind policy.Kind, opts ...Option[string, V]) (*Sharded[V], error) {
	if shards <= 0 {
		shards = DefaultShards
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if shards > capacity {
		shards = capacity
	}
	perShard := (capacity + shards - 1) / shards

	s := &Sharded[V]{
		ring:   sharding.New(shards, defaultVirtualNodes, nil),
		shards: make([]*shard[V], shards),
	}
	for i := range s.shards {
		pol, err := policy.New[string](kind)
		if err != nil {
			return nil, err
		}
		c, err := New(perShard, pol, opts...)
		if err != nil {
			return nil, err
		}
		s.shards[i] = &shard[V]{cache: c}
	}
	return s, nil
}

func (s *Sharded[V]) shardFor(key string) *shard[V] {
	return s.shards[s.ring.Get(key)]
}

// Put adds or updates a key in its shard.
func (s *Sharded[V]) Put(key string, value V) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.cache.Put(key, value)
}

// Get returns the value for a key and whether it was found.
func (s *Sharded[V]) Get(key string) (V, bool) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.cache.Get(key)
}

// Contains reports whether a key is present without touching policy state.
func (s *Sharded[V]) Contains(key string) bool {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.cache.Contains(key)
}

// Remove deletes a key and reports whether it was present.
func (s *Sharded[V]) Remove(key string) bool {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.cache.Remove(key)
}

// Len returns the total entry count across all shards.
func (s *Sharded[V]) Len() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		n += sh.cache.Len()
		sh.mu.Unlock()
	}
	return n
}

// Capacity returns the total capacity across all shards. Due to per-shard
// rounding this may slightly exceed the capacity passed to NewSharded.
func (s *Sharded[V]) Capacity() int {
	n := 0
	for _, sh := range s.shards {
		n += sh.cache.Capacity()
	}
	return n
}
