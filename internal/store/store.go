package store

import (
	"errors"

	"eviction-cache/internal/store/policy"
)

// ErrInvalidCapacity is returned by New when the requested capacity is not a
// positive integer. Construction fails outright; no usable cache is produced.
var ErrInvalidCapacity = errors.New("cache capacity must be a positive integer")

// Cache is a fixed-capacity in-memory key-value cache with a pluggable
// eviction policy. Capacity is set at construction and never changes; when an
// insertion would exceed it, the policy selects exactly one victim and the
// evict-then-insert pair runs inside the same Put call, so the cache is never
// observable above capacity.
//
// Cache is not safe for concurrent use. Callers that share one across
// goroutines must serialize all calls themselves, or use Sharded, which wraps
// shards of this type behind per-shard locks.
type Cache[K comparable, V any] struct {
	capacity int
	items    map[K]V
	policy   policy.Policy[K]
	onEvict  func(key K, value V)
}

// Option configures a Cache.
type Option[K comparable, V any] func(*Cache[K, V])

// WithOnEvict sets a callback invoked with each evicted key and value.
// It fires only for capacity evictions, not for explicit Remove calls.
func WithOnEvict[K comparable, V any](fn func(key K, value V)) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.onEvict = fn
	}
}

// New creates a Cache holding at most capacity entries, using pol to choose
// victims when full.
func New[K comparable, V any](capacity int, pol policy.Policy[K], opts ...Option[K, V]) (*Cache[K, V], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	c := &Cache[K, V]{
		capacity: capacity,
		items:    make(map[K]V, capacity),
		policy:   pol,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Put adds or updates a key. Updating an existing key never evicts; the
// policy treats the rewrite as a refresh (variant-dependent). Inserting into
// a full cache evicts exactly one victim first.
func (c *Cache[K, V]) Put(key K, value V) {
	if _, ok := c.items[key]; ok {
		c.items[key] = value
		c.policy.OnInsert(key)
		return
	}

	if len(c.items) == c.capacity {
		c.evictOne()
	}
	c.items[key] = value
	c.policy.OnInsert(key)
}

func (c *Cache[K, V]) evictOne() {
	victim, ok := c.policy.Victim()
	if !ok {
		return
	}
	value := c.items[victim]
	delete(c.items, victim)
	c.policy.OnRemove(victim)
	if c.onEvict != nil {
		c.onEvict(victim, value)
	}
}

// Get returns the value for a key and whether it was found. A hit counts as
// an access for the policy; a miss is an expected outcome, not an error.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	value, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.policy.OnAccess(key)
	return value, true
}

// Contains reports whether a key is present. It is a pure lookup: policy
// bookkeeping is left untouched, so probing never perturbs eviction order.
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.items[key]
	return ok
}

// Remove deletes a key and reports whether it was present.
func (c *Cache[K, V]) Remove(key K) bool {
	if _, ok := c.items[key]; !ok {
		return false
	}
	delete(c.items, key)
	c.policy.OnRemove(key)
	return true
}

// Clear removes all entries, retiring each through the policy so its
// bookkeeping stays in sync.
func (c *Cache[K, V]) Clear() {
	for key := range c.items {
		c.policy.OnRemove(key)
	}
	clear(c.items)
}

// Len returns the current number of entries.
func (c *Cache[K, V]) Len() int {
	return len(c.items)
}

// Capacity returns the configured maximum number of entries.
func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}
