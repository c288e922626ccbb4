package policy

import "fmt"

// Policy defines the interface for eviction algorithms.
// Implementations allow the cache to decouple capacity management from storage logic.
//
// A policy tracks exactly the keys the owning cache holds: the cache calls
// OnInsert/OnRemove for every insertion and removal, so the policy's
// bookkeeping and the cache's key set never drift apart.
type Policy[K comparable] interface {
	// OnInsert is called when a key is written to the cache. For a key the
	// policy already tracks this is a refresh: recency-based policies move it
	// to the most-recent position, LFU counts it as an access, and
	// insertion-order policies leave its position untouched.
	OnInsert(key K)

	// OnAccess is called when a key is read from the cache.
	// This allows policies (like LRU/LFU) to update their internal state.
	OnAccess(key K)

	// OnRemove is called when a key leaves the cache, whether by eviction or
	// by explicit delete.
	OnRemove(key K)

	// Victim returns the key that should be evicted according to the policy.
	// It is a pure peek: the cache removes the victim via OnRemove.
	// ok is false when the policy tracks no keys.
	Victim() (key K, ok bool)
}

// Kind names a built-in eviction strategy.
type Kind string

const (
	FIFO Kind = "FIFO"
	LIFO Kind = "LIFO"
	LRU  Kind = "LRU"
	MRU  Kind = "MRU"
	LFU  Kind = "LFU"
)

// New creates a policy instance for the given kind.
func New[K comparable](kind Kind) (Policy[K], error) {
	switch kind {
	case FIFO:
		return NewFIFO[K](), nil
	case LIFO:
		return NewLIFO[K](), nil
	case LRU:
		return NewLRU[K](), nil
	case MRU:
		return NewMRU[K](), nil
	case LFU:
		return NewLFU[K](), nil
	default:
		return nil, fmt.Errorf("unknown eviction policy %q", kind)
	}
}

// Compile-time interface assertions.
var (
	_ Policy[string] = (*FIFOPolicy[string])(nil)
	_ Policy[string] = (*LIFOPolicy[string])(nil)
	_ Policy[string] = (*LRUPolicy[string])(nil)
	_ Policy[string] = (*MRUPolicy[string])(nil)
	_ Policy[string] = (*LFUPolicy[string])(nil)
)
