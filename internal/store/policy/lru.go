package policy

import "container/list"

// LRUPolicy implements the Least Recently Used (LRU) eviction strategy.
type LRUPolicy[K comparable] struct {
	order *list.List // Front = most recently used
	items map[K]*list.Element
}

// NewLRU creates a new LRU policy instance.
func NewLRU[K comparable]() *LRUPolicy[K] {
	return &LRUPolicy[K]{
		order: list.New(),
		items: make(map[K]*list.Element),
	}
}

func (p *LRUPolicy[K]) OnInsert(key K) {
	// If already exists, just update recency
	if elem, ok := p.items[key]; ok {
		p.order.MoveToFront(elem)
		return
	}
	elem := p.order.PushFront(key)
	p.items[key] = elem
}

func (p *LRUPolicy[K]) OnAccess(key K) {
	if elem, ok := p.items[key]; ok {
		p.order.MoveToFront(elem)
	}
}

func (p *LRUPolicy[K]) OnRemove(key K) {
	if elem, ok := p.items[key]; ok {
		p.order.Remove(elem)
		delete(p.items, key)
	}
}

func (p *LRUPolicy[K]) Victim() (K, bool) {
	elem := p.order.Back()
	if elem == nil {
		var zero K
		return zero, false
	}
	return elem.Value.(K), true
}
