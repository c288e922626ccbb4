package policy

import "container/list"

// FIFOPolicy implements the First-In-First-Out (FIFO) eviction strategy.
type FIFOPolicy[K comparable] struct {
	order *list.List
	items map[K]*list.Element
}

// NewFIFO creates a new FIFO policy instance.
func NewFIFO[K comparable]() *FIFOPolicy[K] {
	return &FIFOPolicy[K]{
		order: list.New(),
		items: make(map[K]*list.Element),
	}
}

func (p *FIFOPolicy[K]) OnInsert(key K) {
	// Rewriting a key does not reset its age; only insertion order counts.
	if _, ok := p.items[key]; ok {
		return
	}
	elem := p.order.PushBack(key)
	p.items[key] = elem
}

func (p *FIFOPolicy[K]) OnAccess(key K) {
	// FIFO does not change order on access
}

func (p *FIFOPolicy[K]) OnRemove(key K) {
	if elem, ok := p.items[key]; ok {
		p.order.Remove(elem)
		delete(p.items, key)
	}
}

func (p *FIFOPolicy[K]) Victim() (K, bool) {
	elem := p.order.Front() // The oldest element
	if elem == nil {
		var zero K
		return zero, false
	}
	return elem.Value.(K), true
}
