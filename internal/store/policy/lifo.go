package policy

import "container/list"

// LIFOPolicy implements the Last-In-First-Out (LIFO) eviction strategy:
// the most recently inserted key is evicted first.
type LIFOPolicy[K comparable] struct {
	order *list.List
	items map[K]*list.Element
}

// NewLIFO creates a new LIFO policy instance.
func NewLIFO[K comparable]() *LIFOPolicy[K] {
	return &LIFOPolicy[K]{
		order: list.New(),
		items: make(map[K]*list.Element),
	}
}

func (p *LIFOPolicy[K]) OnInsert(key K) {
	// Like FIFO, rewriting a key keeps its original insertion position.
	if _, ok := p.items[key]; ok {
		return
	}
	elem := p.order.PushBack(key)
	p.items[key] = elem
}

func (p *LIFOPolicy[K]) OnAccess(key K) {
	// LIFO does not change order on access
}

func (p *LIFOPolicy[K]) OnRemove(key K) {
	if elem, ok := p.items[key]; ok {
		p.order.Remove(elem)
		delete(p.items, key)
	}
}

func (p *LIFOPolicy[K]) Victim() (K, bool) {
	elem := p.order.Back() // The newest element
	if elem == nil {
		var zero K
		return zero, false
	}
	return elem.Value.(K), true
}
