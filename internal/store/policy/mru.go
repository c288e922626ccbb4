package policy

import "container/list"

// MRUPolicy implements the Most Recently Used (MRU) eviction strategy:
// the key touched last is evicted first. At capacity 1 this means every new
// key displaces the sole existing entry.
type MRUPolicy[K comparable] struct {
	order *list.List // Front = most recently used
	items map[K]*list.Element
}

// NewMRU creates a new MRU policy instance.
func NewMRU[K comparable]() *MRUPolicy[K] {
	return &MRUPolicy[K]{
		order: list.New(),
		items: make(map[K]*list.Element),
	}
}

func (p *MRUPolicy[K]) OnInsert(key K) {
	if elem, ok := p.items[key]; ok {
		p.order.MoveToFront(elem)
		return
	}
	elem := p.order.PushFront(key)
	p.items[key] = elem
}

func (p *MRUPolicy[K]) OnAccess(key K) {
	if elem, ok := p.items[key]; ok {
		p.order.MoveToFront(elem)
	}
}

func (p *MRUPolicy[K]) OnRemove(key K) {
	if elem, ok := p.items[key]; ok {
		p.order.Remove(elem)
		delete(p.items, key)
	}
}

func (p *MRUPolicy[K]) Victim() (K, bool) {
	elem := p.order.Front()
	if elem == nil {
		var zero K
		return zero, false
	}
	return elem.Value.(K), true
}
