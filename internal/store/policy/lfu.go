package policy

import "container/heap"

// lfuItem represents an item in the priority queue.
type lfuItem[K comparable] struct {
	key       K
	frequency int
	seq       uint64 // insertion sequence, breaks frequency ties
	index     int    // The index of the item in the heap.
}

// lfuQueue implements heap.Interface and holds items ordered by frequency,
// then by insertion sequence so ties evict the earliest-inserted key.
type lfuQueue[K comparable] []*lfuItem[K]

func (pq lfuQueue[K]) Len() int { return len(pq) }

func (pq lfuQueue[K]) Less(i, j int) bool {
	// Min-heap: lowest frequency first, earliest inserted on ties
	if pq[i].frequency != pq[j].frequency {
		return pq[i].frequency < pq[j].frequency
	}
	return pq[i].seq < pq[j].seq
}

func (pq lfuQueue[K]) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *lfuQueue[K]) Push(x any) {
	n := len(*pq)
	item := x.(*lfuItem[K])
	item.index = n
	*pq = append(*pq, item)
}

func (pq *lfuQueue[K]) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // avoid memory leak
	item.index = -1 // for safety
	*pq = old[0 : n-1]
	return item
}

// LFUPolicy implements the Least Frequently Used (LFU) eviction strategy.
// Victim selection is O(log n) via a min-heap keyed on (frequency, insertion
// sequence); the sequence keeps ties deterministic.
type LFUPolicy[K comparable] struct {
	pq      lfuQueue[K]
	items   map[K]*lfuItem[K]
	nextSeq uint64
}

// NewLFU creates a new LFU policy instance.
func NewLFU[K comparable]() *LFUPolicy[K] {
	return &LFUPolicy[K]{
		pq:    make(lfuQueue[K], 0),
		items: make(map[K]*lfuItem[K]),
	}
}

func (p *LFUPolicy[K]) OnInsert(key K) {
	// Rewriting an existing key counts as an access; the original insertion
	// sequence is kept so tie-breaking stays stable.
	if item, ok := p.items[key]; ok {
		item.frequency++
		heap.Fix(&p.pq, item.index)
		return
	}
	p.nextSeq++
	item := &lfuItem[K]{
		key:       key,
		frequency: 1,
		seq:       p.nextSeq,
	}
	heap.Push(&p.pq, item)
	p.items[key] = item
}

func (p *LFUPolicy[K]) OnAccess(key K) {
	if item, ok := p.items[key]; ok {
		item.frequency++
		heap.Fix(&p.pq, item.index)
	}
}

func (p *LFUPolicy[K]) OnRemove(key K) {
	if item, ok := p.items[key]; ok {
		heap.Remove(&p.pq, item.index)
		delete(p.items, key)
	}
}

func (p *LFUPolicy[K]) Victim() (K, bool) {
	if len(p.pq) == 0 {
		var zero K
		return zero, false
	}
	// Peek the min item
	return p.pq[0].key, true
}
