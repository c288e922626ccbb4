package sharding

import (
	"hash/crc32"
	"sort"
	"strconv"
)

// Hash maps bytes to uint32
type Hash func(data []byte) uint32

// Ring maps keys to shard indexes using consistent hashing over virtual
// nodes. Shard count is fixed at construction, so the ring is immutable and
// safe for concurrent reads without locking.
type Ring struct {
	hash         Hash
	virtualNodes int
	keys         []int       // Sorted
	hashMap      map[int]int // hash point -> shard index
}

// New creates a Ring spreading keys across shards. Each shard is placed at
// virtualNodes points on the ring to even out the distribution. A nil fn
// defaults to crc32.ChecksumIEEE.
func New(shards, virtualNodes int, fn Hash) *Ring {
	r := &Ring{
		virtualNodes: virtualNodes,
		hash:         fn,
		hashMap:      make(map[int]int),
	}
	if r.hash == nil {
		r.hash = crc32.ChecksumIEEE
	}
	for s := 0; s < shards; s++ {
		for i := 0; i < r.virtualNodes; i++ {
			hash := int(r.hash([]byte(strconv.Itoa(i) + "-" + strconv.Itoa(s))))
			r.keys = append(r.keys, hash)
			r.hashMap[hash] = s
		}
	}
	sort.Ints(r.keys)
	return r
}

// Get returns the shard index for the provided key.
func (r *Ring) Get(key string) int {
	if len(r.keys) == 0 {
		return 0
	}

	hash := int(r.hash([]byte(key)))

	// Binary search for appropriate replica
	idx := sort.Search(len(r.keys), func(i int) bool {
		return r.keys[i] >= hash
	})

	// If we have gone past the end, go back to the start
	if idx == len(r.keys) {
		idx = 0
	}

	return r.hashMap[r.keys[idx]]
}
