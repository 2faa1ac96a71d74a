package eval

import "github.com/nanakusa/shogo/pkg/shogi"

// NodeCache memoizes the Black-relative evaluation of a position by its
// Zobrist hash. Unlike the transposition table, it never stores search
// results -- only the static evaluation -- so it is never invalidated by
// changes to alpha/beta or search depth, and a plain size-capped map
// (rather than a replacement-aware structure) suffices: a miss just costs a
// recompute.
type NodeCache struct {
	capacity int
	entries  map[shogi.Hash]Score
}

func NewNodeCache(capacity int) *NodeCache {
	return &NodeCache{capacity: capacity, entries: make(map[shogi.Hash]Score, capacity)}
}

func (c *NodeCache) Get(hash shogi.Hash) (Score, bool) {
	v, ok := c.entries[hash]
	return v, ok
}

func (c *NodeCache) Put(hash shogi.Hash, score Score) {
	if len(c.entries) >= c.capacity {
		for k := range c.entries {
			delete(c.entries, k)
			break // evict one arbitrary entry rather than pay for a full policy
		}
	}
	c.entries[hash] = score
}
