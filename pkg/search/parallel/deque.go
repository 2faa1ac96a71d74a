package parallel

import (
	"sync"

	"github.com/nanakusa/shogo/pkg/shogi"
)

// workItem is one root move assigned to a worker's deque.
type workItem struct {
	move shogi.Move
}

// deque is a double-ended queue of root work: its owner pushes and pops
// from the tail (LIFO, good cache locality on the owner's own recent
// work), while idle workers steal from the head (FIFO, so a thief takes
// the oldest, presumably cheapest-to-finish-first, item). Guarded by a
// plain mutex: the pack has no lock-free deque and root-move counts are
// small (≤ a few hundred), so contention is not worth a lock-free
// structure's complexity.
type deque struct {
	mu    sync.Mutex
	items []workItem
}

func newDeque(items []workItem) *deque {
	return &deque{items: items}
}

func (d *deque) popTail() (workItem, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.items) == 0 {
		return workItem{}, false
	}
	last := d.items[len(d.items)-1]
	d.items = d.items[:len(d.items)-1]
	return last, true
}

func (d *deque) stealHead() (workItem, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.items) == 0 {
		return workItem{}, false
	}
	first := d.items[0]
	d.items = d.items[1:]
	return first, true
}
