package parallel

import (
	"testing"

	"github.com/nanakusa/shogo/pkg/shogi"
	"github.com/stretchr/testify/assert"
)

func TestDequePopTailIsLIFO(t *testing.T) {
	a := shogi.Move{To: shogi.NewSquare(0, 0)}
	b := shogi.Move{To: shogi.NewSquare(1, 1)}
	d := newDeque([]workItem{{move: a}, {move: b}})

	item, ok := d.popTail()
	assert.True(t, ok)
	assert.True(t, item.move.Equals(b))

	item, ok = d.popTail()
	assert.True(t, ok)
	assert.True(t, item.move.Equals(a))

	_, ok = d.popTail()
	assert.False(t, ok)
}

func TestDequeStealHeadIsFIFO(t *testing.T) {
	a := shogi.Move{To: shogi.NewSquare(0, 0)}
	b := shogi.Move{To: shogi.NewSquare(1, 1)}
	d := newDeque([]workItem{{move: a}, {move: b}})

	item, ok := d.stealHead()
	assert.True(t, ok)
	assert.True(t, item.move.Equals(a))

	item, ok = d.stealHead()
	assert.True(t, ok)
	assert.True(t, item.move.Equals(b))

	_, ok = d.stealHead()
	assert.False(t, ok)
}

func TestStealFromSkipsSelfAndEmptyDeques(t *testing.T) {
	m := shogi.Move{To: shogi.NewSquare(3, 3)}
	deques := []*deque{
		newDeque(nil),
		newDeque(nil),
		newDeque([]workItem{{move: m}}),
	}

	item, ok := stealFrom(deques, 0)
	assert.True(t, ok)
	assert.True(t, item.move.Equals(m))

	_, ok = stealFrom(deques, 0)
	assert.False(t, ok, "the one item available was already stolen")
}
