package eval_test

import (
	"testing"

	"github.com/nanakusa/shogo/pkg/eval"
	"github.com/nanakusa/shogo/pkg/shogi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeCacheGetPutRoundTrip(t *testing.T) {
	c := eval.NewNodeCache(4)

	_, ok := c.Get(shogi.Hash(1))
	assert.False(t, ok)

	c.Put(shogi.Hash(1), eval.Score(42))
	v, ok := c.Get(shogi.Hash(1))
	require.True(t, ok)
	assert.Equal(t, eval.Score(42), v)
}

func TestNodeCacheEvictsAtCapacity(t *testing.T) {
	c := eval.NewNodeCache(2)

	c.Put(shogi.Hash(1), eval.Score(1))
	c.Put(shogi.Hash(2), eval.Score(2))
	c.Put(shogi.Hash(3), eval.Score(3))

	count := 0
	for _, h := range []shogi.Hash{1, 2, 3} {
		if _, ok := c.Get(h); ok {
			count++
		}
	}
	assert.LessOrEqual(t, count, 2, "the cache must not grow past its configured capacity")
}

func TestZeroValueNoiseIsAlwaysZero(t *testing.T) {
	var n eval.Noise
	for i := 0; i < 10; i++ {
		assert.Equal(t, eval.Score(0), n.Sample())
	}
}

func TestNoiseStaysWithinLimit(t *testing.T) {
	n := eval.NewNoise(20, 7)
	for i := 0; i < 100; i++ {
		s := n.Sample()
		assert.GreaterOrEqual(t, int(s), -10)
		assert.LessOrEqual(t, int(s), 10)
	}
}
