package search_test

import (
	"context"
	"testing"

	"github.com/nanakusa/shogo/pkg/eval"
	"github.com/nanakusa/shogo/pkg/search"
	"github.com/nanakusa/shogo/pkg/shogi"
	"github.com/nanakusa/shogo/pkg/tt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchIterativeReportsEachDepthAndStopsAtMate(t *testing.T) {
	pos, turn, _, err := shogi.FromSFEN("k8/8R/9/9/9/9/9/9/1R6K b B 1")
	require.NoError(t, err)

	zt := shogi.NewZobristTable(0)
	table := tt.New(context.Background(), 1<<20)
	c := search.NewContext(nil, zt, table, eval.NewStandard(), make(chan struct{}))

	var depths []int
	result := c.SearchIterative(context.Background(), pos, turn, 10, nil, func(depth int, r search.Result) {
		depths = append(depths, depth)
	})

	require.NotEmpty(t, depths)
	assert.Equal(t, 1, depths[0], "iterative deepening must start at depth 1")
	for i := 1; i < len(depths); i++ {
		assert.Equal(t, depths[i-1]+1, depths[i], "each iteration deepens by exactly one ply")
	}
	assert.Less(t, depths[len(depths)-1], 10, "a found mate must stop iterating before the depth cap")
	assert.Greater(t, int(result.Score), int(eval.MateValue)-10)
}
