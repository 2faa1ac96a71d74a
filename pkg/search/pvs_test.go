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

// TestSearchFindsMateInOneBishopDrop cages a bare White king in the corner
// behind two Black rooks covering its only flight squares, then checks that
// a mating Bishop drop onto the long diagonal is found (any of the diagonal's
// seven empty squares mates).
func TestSearchFindsMateInOneBishopDrop(t *testing.T) {
	pos, turn, _, err := shogi.FromSFEN("k8/8R/9/9/9/9/9/9/1R6K b B 1")
	require.NoError(t, err)
	require.Equal(t, shogi.Black, turn)
	require.False(t, pos.IsChecked(shogi.White), "the king must not already be in check")

	zt := shogi.NewZobristTable(0)
	table := tt.New(context.Background(), 1<<20)
	c := search.NewContext(nil, zt, table, eval.NewStandard(), make(chan struct{}))

	result := c.Search(context.Background(), pos, shogi.Black, 2, nil)

	require.NotEmpty(t, result.PV)
	mate := result.PV[0]
	assert.True(t, mate.IsDrop)
	assert.Equal(t, shogi.Bishop, mate.Piece)
	assert.Equal(t, mate.To.Row(), mate.To.Col(), "the drop must land on the long diagonal through the king")
	next := pos.Apply(mate, shogi.Black)
	assert.True(t, next.IsChecked(shogi.White))
	assert.Empty(t, shogi.LegalMoves(next, shogi.White), "the drop must leave White no legal reply")
	assert.Greater(t, int(result.Score), int(eval.MateValue)-10, "a forced mate in one must score near MateValue")
}
