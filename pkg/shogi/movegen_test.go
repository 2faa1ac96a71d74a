package shogi_test

import (
	"testing"

	"github.com/nanakusa/shogo/pkg/shogi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegalMovesInitialPosition(t *testing.T) {
	p := shogi.NewInitialPosition()
	moves := shogi.LegalMoves(p, shogi.Black)

	// The standard count of legal first moves from the unmodified starting
	// array is 30 (9 pawn pushes, 2 lance pushes, 0 knight moves -- both
	// landing squares hold own pawns --, 4 silver, 6 gold, 3 king, 6 rook,
	// 0 bishop -- fully boxed in by its own pawns).
	assert.Len(t, moves, 30)
	for _, m := range moves {
		assert.False(t, m.IsCapture)
		assert.False(t, m.IsDrop)
	}
}

func TestNifuForbidsSecondPawnOnFile(t *testing.T) {
	p, side, _, err := shogi.FromSFEN("4k4/9/9/9/9/4P4/9/9/4K4 b P 1")
	require.NoError(t, err)
	require.Equal(t, shogi.Black, side)

	drops := shogi.GeneratePseudoLegalDrops(p, shogi.Black)
	for _, m := range drops {
		if m.Piece == shogi.Pawn {
			assert.NotEqual(t, 4, m.To.Col(), "must not drop a second pawn onto file already holding one")
		}
	}
}

func TestForcedPromotionAtLastRank(t *testing.T) {
	p, _, _, err := shogi.FromSFEN("4k4/9/9/9/9/9/K8/4P4/9 b - 1")
	require.NoError(t, err)

	moves := shogi.GeneratePseudoLegalBoardMoves(p, shogi.Black)
	var toLastRank []shogi.Move
	for _, m := range moves {
		if m.To.Row() == 8 {
			toLastRank = append(toLastRank, m)
		}
	}
	require.Len(t, toLastRank, 1, "a pawn reaching the last rank has exactly one legal variant")
	assert.True(t, toLastRank[0].Promote)
}

func TestUchiFuZumeForbidsMatingPawnDrop(t *testing.T) {
	// White king cornered at (row8,col0), boxed in by its own knight at
	// (8,1) and lance at (7,1), neither of which can reach (7,0); a Black
	// pawn dropped at (7,0), guarded by Black's gold at (6,0), would deliver
	// an inescapable mate.
	p, _, _, err := shogi.FromSFEN("8K/9/9/9/9/9/G8/1l7/kn7 b P 1")
	require.NoError(t, err)

	drops := shogi.GeneratePseudoLegalDrops(p, shogi.Black)
	for _, m := range drops {
		if m.Piece == shogi.Pawn {
			assert.NotEqual(t, shogi.NewSquare(7, 0), m.To, "pawn-drop checkmate must be excluded")
		}
	}
}
