package shogi_test

import (
	"testing"

	"github.com/nanakusa/shogo/pkg/shogi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInitialPosition(t *testing.T) {
	p := shogi.NewInitialPosition()

	t.Run("Black occupies rows 0-2", func(t *testing.T) {
		for row := 0; row <= 2; row++ {
			for col := 0; col < 9; col++ {
				pc, ok := p.PieceAt(shogi.NewSquare(row, col))
				require.True(t, ok, "expected a piece at row=%v col=%v", row, col)
				assert.Equal(t, shogi.Black, pc.Player)
			}
		}
	})

	t.Run("White occupies rows 6-8", func(t *testing.T) {
		for row := 6; row <= 8; row++ {
			for col := 0; col < 9; col++ {
				pc, ok := p.PieceAt(shogi.NewSquare(row, col))
				require.True(t, ok, "expected a piece at row=%v col=%v", row, col)
				assert.Equal(t, shogi.White, pc.Player)
			}
		}
	})

	t.Run("middle rows are empty", func(t *testing.T) {
		for row := 3; row <= 5; row++ {
			for col := 0; col < 9; col++ {
				_, ok := p.PieceAt(shogi.NewSquare(row, col))
				assert.False(t, ok)
			}
		}
	})

	t.Run("kings are not in check", func(t *testing.T) {
		assert.False(t, p.IsChecked(shogi.Black))
		assert.False(t, p.IsChecked(shogi.White))
	})

	t.Run("hands start empty", func(t *testing.T) {
		assert.True(t, p.Hand(shogi.Black).IsEmpty())
		assert.True(t, p.Hand(shogi.White).IsEmpty())
	})
}

func TestApplyCaptureDemotesToHand(t *testing.T) {
	p, _, _, err := shogi.FromSFEN("4k4/9/4+r4/4R4/9/9/9/9/4K4 b - 1")
	require.NoError(t, err)

	m := shogi.Move{
		From: shogi.NewSquare(3, 4), To: shogi.NewSquare(2, 4),
		Piece: shogi.Rook, Player: shogi.Black,
		IsCapture: true, CaptureType: shogi.Rook,
	}
	next := p.Apply(m, shogi.Black)

	assert.Equal(t, 1, next.Hand(shogi.Black).Count(shogi.Rook))
	pc, ok := next.PieceAt(shogi.NewSquare(2, 4))
	require.True(t, ok)
	assert.Equal(t, shogi.Black, pc.Player)
	assert.Equal(t, shogi.Rook, pc.Type)
}
