package eval_test

import (
	"testing"

	"github.com/nanakusa/shogo/pkg/eval"
	"github.com/nanakusa/shogo/pkg/shogi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialInitialPositionIsBalanced(t *testing.T) {
	pos := shogi.NewInitialPosition()

	balance := eval.Material(pos)
	assert.Equal(t, eval.Score(0), balance.MG)
	assert.Equal(t, eval.Score(0), balance.EG)

	assert.Equal(t, eval.MaxPhase, eval.Phase(pos), "full material on board is a fresh opening")
}

func TestMaterialReflectsHandImbalance(t *testing.T) {
	pos, _, _, err := shogi.FromSFEN("4k4/9/9/9/9/9/9/9/4K4 b R 1")
	require.NoError(t, err)

	balance := eval.Material(pos)
	assert.Greater(t, int(balance.MG), 0, "an extra rook in Black's hand must favor Black")
	assert.Equal(t, balance.MG, balance.EG, "material balance is untapered")
}

func TestMaterialIsAntisymmetricUnderSideSwap(t *testing.T) {
	blackUp, _, _, err := shogi.FromSFEN("4k4/9/9/9/9/9/9/9/4K4 b R 1")
	require.NoError(t, err)
	whiteUp, _, _, err := shogi.FromSFEN("4k4/9/9/9/9/9/9/9/4K4 b r 1")
	require.NoError(t, err)

	assert.Equal(t, eval.Material(blackUp).MG, -eval.Material(whiteUp).MG)
}

func TestTaperedBlendAtPhaseExtremes(t *testing.T) {
	tap := eval.Tapered{MG: 100, EG: -40}

	assert.Equal(t, tap.MG, tap.Blend(eval.MaxPhase))
	assert.Equal(t, tap.EG, tap.Blend(0))
}

func TestTaperedBlendClampsOutOfRangePhase(t *testing.T) {
	tap := eval.Tapered{MG: 100, EG: -40}

	assert.Equal(t, tap.Blend(eval.MaxPhase), tap.Blend(eval.MaxPhase+10))
	assert.Equal(t, tap.Blend(0), tap.Blend(-5))
}

func TestTaperedArithmetic(t *testing.T) {
	a := eval.Tapered{MG: 10, EG: 20}
	b := eval.Tapered{MG: 3, EG: 5}

	assert.Equal(t, eval.Tapered{MG: 13, EG: 25}, a.Add(b))
	assert.Equal(t, eval.Tapered{MG: 7, EG: 15}, a.Sub(b))
	assert.Equal(t, eval.Tapered{MG: -10, EG: -20}, a.Neg())
	assert.Equal(t, eval.Tapered{MG: 20, EG: 40}, a.Scale(2))
}
