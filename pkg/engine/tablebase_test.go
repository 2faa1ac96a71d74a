package engine

import (
	"testing"

	"github.com/nanakusa/shogo/pkg/eval"
	"github.com/stretchr/testify/assert"
)

func TestConvertTablebaseScoreWin(t *testing.T) {
	assert.Equal(t, eval.Score(10000), convertTablebaseScore(TablebaseResult{Outcome: TablebaseWin}))
	assert.Equal(t, eval.Score(9994), convertTablebaseScore(TablebaseResult{
		Outcome: TablebaseWin, HasDistance: true, DistanceToMate: 6,
	}), "a shorter mate scores higher than a longer one")
}

func TestConvertTablebaseScoreLoss(t *testing.T) {
	assert.Equal(t, eval.Score(-10000), convertTablebaseScore(TablebaseResult{Outcome: TablebaseLoss}))
	assert.Equal(t, eval.Score(-10006), convertTablebaseScore(TablebaseResult{
		Outcome: TablebaseLoss, HasDistance: true, DistanceToMate: 6,
	}))
}

func TestConvertTablebaseScoreDraw(t *testing.T) {
	assert.Equal(t, eval.Zero, convertTablebaseScore(TablebaseResult{Outcome: TablebaseDraw}))
}

func TestConvertTablebaseScoreUnknownScalesByConfidence(t *testing.T) {
	score := convertTablebaseScore(TablebaseResult{
		Outcome: TablebaseUnknown, HasDistance: true, DistanceToMate: 0, Confidence: 0.5,
	})
	assert.Equal(t, eval.Score(5000), score)

	assert.Equal(t, eval.Zero, convertTablebaseScore(TablebaseResult{Outcome: TablebaseUnknown}))
}

func TestBookKeyDropsMoveNumberField(t *testing.T) {
	a := bookKey("lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1")
	b := bookKey("lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 41")
	assert.Equal(t, a, b)
}
