package eval_test

import (
	"context"
	"testing"

	"github.com/nanakusa/shogo/pkg/eval"
	"github.com/nanakusa/shogo/pkg/shogi"
	"github.com/stretchr/testify/assert"
)

func TestStandardEvaluateInitialPositionIsSymmetric(t *testing.T) {
	pos := shogi.NewInitialPosition()
	zt := shogi.NewZobristTable(0)
	s := eval.NewStandard()

	black := s.Evaluate(context.Background(), pos, shogi.Black, zt.Hash(pos, shogi.Black))
	white := s.Evaluate(context.Background(), pos, shogi.White, zt.Hash(pos, shogi.White))

	assert.Equal(t, eval.Score(0), black, "a fully symmetric opening favors neither side")
	assert.Equal(t, black, white, "perspective flip of a zero score is still zero")
}

func TestStandardEvaluateMemoizesByHash(t *testing.T) {
	pos := shogi.NewInitialPosition()
	zt := shogi.NewZobristTable(0)
	s := eval.NewStandard()
	hash := zt.Hash(pos, shogi.Black)

	first := s.Evaluate(context.Background(), pos, shogi.Black, hash)
	second := s.Evaluate(context.Background(), pos, shogi.Black, hash)

	assert.Equal(t, first, second)
}
