package search

import (
	"testing"

	"github.com/nanakusa/shogo/pkg/eval"
	"github.com/stretchr/testify/assert"
)

func TestMateScoreRoundTripsThroughTT(t *testing.T) {
	const ply = 3
	score := mateScore(ply) // mate found 3 plies below some hypothetical root

	stored := mateScoreToTT(score, ply)
	assert.Equal(t, eval.MateValue, stored, "a stored mate score is node-relative, so it reads the same at whatever ply it's retrieved")

	retrieved := mateScoreFromTT(stored, ply)
	assert.Equal(t, score, retrieved)
}

func TestMateScoreRoundTripNegative(t *testing.T) {
	const ply = 5
	score := -mateScore(ply)

	stored := mateScoreToTT(score, ply)
	retrieved := mateScoreFromTT(stored, ply)
	assert.Equal(t, score, retrieved)
}

func TestIsMateScoreThreshold(t *testing.T) {
	assert.True(t, isMateScore(mateScore(0)))
	assert.True(t, isMateScore(-mateScore(0)))
	assert.False(t, isMateScore(eval.Score(5000)))
	assert.False(t, isMateScore(eval.Zero))
}

func TestNonMateScoreIsUnaffectedByTTConversion(t *testing.T) {
	score := eval.Score(120)
	assert.Equal(t, score, mateScoreToTT(score, 4))
	assert.Equal(t, score, mateScoreFromTT(score, 4))
}
