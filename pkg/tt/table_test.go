package tt_test

import (
	"context"
	"testing"

	"github.com/nanakusa/shogo/pkg/eval"
	"github.com/nanakusa/shogo/pkg/shogi"
	"github.com/nanakusa/shogo/pkg/tt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeMissOnEmptyTable(t *testing.T) {
	table := tt.New(context.Background(), 1<<20)

	_, _, _, _, ok := table.Probe(shogi.Hash(12345))
	assert.False(t, ok)
}

func TestStoreThenProbeRoundTrip(t *testing.T) {
	table := tt.New(context.Background(), 1<<20)

	h := shogi.Hash(0xC0FFEE)
	m := shogi.Move{From: shogi.NewSquare(6, 4), To: shogi.NewSquare(5, 4), Piece: shogi.Pawn, Player: shogi.Black}
	table.Store(h, tt.ExactBound, 3, 8, eval.Score(150), m)

	bound, depth, score, move, ok := table.Probe(h)
	require.True(t, ok)
	assert.Equal(t, tt.ExactBound, bound)
	assert.Equal(t, 8, depth)
	assert.Equal(t, eval.Score(150), score)
	assert.True(t, move.Equals(m))
}

func TestStoreRefreshesSameHashWithDeeperResult(t *testing.T) {
	table := tt.New(context.Background(), 1<<20)

	h := shogi.Hash(42)
	shallow := shogi.Move{From: shogi.NewSquare(6, 4), To: shogi.NewSquare(5, 4), Piece: shogi.Pawn, Player: shogi.Black}
	deep := shogi.Move{From: shogi.NewSquare(6, 2), To: shogi.NewSquare(5, 2), Piece: shogi.Pawn, Player: shogi.Black}

	table.Store(h, tt.ExactBound, 1, 4, eval.Score(10), shallow)
	table.Store(h, tt.ExactBound, 1, 12, eval.Score(20), deep)

	_, depth, score, move, ok := table.Probe(h)
	require.True(t, ok)
	assert.Equal(t, 12, depth, "the deeper result must replace the shallower one for the same position")
	assert.Equal(t, eval.Score(20), score)
	assert.True(t, move.Equals(deep))
}

func TestStoreDoesNotDowngradeToShallowerResult(t *testing.T) {
	table := tt.New(context.Background(), 1<<20)

	h := shogi.Hash(99)
	deep := shogi.Move{From: shogi.NewSquare(6, 4), To: shogi.NewSquare(5, 4), Piece: shogi.Pawn, Player: shogi.Black}
	shallow := shogi.Move{From: shogi.NewSquare(6, 2), To: shogi.NewSquare(5, 2), Piece: shogi.Pawn, Player: shogi.Black}

	table.Store(h, tt.ExactBound, 1, 12, eval.Score(20), deep)
	table.Store(h, tt.ExactBound, 1, 4, eval.Score(10), shallow)

	_, depth, _, move, ok := table.Probe(h)
	require.True(t, ok)
	assert.Equal(t, 12, depth, "a shallower same-generation result must not replace a deeper one")
	assert.True(t, move.Equals(deep))
}

func TestClearRemovesAllEntries(t *testing.T) {
	table := tt.New(context.Background(), 1<<20)

	m := shogi.Move{From: shogi.NewSquare(6, 4), To: shogi.NewSquare(5, 4), Piece: shogi.Pawn, Player: shogi.Black}
	table.Store(shogi.Hash(1), tt.ExactBound, 0, 5, eval.Score(1), m)
	require.Greater(t, table.Used(), 0.0)

	table.Clear()

	_, _, _, _, ok := table.Probe(shogi.Hash(1))
	assert.False(t, ok)
	assert.Equal(t, 0.0, table.Used())
}

func TestNewGenerationAgesOutStaleEntriesUnderBucketPressure(t *testing.T) {
	// A single-bucket table (smallest possible allocation) so all four
	// stores below land in the same bucket and exercise the replacement
	// policy directly.
	table := tt.New(context.Background(), 1)

	old := shogi.Move{From: shogi.NewSquare(6, 0), To: shogi.NewSquare(5, 0), Piece: shogi.Pawn, Player: shogi.Black}
	table.Store(shogi.Hash(1), tt.ExactBound, 0, 2, eval.Score(1), old)
	table.Store(shogi.Hash(2), tt.ExactBound, 0, 2, eval.Score(2), old)
	table.Store(shogi.Hash(3), tt.ExactBound, 0, 2, eval.Score(3), old)
	table.Store(shogi.Hash(4), tt.ExactBound, 0, 2, eval.Score(4), old)

	table.NewGeneration()
	table.NewGeneration()

	fresh := shogi.Move{From: shogi.NewSquare(6, 8), To: shogi.NewSquare(5, 8), Piece: shogi.Pawn, Player: shogi.Black}
	// Same shallow depth as the existing entries, but a newer generation:
	// one of the aged-out entries must be evicted to make room.
	table.Store(shogi.Hash(5), tt.ExactBound, 0, 2, eval.Score(5), fresh)

	_, _, _, _, ok := table.Probe(shogi.Hash(5))
	assert.True(t, ok, "a newer-generation store must be able to displace an aged entry in a full bucket")
}
