package parallel_test

import (
	"context"
	"testing"
	"time"

	"github.com/nanakusa/shogo/pkg/eval"
	"github.com/nanakusa/shogo/pkg/search/parallel"
	"github.com/nanakusa/shogo/pkg/shogi"
	"github.com/nanakusa/shogo/pkg/tt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRootReturnsLegalMoveWithoutDeadlock(t *testing.T) {
	pos := shogi.NewInitialPosition()

	co := &parallel.Coordinator{
		Zobrist:    shogi.NewZobristTable(0),
		TT:         tt.New(context.Background(), 1<<20),
		NewEval:    func() eval.Evaluator { return eval.NewStandard() },
		NumWorkers: 4,
	}

	done := make(chan parallel.Outcome, 1)
	go func() {
		done <- co.SearchRoot(context.Background(), pos, shogi.Black, 3, make(chan struct{}))
	}()

	select {
	case out := <-done:
		legal := shogi.LegalMoves(pos, shogi.Black)
		found := false
		for _, m := range legal {
			if m.Equals(out.Move) {
				found = true
				break
			}
		}
		assert.True(t, found, "the root move returned must be one of the legal moves")
		assert.NotEmpty(t, out.PV)
		assert.Equal(t, out.Move, out.PV[0])
	case <-time.After(30 * time.Second):
		t.Fatal("SearchRoot deadlocked")
	}
}

func TestSearchRootHandlesNoLegalMoves(t *testing.T) {
	// A bare, fully mated White king with no legal response: LegalMoves
	// returns empty and SearchRoot must report a zero Outcome rather than
	// block forever waiting for work that was never queued.
	pos, turn, _, err := shogi.FromSFEN("k8/8R/9/9/4B4/9/9/9/1R6K w - 1")
	require.NoError(t, err)
	require.Equal(t, shogi.White, turn)
	require.Empty(t, shogi.LegalMoves(pos, shogi.White))

	co := &parallel.Coordinator{
		Zobrist:    shogi.NewZobristTable(0),
		TT:         tt.New(context.Background(), 1<<20),
		NewEval:    func() eval.Evaluator { return eval.NewStandard() },
		NumWorkers: 2,
	}

	out := co.SearchRoot(context.Background(), pos, shogi.White, 3, make(chan struct{}))
	assert.Equal(t, shogi.Move{}, out.Move)
}
