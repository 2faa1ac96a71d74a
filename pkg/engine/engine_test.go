package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/nanakusa/shogo/pkg/engine"
	"github.com/nanakusa/shogo/pkg/searchctl"
	"github.com/nanakusa/shogo/pkg/shogi"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsInvalidOptions(t *testing.T) {
	_, err := engine.New(context.Background(), "shogo", "nanakusa", engine.WithOptions(engine.Options{Threads: 64}))
	assert.Error(t, err)
}

func TestNewStartsAtInitialPosition(t *testing.T) {
	e, err := engine.New(context.Background(), "shogo", "nanakusa")
	require.NoError(t, err)

	assert.Equal(t, shogi.Black, e.Board().Turn())
	assert.Equal(t, shogi.NewInitialPosition(), e.Board().Position())
}

func TestMoveAndTakeBack(t *testing.T) {
	e, err := engine.New(context.Background(), "shogo", "nanakusa")
	require.NoError(t, err)

	m := shogi.Move{
		From: shogi.NewSquare(2, 4), To: shogi.NewSquare(3, 4),
		Piece: shogi.Pawn, Player: shogi.Black,
	}
	require.NoError(t, e.Move(context.Background(), m))
	assert.Equal(t, shogi.White, e.Board().Turn())

	require.NoError(t, e.TakeBack(context.Background()))
	assert.Equal(t, shogi.Black, e.Board().Turn())
	assert.Equal(t, shogi.NewInitialPosition(), e.Board().Position())

	assert.Error(t, e.TakeBack(context.Background()), "nothing left to take back")
}

func TestNewGameResetsBoard(t *testing.T) {
	e, err := engine.New(context.Background(), "shogo", "nanakusa")
	require.NoError(t, err)

	m := shogi.Move{
		From: shogi.NewSquare(2, 4), To: shogi.NewSquare(3, 4),
		Piece: shogi.Pawn, Player: shogi.Black,
	}
	require.NoError(t, e.Move(context.Background(), m))

	e.NewGame(context.Background())
	assert.Equal(t, shogi.Black, e.Board().Turn())
	assert.Equal(t, shogi.NewInitialPosition(), e.Board().Position())
}

func TestClearTranspositionTableIsSafeWithNoHash(t *testing.T) {
	e, err := engine.New(context.Background(), "shogo", "nanakusa", engine.WithOptions(engine.Options{Hash: 0}))
	require.NoError(t, err)

	assert.NotPanics(t, e.ClearTranspositionTable)
}

func TestSearchRejectsConcurrentActiveSearch(t *testing.T) {
	e, err := engine.New(context.Background(), "shogo", "nanakusa", engine.WithOptions(engine.Options{Depth: 2}))
	require.NoError(t, err)

	out, err := e.Search(context.Background(), searchctl.Options{DepthLimit: lang.Some(uint(2))})
	require.NoError(t, err)

	_, err = e.Search(context.Background(), searchctl.Options{DepthLimit: lang.Some(uint(2))})
	assert.Error(t, err, "a second concurrent search must be rejected")

	for range out {
		// drain until the first search halts on its own depth limit
	}

	// The engine only learns a search ended once Halt (or another locking
	// call) reaps it, so the first Halt still succeeds here...
	_, err = e.Halt(context.Background())
	assert.NoError(t, err)

	// ...but a second one, with nothing left active, must report so.
	_, err = e.Halt(context.Background())
	assert.Error(t, err)
}

func TestSearchProducesLegalBestMove(t *testing.T) {
	e, err := engine.New(context.Background(), "shogo", "nanakusa", engine.WithOptions(engine.Options{Depth: 2}))
	require.NoError(t, err)

	out, err := e.Search(context.Background(), searchctl.Options{DepthLimit: lang.Some(uint(2))})
	require.NoError(t, err)

	var last searchctl.PV
	deadline := time.After(30 * time.Second)
	for {
		select {
		case pv, ok := <-out:
			if !ok {
				require.NotEmpty(t, last.Moves)
				legal := shogi.LegalMoves(e.Board().Position(), e.Board().Turn())
				found := false
				for _, m := range legal {
					if m.Equals(last.Moves[0]) {
						found = true
						break
					}
				}
				assert.True(t, found)
				return
			}
			last = pv
		case <-deadline:
			t.Fatal("search did not complete in time")
		}
	}
}

func TestMapBookFindsByPositionIgnoringMoveNumber(t *testing.T) {
	m := shogi.Move{From: shogi.NewSquare(2, 6), To: shogi.NewSquare(3, 6), Piece: shogi.Pawn, Player: shogi.Black}
	sfen := shogi.ToSFEN(shogi.NewInitialPosition(), shogi.Black, 1)
	book := engine.NewMapBook(map[string][]shogi.Move{
		sfen: {m},
	})

	laterSFEN := shogi.ToSFEN(shogi.NewInitialPosition(), shogi.Black, 41)
	moves, err := book.Find(context.Background(), laterSFEN)
	require.NoError(t, err)
	require.Len(t, moves, 1)
	assert.True(t, moves[0].Equals(m))
}

func TestNoBookNeverRecommends(t *testing.T) {
	moves, err := engine.NoBook.Find(context.Background(), "irrelevant")
	assert.NoError(t, err)
	assert.Empty(t, moves)
}
