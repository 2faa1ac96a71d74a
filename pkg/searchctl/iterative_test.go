package searchctl_test

import (
	"context"
	"testing"
	"time"

	"github.com/nanakusa/shogo/pkg/eval"
	"github.com/nanakusa/shogo/pkg/searchctl"
	"github.com/nanakusa/shogo/pkg/shogi"
	"github.com/nanakusa/shogo/pkg/tt"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIterativeLaunchReachesDepthLimitThenCloses(t *testing.T) {
	zt := shogi.NewZobristTable(0)
	b := shogi.NewBoard(zt)
	table := tt.New(context.Background(), 1<<20)

	l := &searchctl.Iterative{Zobrist: zt}
	_, out := l.Launch(context.Background(), b, table, eval.NewStandard(), searchctl.Options{
		DepthLimit: lang.Some(uint(2)),
	})

	var last searchctl.PV
	deadline := time.After(30 * time.Second)
	for {
		select {
		case pv, ok := <-out:
			if !ok {
				require.Equal(t, 2, last.Depth)
				require.NotEmpty(t, last.Moves)
				return
			}
			last = pv
		case <-deadline:
			t.Fatal("Launch did not close its PV channel in time")
		}
	}
}

func TestIterativeHaltReturnsLatestPV(t *testing.T) {
	zt := shogi.NewZobristTable(0)
	b := shogi.NewBoard(zt)
	table := tt.New(context.Background(), 1<<20)

	l := &searchctl.Iterative{Zobrist: zt}
	handle, out := l.Launch(context.Background(), b, table, eval.NewStandard(), searchctl.Options{
		DepthLimit: lang.Some(uint(64)),
	})

	// Drain one iteration so the search is known to be underway, then halt
	// it rather than letting it run to the (deliberately high) depth cap.
	<-out
	pv := handle.Halt()
	assert.GreaterOrEqual(t, pv.Depth, 1)
	assert.NotEmpty(t, pv.Moves)

	for range out {
		// drain until the producer goroutine closes it after noticing quit
	}
}
