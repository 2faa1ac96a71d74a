// Package searchctl drives iterative deepening over pkg/search's fixed-depth
// PVS, managing time controls and exposing a PV stream the engine can read
// from and halt at will.
package searchctl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nanakusa/shogo/pkg/eval"
	"github.com/nanakusa/shogo/pkg/shogi"
	"github.com/nanakusa/shogo/pkg/tt"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Options hold dynamic search options the caller may vary per move.
type Options struct {
	// DepthLimit, if set, caps the search at the given ply depth.
	DepthLimit lang.Optional[uint]
	// TimeControl, if set, bounds the search by the clock.
	TimeControl lang.Optional[TimeControl]
}

func (o Options) String() string {
	var ret []string
	if v, ok := o.DepthLimit.V(); ok {
		ret = append(ret, fmt.Sprintf("depth=%v", v))
	}
	if v, ok := o.TimeControl.V(); ok {
		ret = append(ret, fmt.Sprintf("time=%v", v))
	}
	return fmt.Sprintf("[%v]", strings.Join(ret, ", "))
}

// PV is a snapshot of one completed iteration: the principal variation,
// its score and the resources spent finding it.
type PV struct {
	Depth int
	Nodes uint64
	Score eval.Score
	Moves []shogi.Move
	Time  time.Duration
	Used  float64 // transposition table load factor, if tracked
}

func (pv PV) String() string {
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v moves=%v", pv.Depth, pv.Score, pv.Nodes, pv.Time, pv.Moves)
}

// Launcher manages a running search. Launch expects an exclusive board (not
// concurrently mutated elsewhere) and returns a PV channel fed one value per
// completed iteration; the channel closes when the search halts.
type Launcher interface {
	Launch(ctx context.Context, b *shogi.Board, table *tt.Table, evaluator eval.Evaluator, opt Options) (Handle, <-chan PV)
}

// Handle lets the caller stop a running search and retrieve its best result
// so far. Halt is idempotent and safe to call from any goroutine.
type Handle interface {
	Halt() PV
}
