// Package search implements Shogi move search: principal variation search
// with null-move pruning, late move reductions, internal iterative
// deepening, quiescence search and aspiration windows.
package search

import (
	"context"

	"github.com/nanakusa/shogo/pkg/eval"
	"github.com/nanakusa/shogo/pkg/shogi"
	"github.com/nanakusa/shogo/pkg/tt"
)

// maxPly bounds the killer/history tables and the mate-distance encoding.
const maxPly = 128

// Stats accumulates counters for one search invocation, read by the engine
// for UI/logging and by time management for node-based heuristics.
type Stats struct {
	Nodes     uint64
	QNodes    uint64
	TTHits    uint64
	TTCutoffs uint64
	NullCuts  uint64
	BetaCuts  uint64
	SelDepth  int
}

// Context is the shared, single-goroutine state for one search tree walk:
// move ordering tables, the transposition table (shared, concurrency-safe)
// and the evaluator. A YBWC worker gets its own Context sharing only TT.
type Context struct {
	Board   *shogi.Board
	TT      *tt.Table
	Eval    eval.Evaluator
	Zobrist *shogi.ZobristTable

	// Params selects which techniques run and their thresholds; defaults to
	// DefaultParams() so a Context built without touching Params behaves
	// exactly as this package always has.
	Params Params

	Stats Stats

	killers [maxPly][2]shogi.Move
	history [shogi.NumPlayers][82][81]int // from index 81 holds drops

	// path holds the Zobrist hashes of positions from the search root down
	// to (but not including) the node currently being searched, used to
	// detect in-tree repetition without needing full game history.
	path []shogi.Hash

	Stop <-chan struct{}
}

// NewContext builds a fresh per-search Context sharing the given
// transposition table.
func NewContext(b *shogi.Board, zt *shogi.ZobristTable, table *tt.Table, evaluator eval.Evaluator, stop <-chan struct{}) *Context {
	return &Context{Board: b, Zobrist: zt, TT: table, Eval: evaluator, Stop: stop, Params: DefaultParams()}
}

func (c *Context) cancelled() bool {
	select {
	case <-c.Stop:
		return true
	default:
		return false
	}
}

// recordKiller stores a quiet move that caused a beta cutoff at ply, bumping
// the old primary killer to secondary.
func (c *Context) recordKiller(ply int, m shogi.Move) {
	if ply >= maxPly {
		return
	}
	if c.killers[ply][0].Equals(m) {
		return
	}
	c.killers[ply][1] = c.killers[ply][0]
	c.killers[ply][0] = m
}

func (c *Context) isKiller(ply int, m shogi.Move) bool {
	if ply >= maxPly {
		return false
	}
	return c.killers[ply][0].Equals(m) || c.killers[ply][1].Equals(m)
}

// recordHistory rewards a quiet move that caused a cutoff, indexed by
// (side, from-or-drop-origin, to) rather than plain (from, to), so a drop
// and a board move landing on the same square don't collide.
func (c *Context) recordHistory(side shogi.Player, m shogi.Move, depth int) {
	from := 81
	if !m.IsDrop {
		from = int(m.From)
	}
	c.history[side][from][m.To] += depth * depth
}

func (c *Context) historyScore(side shogi.Player, m shogi.Move) int {
	from := 81
	if !m.IsDrop {
		from = int(m.From)
	}
	return c.history[side][from][m.To]
}

// mateScore encodes a forced mate in ply plies as a score outside normal
// evaluation range, the ply distance preserved so shorter mates are
// preferred and the value is adjusted as it propagates up the tree.
func mateScore(ply int) eval.Score {
	return eval.MateValue - eval.Score(ply)
}

func isMateScore(s eval.Score) bool {
	threshold := eval.MateValue - maxPly
	return s > threshold || s < -threshold
}
