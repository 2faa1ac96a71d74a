package searchctl

import (
	"context"
	"time"

	"github.com/nanakusa/shogo/pkg/eval"
	"github.com/nanakusa/shogo/pkg/search"
	"github.com/nanakusa/shogo/pkg/search/parallel"
	"github.com/nanakusa/shogo/pkg/shogi"
	"github.com/nanakusa/shogo/pkg/tt"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// ParallelIterative is a Launcher that drives pkg/search/parallel's
// root-only YBWC coordinator through the same iterative-deepening loop as
// Iterative, fanning each depth's root search across NumWorkers goroutines
// instead of running it single-threaded.
type ParallelIterative struct {
	Zobrist    *shogi.ZobristTable
	NewEval    func() eval.Evaluator
	NumWorkers int
	// Params selects which search techniques run and their thresholds; the
	// zero value falls back to search.DefaultParams().
	Params search.Params
	// YBWCMinDepth/YBWCMinBranch/YBWCMaxSiblings gate and cap fan-out; see
	// parallel.Coordinator for their exact meaning.
	YBWCMinDepth    int
	YBWCMinBranch   int
	YBWCMaxSiblings int
}

func (p *ParallelIterative) Launch(ctx context.Context, b *shogi.Board, table *tt.Table, evaluator eval.Evaluator, opt Options) (Handle, <-chan PV) {
	out := make(chan PV, 1)
	h := &handle{
		init: iox.NewAsyncCloser(),
		quit: iox.NewAsyncCloser(),
	}
	go p.process(ctx, b, table, opt, h, out)
	return h, out
}

func (p *ParallelIterative) process(ctx context.Context, b *shogi.Board, table *tt.Table, opt Options, h *handle, out chan PV) {
	defer h.init.Close()
	defer close(out)

	soft, useSoft := EnforceTimeControl(ctx, h, opt.TimeControl, b.Turn())

	wctx, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())
	defer cancel()

	maxDepth := 128
	if v, ok := opt.DepthLimit.V(); ok {
		maxDepth = int(v)
	}

	co := &parallel.Coordinator{
		Zobrist:     p.Zobrist,
		TT:          table,
		NewEval:     p.NewEval,
		NumWorkers:  p.NumWorkers,
		Params:      p.Params,
		MinDepth:    p.YBWCMinDepth,
		MinBranch:   p.YBWCMinBranch,
		MaxSiblings: p.YBWCMaxSiblings,
	}

	pos := b.Position()
	turn := b.Turn()

	if table != nil {
		table.NewGeneration()
	}

	depth := 1
	for !h.quit.IsClosed() && depth <= maxDepth {
		start := time.Now()

		r := co.SearchRoot(wctx, pos, turn, depth, wctx.Done())

		pv := PV{
			Depth: depth,
			Nodes: r.Stats.Nodes + r.Stats.QNodes,
			Score: r.Score,
			Moves: r.PV,
			Time:  time.Since(start),
		}
		if table != nil {
			pv.Used = table.Used()
		}

		logw.Debugf(ctx, "Searched %v (workers=%v, steals=%v): %v", pos, p.NumWorkers, r.Stats.Steals, pv)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv

		h.init.Close()

		if wctx.Err() != nil {
			return
		}
		if useSoft && soft < time.Since(start) {
			return
		}
		depth++
	}
}
