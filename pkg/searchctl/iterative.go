package searchctl

import (
	"context"
	"sync"
	"time"

	"github.com/nanakusa/shogo/pkg/eval"
	"github.com/nanakusa/shogo/pkg/search"
	"github.com/nanakusa/shogo/pkg/shogi"
	"github.com/nanakusa/shogo/pkg/tt"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// Iterative is a Launcher that repeatedly re-searches at increasing depth,
// using a single-threaded search.Context. A parallel Launcher built atop
// pkg/search/parallel implements the same interface.
type Iterative struct {
	Zobrist *shogi.ZobristTable
	// Params selects which search techniques run and their thresholds; the
	// zero value falls back to search.DefaultParams().
	Params search.Params
}

func (i *Iterative) Launch(ctx context.Context, b *shogi.Board, table *tt.Table, evaluator eval.Evaluator, opt Options) (Handle, <-chan PV) {
	out := make(chan PV, 1)
	h := &handle{
		init: iox.NewAsyncCloser(),
		quit: iox.NewAsyncCloser(),
	}
	go h.process(ctx, i.Zobrist, i.Params, b, table, evaluator, opt, out)

	return h, out
}

type handle struct {
	init, quit iox.AsyncCloser

	pv PV
	mu sync.Mutex
}

func (h *handle) process(ctx context.Context, zt *shogi.ZobristTable, params search.Params, b *shogi.Board, table *tt.Table, evaluator eval.Evaluator, opt Options, out chan PV) {
	defer h.init.Close()
	defer close(out)

	soft, useSoft := EnforceTimeControl(ctx, h, opt.TimeControl, b.Turn())

	wctx, cancel := contextx.WithQuitCancel(ctx, h.quit.Closed())
	defer cancel()

	maxDepth := 128
	if v, ok := opt.DepthLimit.V(); ok {
		maxDepth = int(v)
	}

	sc := search.NewContext(b, zt, table, evaluator, wctx.Done())
	if params != (search.Params{}) {
		sc.Params = params
	}

	if table != nil {
		table.NewGeneration()
	}

	iterStart := time.Now()
	sc.SearchIterative(wctx, b.Position(), b.Turn(), maxDepth, nil, func(depth int, r search.Result) {
		elapsed := time.Since(iterStart)
		iterStart = time.Now()

		pv := PV{
			Depth: depth,
			Nodes: sc.Stats.Nodes + sc.Stats.QNodes,
			Score: r.Score,
			Moves: r.PV,
			Time:  elapsed,
		}
		if table != nil {
			pv.Used = table.Used()
		}

		logw.Debugf(ctx, "Searched %v: %v", b.Position(), pv)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv

		h.init.Close()

		if useSoft && soft < elapsed {
			h.quit.Close() // exceeded soft time limit: do not start a new iteration
		}
	})
}

func (h *handle) Halt() PV {
	<-h.init.Closed()
	h.quit.Close()

	h.mu.Lock()
	defer h.mu.Unlock()

	return h.pv
}
