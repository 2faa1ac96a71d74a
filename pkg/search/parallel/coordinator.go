// Package parallel implements root-only YBWC (Young Brothers Wait Concept)
// parallel search: the first root move is searched to completion alone to
// establish a bound, then the remaining root moves are fanned out to a pool
// of workers that steal from each other once their own queue runs dry.
package parallel

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/nanakusa/shogo/pkg/eval"
	"github.com/nanakusa/shogo/pkg/search"
	"github.com/nanakusa/shogo/pkg/shogi"
	"github.com/nanakusa/shogo/pkg/tt"
)

// Stats reports per-worker node counts and steal counts, recorded with
// relaxed atomics so workers never block each other to update them.
type Stats struct {
	Nodes       uint64
	QNodes      uint64
	Steals      uint64
	WorkerNodes []uint64
}

// Outcome is the best root move found, its score from side's perspective,
// and the principal variation reconstructed by chasing each node's best
// move down from the root.
type Outcome struct {
	Move  shogi.Move
	Score eval.Score
	PV    []shogi.Move
	Stats Stats
}

// Coordinator owns the shared resources every worker's search.Context
// draws on: the Zobrist table and transposition table (both concurrency-
// safe) and the evaluator (assumed safe for concurrent read-mostly use; an
// evaluator with mutable per-call caches must make those thread-local,
// e.g. by giving each worker its own eval.Standard instance instead of
// sharing one).
type Coordinator struct {
	Zobrist    *shogi.ZobristTable
	TT         *tt.Table
	NewEval    func() eval.Evaluator // constructs a thread-local evaluator per worker
	NumWorkers int
	Params     search.Params

	// MinDepth/MinBranch gate when fan-out is even worth its overhead: below
	// either, SearchRoot hands the whole fan-out to a single worker instead
	// of spreading it across NumWorkers deques and goroutines.
	MinDepth  int
	MinBranch int
	// MaxSiblings caps how many root moves (after the oldest brother) are
	// ever fanned out in parallel; the rest are searched sequentially by the
	// oldest-brother context once the parallel batch returns. Zero means no
	// cap.
	MaxSiblings int
}

// SearchRoot runs one depth of root-only YBWC search. stop is the caller's
// abort flag: closed by its time watchdog, or left open to run to
// completion. A worker panic aborts the other workers through an internal
// channel; stop itself is only read.
func (co *Coordinator) SearchRoot(ctx context.Context, pos shogi.Position, side shogi.Player, depth int, stop <-chan struct{}) Outcome {
	moves := shogi.LegalMoves(pos, side)
	if len(moves) == 0 {
		return Outcome{}
	}
	orderRootMoves(moves)

	workers := co.NumWorkers
	if workers < 1 {
		workers = 1
	}
	if depth < co.MinDepth || len(moves) < co.MinBranch {
		// Below activation thresholds: YBWC's coordination overhead isn't
		// worth it, so run the whole fan-out on a single worker.
		workers = 1
	}

	abort := make(chan struct{})
	var aborted sync.Once
	stopAll := func() { aborted.Do(func() { close(abort) }) }
	go func() {
		select {
		case <-stop:
			stopAll()
		case <-abort:
		}
	}()

	rootCtx := newWorkerContext(co, abort)

	// Oldest brother: search the first move alone to establish alpha. Every
	// sibling then searches concurrently against that bound, and may later
	// overtake it once its own result comes back.
	first := moves[0]
	firstNext := pos.Apply(first, side)
	firstResult := rootCtx.Search(ctx, firstNext, side.Opponent(), depth-1, nil)
	bestScore := -firstResult.Score
	bestMove := first
	bestPV := append([]shogi.Move{first}, firstResult.PV...)

	var mu sync.Mutex
	nodes := atomic.Uint64{}
	qnodes := atomic.Uint64{}
	steals := atomic.Uint64{}
	workerNodes := make([]uint64, workers)
	nodes.Add(rootCtx.Stats.Nodes)
	qnodes.Add(rootCtx.Stats.QNodes)
	rootCtx.Stats = search.Stats{}

	siblings := moves[1:]
	var overflow []shogi.Move
	if co.MaxSiblings > 0 && len(siblings) > co.MaxSiblings {
		siblings, overflow = siblings[:co.MaxSiblings], siblings[co.MaxSiblings:]
	}

	deques := make([]*deque, workers)
	chunk := (len(siblings) + workers - 1) / workers
	if chunk < 1 {
		chunk = 1
	}
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if lo > len(siblings) {
			lo = len(siblings)
		}
		if hi > len(siblings) {
			hi = len(siblings)
		}
		items := make([]workItem, 0, hi-lo)
		for _, m := range siblings[lo:hi] {
			items = append(items, workItem{move: m})
		}
		deques[w] = newDeque(items)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					stopAll()
				}
			}()

			wctx := newWorkerContext(co, abort)
			for {
				select {
				case <-abort:
					return
				default:
				}

				item, ok := deques[id].popTail()
				if !ok {
					item, ok = stealFrom(deques, id)
					if ok {
						steals.Add(1)
					}
				}
				if !ok {
					return // no more work anywhere
				}

				mu.Lock()
				bound := bestScore
				mu.Unlock()

				// Null-window search against the bound the oldest brother
				// (or a prior sibling) already established: this sibling
				// only needs to prove it beats bound, not find its exact
				// score. A fail-high means it might be the new best, so it
				// gets a full re-search to find out by how much.
				next := pos.Apply(item.move, side)
				r := wctx.SearchWindow(ctx, next, side.Opponent(), depth-1, nil, -bound-1, -bound)
				score := -r.Score
				if score > bound {
					r = wctx.SearchWindow(ctx, next, side.Opponent(), depth-1, nil, eval.NegInf, -bound)
					score = -r.Score
				}

				mu.Lock()
				if score > bestScore {
					bestScore = score
					bestMove = item.move
					bestPV = append([]shogi.Move{item.move}, r.PV...)
				}
				mu.Unlock()

				workerNodes[id] += wctx.Stats.Nodes
				nodes.Add(wctx.Stats.Nodes)
				qnodes.Add(wctx.Stats.QNodes)
				wctx.Stats = search.Stats{}
			}
		}(w)
	}
	wg.Wait()

	// Any root moves beyond MaxSiblings never got a deque slot; the oldest
	// brother's context searches them sequentially against the final bound.
	for _, m := range overflow {
		next := pos.Apply(m, side)
		r := rootCtx.SearchWindow(ctx, next, side.Opponent(), depth-1, nil, eval.NegInf, -bestScore)
		score := -r.Score
		if score > bestScore {
			bestScore = score
			bestMove = m
			bestPV = append([]shogi.Move{m}, r.PV...)
		}
		nodes.Add(rootCtx.Stats.Nodes)
		qnodes.Add(rootCtx.Stats.QNodes)
		rootCtx.Stats = search.Stats{}
	}

	return Outcome{
		Move:  bestMove,
		Score: bestScore,
		PV:    bestPV,
		Stats: Stats{
			Nodes:       nodes.Load(),
			QNodes:      qnodes.Load(),
			Steals:      steals.Load(),
			WorkerNodes: workerNodes,
		},
	}
}

func newWorkerContext(co *Coordinator, stop <-chan struct{}) *search.Context {
	var evaluator eval.Evaluator
	if co.NewEval != nil {
		evaluator = co.NewEval()
	}
	wctx := search.NewContext(nil, co.Zobrist, co.TT, evaluator, stop)
	if co.Params != (search.Params{}) {
		wctx.Params = co.Params
	}
	return wctx
}

// stealFrom scans every deque but the thief's own for work, starting just
// after the thief's index so repeated steals fan out round-robin instead of
// hammering deque 0.
func stealFrom(deques []*deque, self int) (workItem, bool) {
	n := len(deques)
	for i := 1; i < n; i++ {
		idx := (self + i) % n
		if idx == self {
			continue
		}
		if item, ok := deques[idx].stealHead(); ok {
			return item, true
		}
	}
	return workItem{}, false
}

// orderRootMoves gives captures and promotions a shallow priority boost so
// the oldest-brother search is more likely to start from a strong move,
// tightening alpha before siblings fan out.
func orderRootMoves(moves []shogi.Move) {
	weight := func(m shogi.Move) int {
		w := 0
		if m.IsCapture {
			w += 2
		}
		if m.Promote {
			w++
		}
		return w
	}
	for i := 1; i < len(moves); i++ {
		m := moves[i]
		wm := weight(m)
		j := i - 1
		for j >= 0 && weight(moves[j]) < wm {
			moves[j+1] = moves[j]
			j--
		}
		moves[j+1] = m
	}
}
