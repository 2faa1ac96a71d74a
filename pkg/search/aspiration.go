package search

import (
	"context"

	"github.com/nanakusa/shogo/pkg/eval"
	"github.com/nanakusa/shogo/pkg/shogi"
)

// SearchIterative runs depth 1..maxDepth, reusing each iteration's score as
// the center of a narrow aspiration window for the next, widening on a
// fail-high or fail-low. The transposition table carries information
// between iterations, so the narrow re-searches are cheap in practice.
func (c *Context) SearchIterative(ctx context.Context, pos shogi.Position, side shogi.Player, maxDepth int, path []shogi.Hash, onIteration func(depth int, r Result)) Result {
	c.path = path

	var last Result
	haveScore := false

	for depth := 1; depth <= maxDepth; depth++ {
		if c.cancelled() {
			break
		}

		var alpha, beta eval.Score
		window := c.Params.AspirationBaseWindow
		if c.Params.AspirationAdaptiveSizing {
			window += eval.Score(depth) * 5 // deeper iterations trust the prior score less
		}
		useAspiration := c.Params.EnableAspiration && haveScore && !isMateScore(last.Score) && depth >= c.Params.AspirationMinDepth
		if useAspiration {
			alpha, beta = last.Score-window, last.Score+window
		} else {
			alpha, beta = eval.NegInf, eval.Inf
		}

		var r Result
		researches := 0
		for {
			score, pv := c.negamax(ctx, pos, side, depth, 0, alpha, beta)
			if c.cancelled() {
				break
			}
			r = Result{Score: score, PV: pv}

			researches++
			if researches > c.Params.AspirationMaxResearches {
				break // give up re-searching and accept this result, even if it fell outside the window
			}

			if score <= alpha {
				// Fail-low: the true score is below this window, so there's
				// nothing to gain by guessing a new finite lower bound --
				// reopen alpha to -Inf outright and anchor beta just above
				// the failing score.
				alpha = eval.NegInf
				beta = widen(score, window)
				window = growWindow(window, c.Params)
				continue
			}
			if score >= beta {
				// Fail-high: mirror image of fail-low.
				beta = eval.Inf
				alpha = widen(score, -window)
				window = growWindow(window, c.Params)
				continue
			}
			break
		}

		if c.cancelled() && len(r.PV) == 0 {
			break
		}

		last = r
		haveScore = true
		if onIteration != nil {
			onIteration(depth, r)
		}

		if isMateScore(r.Score) {
			break // forced mate found at full width, no deeper search can improve it
		}
	}

	return last
}

// growWindow doubles the aspiration window when dynamic scaling is enabled,
// clamped at the configured maximum; a fixed window simply stays put (the
// -Inf/+Inf bound already opened on this side is as forgiving as it gets).
func growWindow(window eval.Score, p Params) eval.Score {
	if !p.AspirationDynamicScaling {
		return window
	}
	window *= 2
	if window > p.AspirationMaxWindow {
		window = p.AspirationMaxWindow
	}
	return window
}

func widen(bound, delta eval.Score) eval.Score {
	widened := bound + delta
	if widened > eval.Inf {
		return eval.Inf
	}
	if widened < eval.NegInf {
		return eval.NegInf
	}
	return widened
}
