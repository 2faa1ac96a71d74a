package search

import (
	"context"

	"github.com/nanakusa/shogo/pkg/eval"
	"github.com/nanakusa/shogo/pkg/shogi"
)

// quiescence resolves captures, promotions and checking moves until the
// position is "quiet", so the main search
// doesn't misjudge a position won or lost material mid-exchange. Returns
// the score from side's perspective.
func (c *Context) quiescence(ctx context.Context, pos shogi.Position, side shogi.Player, alpha, beta eval.Score, ply int) eval.Score {
	c.Stats.QNodes++
	if ply > c.Stats.SelDepth {
		c.Stats.SelDepth = ply
	}
	if c.cancelled() {
		return 0
	}

	standPat := c.Eval.Evaluate(ctx, pos, side, c.Zobrist.Hash(pos, side))
	if standPat >= beta {
		return beta
	}
	if alpha < standPat {
		alpha = standPat
	}

	inCheck := pos.IsChecked(side)
	candidates := quiescenceCandidates(pos, side, inCheck)
	c.orderMoves(pos, side, candidates, shogi.Move{}, ply)

	for _, m := range candidates {
		if !inCheck && m.IsCapture {
			captureValue := eval.Score(m.CaptureType.BaseValue())
			// A capture at or above this value is never pruned on margin
			// alone: missing it is too costly to risk on an estimate.
			highValue := captureValue >= c.Params.HighValueCaptureThreshold

			if !highValue && c.Params.EnableDeltaPruning && standPat+captureValue+c.Params.DeltaMargin < alpha {
				continue // delta pruning: even winning the piece can't raise alpha
			}
			if !highValue && c.Params.EnableFutilityPruning && standPat+captureValue+c.Params.FutilityMargin < alpha {
				continue // futility pruning: a tighter margin for garden-variety captures
			}
			if staticExchangeEval(pos, m) < 0 {
				continue // futile: SEE says this capture loses material
			}
		}

		next := pos.Apply(m, side)
		if next.IsChecked(side) {
			continue // illegal: leaves own king in check
		}

		score := -c.quiescence(ctx, next, side.Opponent(), -beta, -alpha, ply+1)
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

// quiescenceCandidates returns captures and promotions always, plus quiet
// moves that give check, and all legal-ish evasions when the side to move is
// in check (since "quiet" is not meaningful mid-check). Without the checking
// moves a forcing check sequence just past the horizon would be invisible to
// the main search.
func quiescenceCandidates(pos shogi.Position, side shogi.Player, inCheck bool) []shogi.Move {
	if inCheck {
		return shogi.LegalMoves(pos, side)
	}

	all := shogi.GeneratePseudoLegalBoardMoves(pos, side)
	all = append(all, shogi.GeneratePseudoLegalDrops(pos, side)...)
	out := make([]shogi.Move, 0, len(all)/4+1)
	opp := side.Opponent()
	for _, m := range all {
		if m.IsCapture || m.Promote {
			out = append(out, m)
			continue
		}
		if pos.Apply(m, side).IsChecked(opp) {
			out = append(out, m)
		}
	}
	return out
}
