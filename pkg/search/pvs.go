package search

import (
	"context"

	"github.com/nanakusa/shogo/pkg/eval"
	"github.com/nanakusa/shogo/pkg/shogi"
	"github.com/nanakusa/shogo/pkg/tt"
)

// Result is the outcome of one root-to-leaf PVS call.
type Result struct {
	Score eval.Score
	PV    []shogi.Move
}

// Search runs a fixed-depth principal variation search from pos, side to
// move, returning the best score (from side's perspective) and principal
// variation. path carries the Zobrist hashes of the game played so far (not
// including pos), used for in-tree repetition detection.
func (c *Context) Search(ctx context.Context, pos shogi.Position, side shogi.Player, depth int, path []shogi.Hash) Result {
	return c.SearchWindow(ctx, pos, side, depth, path, eval.NegInf, eval.Inf)
}

// SearchWindow is Search with the root alpha/beta window supplied by the
// caller instead of opened to (-Inf, +Inf). A root-parallel YBWC worker uses
// this to search a sibling against the bound the oldest brother already
// established, rather than from a cold, unbounded window.
func (c *Context) SearchWindow(ctx context.Context, pos shogi.Position, side shogi.Player, depth int, path []shogi.Hash, alpha, beta eval.Score) Result {
	c.path = path
	score, pv := c.negamax(ctx, pos, side, depth, 0, alpha, beta)
	return Result{Score: score, PV: pv}
}

func (c *Context) negamax(ctx context.Context, pos shogi.Position, side shogi.Player, depth, ply int, alpha, beta eval.Score) (eval.Score, []shogi.Move) {
	if c.cancelled() {
		return 0, nil
	}
	c.Stats.Nodes++

	hash := c.Zobrist.Hash(pos, side)
	if ply > 0 && c.isRepeatedInPath(hash) {
		return 0, nil
	}

	var ttMove shogi.Move
	if bound, ttDepth, score, move, ok := c.TT.Probe(hash); ok {
		c.Stats.TTHits++
		ttMove = move
		if ttDepth >= depth {
			adjusted := mateScoreFromTT(score, ply)
			switch bound {
			case tt.ExactBound:
				c.Stats.TTCutoffs++
				return adjusted, []shogi.Move{move}
			case tt.LowerBound:
				if adjusted >= beta {
					c.Stats.TTCutoffs++
					return adjusted, []shogi.Move{move}
				}
			case tt.UpperBound:
				if adjusted <= alpha {
					c.Stats.TTCutoffs++
					return adjusted, []shogi.Move{move}
				}
			}
		}
	}

	if depth <= 0 {
		if !c.Params.EnableQuiescence {
			return c.Eval.Evaluate(ctx, pos, side, hash), nil
		}
		return c.quiescence(ctx, pos, side, alpha, beta, ply), nil
	}

	inCheck := pos.IsChecked(side)

	// Null-move pruning: pass the turn and see if the opponent, given a
	// free move, still can't beat beta -- skipped in check and near the
	// endgame where zugzwang makes the heuristic unsound.
	if c.Params.EnableNullMove && !inCheck && depth >= c.Params.NullMoveMinDepth && beta < eval.Inf && eval.Phase(pos) > 4 {
		reduction := 3 + depth/6
		c.path = append(c.path, hash)
		nullScore, _ := c.negamax(ctx, pos, side.Opponent(), depth-1-reduction, ply+1, -beta, -beta+1)
		c.path = c.path[:len(c.path)-1]
		nullScore = -nullScore
		if nullScore >= beta {
			c.Stats.NullCuts++
			return beta, nil
		}
	}

	// Internal iterative deepening: without a TT move to try first, run a
	// shallow search purely to seed move ordering.
	if c.Params.EnableIID && ttMove.Equals(shogi.Move{}) && depth >= c.Params.IIDMinDepth {
		c.path = append(c.path, hash)
		_, iidPV := c.negamax(ctx, pos, side, depth-2, ply+1, alpha, beta)
		c.path = c.path[:len(c.path)-1]
		if len(iidPV) > 0 {
			ttMove = iidPV[0]
		}
	}

	moves := shogi.GeneratePseudoLegalBoardMoves(pos, side)
	moves = append(moves, shogi.GeneratePseudoLegalDrops(pos, side)...)
	c.orderMoves(pos, side, moves, ttMove, ply)

	var pv []shogi.Move
	hasLegalMove := false
	moveIndex := 0
	bound := tt.UpperBound
	var bestMove shogi.Move

	for _, m := range moves {
		next := pos.Apply(m, side)
		if next.IsChecked(side) {
			continue // illegal
		}
		hasLegalMove = true
		moveIndex++

		c.path = append(c.path, hash)

		reduction := 0
		if c.Params.EnableLMR && depth >= c.Params.LMRMinDepth && moveIndex > c.Params.LMRMinMoveIndex && !m.IsCapture && !m.Promote && !inCheck {
			reduction = c.Params.LMRBaseReduction
			if moveIndex > c.Params.LMRMinMoveIndex*2 {
				reduction = c.Params.LMRMaxReduction
			}
		}

		var score eval.Score
		var rem []shogi.Move
		if moveIndex == 1 {
			score, rem = c.negamax(ctx, next, side.Opponent(), depth-1, ply+1, -beta, -alpha)
			score = -score
		} else {
			score, rem = c.negamax(ctx, next, side.Opponent(), depth-1-reduction, ply+1, -alpha-1, -alpha)
			score = -score
			if score > alpha && (reduction > 0 || score < beta) {
				score, rem = c.negamax(ctx, next, side.Opponent(), depth-1, ply+1, -beta, -alpha)
				score = -score
			}
		}

		c.path = c.path[:len(c.path)-1]

		if score > alpha {
			alpha = score
			bestMove = m
			pv = append([]shogi.Move{m}, rem...)
			bound = tt.ExactBound
		}
		if alpha >= beta {
			if !m.IsCapture {
				c.recordKiller(ply, m)
				c.recordHistory(side, m, depth)
			}
			c.Stats.BetaCuts++
			bound = tt.LowerBound
			bestMove = m
			break
		}
	}

	if !hasLegalMove {
		// Shogi has no stalemate draw: having no legal move is always a loss
		// for the side to move, whether or not that side is in check.
		return -mateScore(ply), nil
	}

	c.TT.Store(hash, bound, ply, depth, mateScoreToTT(alpha, ply), bestMove)
	return alpha, pv
}

func (c *Context) isRepeatedInPath(hash shogi.Hash) bool {
	for _, h := range c.path {
		if h == hash {
			return true
		}
	}
	return false
}

// mateScoreToTT converts a mate score measured from the search root (as
// mateScore produces) into one measured from the current node, ply plies
// below the root, so it reads correctly however deep in the tree it's later
// retrieved from.
func mateScoreToTT(score eval.Score, ply int) eval.Score {
	if !isMateScore(score) {
		return score
	}
	if score > 0 {
		return score + eval.Score(ply)
	}
	return score - eval.Score(ply)
}

// mateScoreFromTT is the inverse of mateScoreToTT: a node-relative mate
// score stored in the table is converted back to one measured from the root
// of a search that reaches the node at ply.
func mateScoreFromTT(score eval.Score, ply int) eval.Score {
	if !isMateScore(score) {
		return score
	}
	if score > 0 {
		return score - eval.Score(ply)
	}
	return score + eval.Score(ply)
}
