package search

import (
	"sort"

	"github.com/nanakusa/shogo/pkg/shogi"
)

const (
	ttMoveScore       = 1_000_000
	goodCaptureScore  = 800_000
	killerScore       = 600_000
	secondKillerScore = 590_000
	badCaptureScore   = 100_000
)

// orderMoves sorts moves in place, best-guess-first: the transposition
// table move, then captures ordered by static exchange evaluation (winning
// captures ahead of losing ones), then killer quiets, then the rest by
// history heuristic, with promotions nudged ahead of equivalent quiets.
func (c *Context) orderMoves(pos shogi.Position, side shogi.Player, moves []shogi.Move, ttMove shogi.Move, ply int) {
	scores := make([]int, len(moves))
	for i, m := range moves {
		scores[i] = c.moveOrderScore(pos, side, m, ttMove, ply)
	}
	sort.Slice(moves, func(i, j int) bool {
		return scores[i] > scores[j]
	})
}

func (c *Context) moveOrderScore(pos shogi.Position, side shogi.Player, m shogi.Move, ttMove shogi.Move, ply int) int {
	if !ttMove.Equals(shogi.Move{}) && m.Equals(ttMove) {
		return ttMoveScore
	}
	if m.IsCapture {
		see := staticExchangeEval(pos, m)
		if see >= 0 {
			return goodCaptureScore + see
		}
		return badCaptureScore + see
	}
	if c.killers[minInt(ply, maxPly-1)][0].Equals(m) {
		return killerScore
	}
	if c.killers[minInt(ply, maxPly-1)][1].Equals(m) {
		return secondKillerScore
	}
	score := c.historyScore(side, m)
	if m.Promote {
		score += 50
	}
	return score
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
