package search

import "github.com/nanakusa/shogo/pkg/shogi"

// staticExchangeEval approximates the net material result of a sequence of
// captures on m.To, simulating least-valuable-attacker-first recapture
// until neither side wants to continue. It ignores pins (a pinned piece is
// treated as available to recapture) and does not try to find a better
// recapture order than ascending value.
func staticExchangeEval(pos shogi.Position, m shogi.Move) int {
	if !m.IsCapture {
		return 0
	}

	occ := pos.All()
	if !m.IsDrop {
		occ = occ.Clear(m.From)
	}

	gain := make([]int, 0, 32)
	gain = append(gain, m.CaptureType.BaseValue())

	side := m.Player.Opponent()
	target := m.To
	attackerValue := m.Piece.BaseValue()

	for {
		from, pt, ok := leastValuableAttacker(pos, occ, side, target)
		if !ok {
			break
		}
		gain = append(gain, attackerValue-gain[len(gain)-1])
		if max(-gain[len(gain)-2], gain[len(gain)-1]) < 0 {
			gain = gain[:len(gain)-1]
			break
		}
		occ = occ.Clear(from)
		attackerValue = pt.BaseValue()
		side = side.Opponent()
	}

	for i := len(gain) - 1; i > 0; i-- {
		gain[i-1] = -max(-gain[i-1], gain[i])
	}
	return gain[0]
}

// leastValuableAttacker finds the cheapest piece of side attacking target
// given occ (which may have had earlier participants removed, revealing
// x-ray sliders behind them).
func leastValuableAttacker(pos shogi.Position, occ shogi.Bitboard, side shogi.Player, target shogi.Square) (shogi.Square, shogi.PieceType, bool) {
	best := shogi.NumPieceTypes
	var bestSq shogi.Square
	found := false

	for pt := shogi.ZeroPieceType; pt < shogi.NumPieceTypes; pt++ {
		bb := pos.PieceBB(pt, side).And(occ)
		for _, from := range bb.Squares() {
			if !shogi.Attacks(pt, side, from, occ).IsSet(target) {
				continue
			}
			if !found || pt.BaseValue() < best.BaseValue() {
				best = pt
				bestSq = from
				found = true
			}
		}
	}
	return bestSq, best, found
}
