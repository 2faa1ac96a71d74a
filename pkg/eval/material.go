package eval

import "github.com/nanakusa/shogo/pkg/shogi"

// handValueNumerator/handValueDenominator discount a captured piece held in hand relative to its
// on-board value: it still threatens to re-enter play but is not
// contributing to board control in the meantime.
const handValueNumerator, handValueDenominator = 9, 10

// nonPawnPhaseWeight assigns each piece type's contribution to the phase
// counter used by Tapered.Blend; pawns and kings don't count.
func nonPawnPhaseWeight(pt shogi.PieceType) int {
	switch pt.Unpromoted() {
	case shogi.Lance, shogi.Knight, shogi.Silver, shogi.Gold:
		return 1
	case shogi.Bishop, shogi.Rook:
		return 2
	default:
		return 0
	}
}

// Phase estimates the game phase in [0, MaxPhase] from remaining non-pawn
// material on the board and in hand; MaxPhase is a fresh opening position.
func Phase(pos shogi.Position) int {
	phase := 0
	for pt := shogi.ZeroPieceType; pt < shogi.NumPieceTypes; pt++ {
		w := nonPawnPhaseWeight(pt)
		if w == 0 {
			continue
		}
		phase += w * (pos.PieceBB(pt, shogi.Black).PopCount() + pos.PieceBB(pt, shogi.White).PopCount())
	}
	for _, pt := range shogi.HandPieceTypes {
		w := nonPawnPhaseWeight(pt)
		if w == 0 {
			continue
		}
		phase += w * (pos.Hand(shogi.Black).Count(pt) + pos.Hand(shogi.White).Count(pt))
	}
	if phase > MaxPhase {
		phase = MaxPhase
	}
	return phase
}

// Material returns the board-plus-hand material balance, from Black's
// perspective (positive favors Black).
func Material(pos shogi.Position) Tapered {
	var balance Score

	for pt := shogi.ZeroPieceType; pt < shogi.NumPieceTypes; pt++ {
		if pt == shogi.King {
			continue
		}
		v := Score(pt.BaseValue())
		n := pos.PieceBB(pt, shogi.Black).PopCount() - pos.PieceBB(pt, shogi.White).PopCount()
		balance += Score(n) * v
	}
	for _, pt := range shogi.HandPieceTypes {
		v := Score(pt.BaseValue()) * handValueNumerator / handValueDenominator
		n := pos.Hand(shogi.Black).Count(pt) - pos.Hand(shogi.White).Count(pt)
		balance += Score(n) * v
	}

	return Tapered{MG: balance, EG: balance}
}
