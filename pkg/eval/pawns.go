package eval

import "github.com/nanakusa/shogo/pkg/shogi"

const (
	doubledPawnPenalty  Score = -15 // unpromoted pawn sharing a file with a promoted pawn of the same side
	isolatedPawnPenalty Score = -8
	advancedPawnBonusEG Score = 6 // per row beyond the 5th, paid only in the endgame
)

// pawnStructureForSide scores pl's pawn file distribution: Nifu already
// forbids two unpromoted pawns on one file, but a promoted pawn can share a
// file with a later drop, and isolated pawns (no friendly pawn on an
// adjacent file) are weaker endgame assets.
func pawnStructureForSide(pos shogi.Position, pl shogi.Player) Tapered {
	pawns := pos.PieceBB(shogi.Pawn, pl)
	tokin := pos.PieceBB(shogi.PromotedPawn, pl)

	var files [9]int
	for _, sq := range pawns.Squares() {
		files[sq.Col()]++
	}
	var tokinFiles [9]bool
	for _, sq := range tokin.Squares() {
		tokinFiles[sq.Col()] = true
	}

	var total Tapered
	for col := 0; col < 9; col++ {
		if files[col] == 0 {
			continue
		}
		if tokinFiles[col] {
			total = total.Add(Tapered{MG: doubledPawnPenalty, EG: doubledPawnPenalty})
		}
		left := col > 0 && files[col-1] > 0
		right := col < 8 && files[col+1] > 0
		if !left && !right {
			total = total.Add(Tapered{MG: isolatedPawnPenalty, EG: isolatedPawnPenalty})
		}
	}

	for _, sq := range pawns.Squares() {
		row := sq.Row()
		advance := row
		if pl == shogi.White {
			advance = 8 - row
		}
		if advance > 5 {
			total.EG += advancedPawnBonusEG * Score(advance-5)
		}
	}
	return total
}

// PawnStructureTerm returns the pawn-structure balance, from Black's
// perspective.
func PawnStructureTerm(pos shogi.Position) Tapered {
	return pawnStructureForSide(pos, shogi.Black).Sub(pawnStructureForSide(pos, shogi.White))
}
