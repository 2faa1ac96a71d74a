package shogi

// mustPromote reports whether a piece of type pt, belonging to side, would
// have no legal further move if it landed on "to" without promoting -- the
// forced-promotion rule for Pawn, Lance and Knight.
func mustPromote(pt PieceType, side Player, to Square) bool {
	row := to.Row()
	switch pt {
	case Pawn, Lance:
		if side == Black {
			return row == 8
		}
		return row == 0
	case Knight:
		if side == Black {
			return row >= 7
		}
		return row <= 1
	default:
		return false
	}
}

// GeneratePseudoLegalBoardMoves returns all on-board (non-drop) moves for
// side's pieces, split into promoting/non-promoting variants where both are
// legal and restricted to the promoting variant where promotion is forced.
// It does not filter for king safety: a move that leaves or puts the mover's
// own King in check may be included.
func GeneratePseudoLegalBoardMoves(pos Position, side Player) []Move {
	var moves []Move
	all := pos.All()
	own := pos.Occupancy(side)

	for pt := ZeroPieceType; pt < NumPieceTypes; pt++ {
		bb := pos.PieceBB(pt, side)
		for !bb.IsEmpty() {
			var from Square
			from, bb = bb.PopLsb()

			targets := Attacks(pt, side, from, all).AndNot(own)
			for !targets.IsEmpty() {
				var to Square
				to, targets = targets.PopLsb()

				m := Move{From: from, To: to, Piece: pt, Player: side}
				if cap, ok := pos.PieceAt(to); ok {
					m.IsCapture = true
					m.CaptureType = cap.Type.Unpromoted()
				}

				canPromote := pt.CanPromote() && (side.PromotionZoneRank(from.Row()) || side.PromotionZoneRank(to.Row()))
				forced := canPromote && mustPromote(pt, side, to)

				if canPromote {
					pm := m
					pm.Promote = true
					moves = append(moves, pm)
				}
				if !forced {
					moves = append(moves, m)
				}
			}
		}
	}
	return moves
}

// dropExclusionRows returns the set of rows on which pt may never be
// dropped, since a piece placed there would have no legal further move.
func dropExclusionRows(pt PieceType, side Player) []int {
	switch pt {
	case Pawn, Lance:
		if side == Black {
			return []int{8}
		}
		return []int{0}
	case Knight:
		if side == Black {
			return []int{7, 8}
		}
		return []int{0, 1}
	default:
		return nil
	}
}

// GeneratePseudoLegalDrops returns all drop moves for side that satisfy the
// drop restrictions (back-rank exclusion, Nifu and Uchi-fu-zume, the last by
// trial application). It does not filter for the mover's own king safety.
func GeneratePseudoLegalDrops(pos Position, side Player) []Move {
	var moves []Move
	all := pos.All()
	empty := all.Not()
	hand := pos.Hand(side)

	pawnFiles := Bitboard{} // columns that already hold an unpromoted pawn of side
	pawnBB := pos.PieceBB(Pawn, side)
	for _, sq := range pawnBB.Squares() {
		pawnFiles = pawnFiles.Or(BitFile(sq.Col()))
	}

	for _, pt := range HandPieceTypes {
		if hand.Count(pt) == 0 {
			continue
		}
		targets := empty
		for _, row := range dropExclusionRows(pt, side) {
			targets = targets.AndNot(BitRow(row))
		}
		if pt == Pawn {
			targets = targets.AndNot(pawnFiles)
		}
		for _, to := range targets.Squares() {
			m := Move{IsDrop: true, To: to, Piece: pt, Player: side}
			if pt == Pawn && mustPromote(Pawn, side, to) {
				continue // unreachable given dropExclusionRows, kept for clarity
			}
			if pt == Pawn && wouldBeUchiFuZume(pos, side, to) {
				continue
			}
			moves = append(moves, m)
		}
	}
	return moves
}

// wouldBeUchiFuZume reports whether dropping a Pawn at to would deliver
// immediate checkmate, which is illegal (pawn-drop-mate). It trial-applies
// the drop and checks whether the opponent has any legal reply.
func wouldBeUchiFuZume(pos Position, side Player, to Square) bool {
	opp := side.Opponent()
	if !Attacks(Pawn, side, to, pos.All()).IsSet(pos.KingSquare(opp)) {
		return false
	}
	trial := pos.Apply(Move{IsDrop: true, To: to, Piece: Pawn, Player: side}, side)
	if !trial.IsChecked(opp) {
		return false
	}
	return len(LegalMoves(trial, opp)) == 0
}

// LegalMoves returns all moves for side that are fully legal: pseudo-legal
// on-board moves and drops, filtered to exclude any that leave or place the
// mover's own King in check.
func LegalMoves(pos Position, side Player) []Move {
	candidates := GeneratePseudoLegalBoardMoves(pos, side)
	candidates = append(candidates, GeneratePseudoLegalDrops(pos, side)...)

	moves := make([]Move, 0, len(candidates))
	for _, m := range candidates {
		next := pos.Apply(m, side)
		if !next.IsChecked(side) {
			moves = append(moves, m)
		}
	}
	return moves
}
