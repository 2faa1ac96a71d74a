package eval

import "github.com/nanakusa/shogo/pkg/shogi"

// pawnShieldBonus rewards pl's King for having an unpromoted friendly Pawn
// directly in front of it and its two diagonal neighbors -- the minimal
// shield against a frontal drop attack.
func pawnShieldBonus(pos shogi.Position, pl shogi.Player) Tapered {
	king := pos.KingSquare(pl)
	fwd := pl.Forward()
	pawns := pos.PieceBB(shogi.Pawn, pl)

	row := king.Row() + fwd
	if row < 0 || row > 8 {
		return Tapered{}
	}
	count := 0
	for _, dCol := range []int{-1, 0, 1} {
		col := king.Col() + dCol
		if col < 0 || col > 8 {
			continue
		}
		sq := shogi.NewSquare(row, col)
		if pawns.IsSet(sq) {
			count++
		}
	}
	return Tapered{MG: Score(count * 12), EG: Score(count * 4)}
}

// infiltrationPenalty charges pl for enemy pieces that have physically
// occupied one of the 8 squares around pl's King (not merely attacking into
// it -- kingRingPressure in attack.go already covers that), weighted by how
// dangerous the infiltrator is.
func infiltrationPenalty(pos shogi.Position, pl shogi.Player) Tapered {
	king := pos.KingSquare(pl)
	opp := pl.Opponent()

	penalty := 0
	for _, sq := range shogi.KingAttacks(king).Squares() {
		pc, ok := pos.PieceAt(sq)
		if ok && pc.Player == opp {
			penalty += attackerWeight(pc.Type)
		}
	}
	return Tapered{MG: Score(-penalty * 18), EG: Score(-penalty * 10)}
}

// exposurePenalty charges pl for King-ring squares left empty of a friendly
// defender, scaled quadratically so a King stripped of most of its shell is
// punished far more than one missing a single defender.
func exposurePenalty(pos shogi.Position, pl shogi.Player) Tapered {
	king := pos.KingSquare(pl)
	own := pos.Occupancy(pl)

	ring := shogi.KingAttacks(king).Squares()
	missing := 0
	for _, sq := range ring {
		if !own.IsSet(sq) {
			missing++
		}
	}
	return Tapered{MG: Score(-missing * missing * 3), EG: Score(-missing * missing)}
}

// pawnStormPenalty charges pl for enemy pawns advancing on the files
// straddling pl's King, scaled by how close each pawn already is to the
// King's own rank. A static evaluator has no memory of prior plies to
// measure "the defender didn't respond" directly, so proximity stands in
// for escalation: an unanswered storm is, by the time it's evaluated again a
// few plies later, simply a more advanced (and so more heavily penalized)
// pawn on the same file.
func pawnStormPenalty(pos shogi.Position, pl shogi.Player) Tapered {
	king := pos.KingSquare(pl)
	opp := pl.Opponent()
	pawns := pos.PieceBB(shogi.Pawn, opp)

	penalty := 0
	for _, dCol := range []int{-1, 0, 1} {
		col := king.Col() + dCol
		if col < 0 || col > 8 {
			continue
		}
		for _, sq := range pawns.And(shogi.BitFile(col)).Squares() {
			dist := sq.Row() - king.Row() // ranks still between the pawn and the King
			if pl == shogi.White {
				dist = king.Row() - sq.Row()
			}
			if dist <= 0 || dist > 4 {
				continue // level with or behind the King, or still in its own half
			}
			penalty += 5 - dist
		}
	}
	return Tapered{MG: Score(-penalty * 5), EG: Score(-penalty * 2)}
}

// KingSafetyTerm combines castle recognition, pawn shield, infiltration,
// exposure and pawn-storm pressure into a single tapered score, from Black's
// perspective. Safety matters far less once material has thinned to a bare
// endgame, so it is weighted towards the midgame overall (the individual
// sub-terms already carry their own MG/EG split).
func KingSafetyTerm(pos shogi.Position, castles *CastleRecognizer) Tapered {
	black := castles.Match(pos, shogi.Black).
		Add(pawnShieldBonus(pos, shogi.Black)).
		Add(infiltrationPenalty(pos, shogi.Black)).
		Add(exposurePenalty(pos, shogi.Black)).
		Add(pawnStormPenalty(pos, shogi.Black))
	white := castles.Match(pos, shogi.White).
		Add(pawnShieldBonus(pos, shogi.White)).
		Add(infiltrationPenalty(pos, shogi.White)).
		Add(exposurePenalty(pos, shogi.White)).
		Add(pawnStormPenalty(pos, shogi.White))
	return black.Sub(white)
}
