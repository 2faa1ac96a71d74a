package eval

import "github.com/nanakusa/shogo/pkg/shogi"

// Pin describes a sliding-piece pin against a King: Pinned, owned by the
// King's side, sits directly between King and Attacker along one ray.
type Pin struct {
	Attacker, Pinned, King shogi.Square
}

// FindPins returns every pin against defender's King.
func FindPins(pos shogi.Position, defender shogi.Player) []Pin {
	attacker := defender.Opponent()
	king := pos.KingSquare(defender)
	all := pos.All()
	own := pos.Occupancy(defender)

	var pins []Pin
	scan := func(ray func(sq shogi.Square, occ shogi.Bitboard) shogi.Bitboard, types []shogi.PieceType) {
		near := ray(king, all)
		for _, pinned := range near.And(own).Squares() {
			far := ray(king, all.Clear(pinned)).AndNot(near)
			for _, pt := range types {
				if candidates := far.And(pos.PieceBB(pt, attacker)); !candidates.IsEmpty() {
					pins = append(pins, Pin{Attacker: candidates.Lsb(), Pinned: pinned, King: king})
					break
				}
			}
		}
	}

	scan(shogi.RookAttacks, []shogi.PieceType{shogi.Rook, shogi.PromotedRook})
	scan(shogi.BishopAttacks, []shogi.PieceType{shogi.Bishop, shogi.PromotedBishop})
	scan(func(sq shogi.Square, occ shogi.Bitboard) shogi.Bitboard {
		return shogi.LanceAttacks(defender, sq, occ)
	}, []shogi.PieceType{shogi.Lance})

	return pins
}

// attackerWeight scores how dangerous an attacking piece type is when
// counted against the defending King's safety.
func attackerWeight(pt shogi.PieceType) int {
	switch pt.Unpromoted() {
	case shogi.Rook:
		return 5
	case shogi.Bishop:
		return 4
	case shogi.Gold, shogi.Silver:
		return 2
	case shogi.Lance, shogi.Knight:
		return 1
	default:
		return 1
	}
}

// kingRingPressure sums, over the 8 squares adjacent to pl's King, a
// weighted count of enemy pieces attacking into the ring.
func kingRingPressure(pos shogi.Position, pl shogi.Player) int {
	king := pos.KingSquare(pl)
	ring := shogi.KingAttacks(king)
	opp := pl.Opponent()
	all := pos.All()

	pressure := 0
	for _, sq := range ring.Squares() {
		if !pos.IsSquareAttacked(sq, opp) {
			continue
		}
		for pt := shogi.ZeroPieceType; pt < shogi.NumPieceTypes; pt++ {
			bb := pos.PieceBB(pt, opp)
			for _, from := range bb.Squares() {
				if shogi.Attacks(pt, opp, from, all).IsSet(sq) {
					pressure += attackerWeight(pt)
				}
			}
		}
	}
	return pressure
}

// forkBonus rewards a side for having a single piece simultaneously
// attacking two or more enemy pieces worth at least as much as itself.
func forkBonus(pos shogi.Position, pl shogi.Player) Score {
	opp := pl.Opponent()
	all := pos.All()
	var bonus Score

	for pt := shogi.ZeroPieceType; pt < shogi.NumPieceTypes; pt++ {
		if pt == shogi.King {
			continue
		}
		mine := Score(pt.BaseValue())
		for _, from := range pos.PieceBB(pt, pl).Squares() {
			targets := shogi.Attacks(pt, pl, from, all).And(pos.Occupancy(opp))
			hits := 0
			for _, to := range targets.Squares() {
				if victim, ok := pos.PieceAt(to); ok && Score(victim.Type.BaseValue()) >= mine {
					hits++
				}
			}
			if hits >= 2 {
				bonus += 40
			}
		}
	}
	return bonus
}

// AttackTerm combines pin, king-ring pressure and fork terms into a single
// tapered score, from Black's perspective. Pressure and pins are weighted
// towards the midgame; the fork bonus counts the same in both phases.
func AttackTerm(pos shogi.Position) Tapered {
	blackPressure := Score(kingRingPressure(pos, shogi.Black))
	whitePressure := Score(kingRingPressure(pos, shogi.White))
	pressureTerm := whitePressure - blackPressure // pressure on White's King favors Black

	blackPins := Score(len(FindPins(pos, shogi.Black)))
	whitePins := Score(len(FindPins(pos, shogi.White)))
	pinTerm := whitePins - blackPins

	forkTerm := forkBonus(pos, shogi.Black) - forkBonus(pos, shogi.White)

	mg := pressureTerm*6 + pinTerm*25 + forkTerm
	eg := pressureTerm*3 + pinTerm*15 + forkTerm
	return Tapered{MG: mg, EG: eg}
}
