package shogi

import "fmt"

// Position is the bit-set board representation: per (piece_type, player) a
// bit-set over 81 squares, plus per-player and total occupancy, plus each
// player's hand. It is a plain value type -- copying a Position deep-copies
// its entire state, which keeps Move/make-unmake trivially correct since
// callers that want an "unmake" simply keep the prior value around.
//
// Invariant: the disjoint union of piece bit-sets for a player equals that
// player's occupancy; each square holds at most one piece; exactly one King
// per side.
type Position struct {
	pieces [NumPieceTypes][NumPlayers]Bitboard
	occ    [NumPlayers]Bitboard
	hands  [NumPlayers]Hand
}

// NewEmptyPosition returns a Position with no pieces and empty hands.
func NewEmptyPosition() Position {
	return Position{}
}

// NewInitialPosition returns the standard Shogi starting position.
func NewInitialPosition() Position {
	var p Position

	// Black (Sente) starts at rows 0-2 and advances towards its rows 6-8
	// promotion zone; White (Gote) is the mirror image.
	backRank := []PieceType{Lance, Knight, Silver, Gold, King, Gold, Silver, Knight, Lance}
	for col, pt := range backRank {
		p = p.withPiece(NewSquare(0, col), Piece{Type: pt, Player: Black})
		p = p.withPiece(NewSquare(8, col), Piece{Type: pt, Player: White})
	}
	p = p.withPiece(NewSquare(1, 1), Piece{Type: Rook, Player: Black})
	p = p.withPiece(NewSquare(1, 7), Piece{Type: Bishop, Player: Black})
	p = p.withPiece(NewSquare(7, 7), Piece{Type: Rook, Player: White})
	p = p.withPiece(NewSquare(7, 1), Piece{Type: Bishop, Player: White})
	for col := 0; col < 9; col++ {
		p = p.withPiece(NewSquare(2, col), Piece{Type: Pawn, Player: Black})
		p = p.withPiece(NewSquare(6, col), Piece{Type: Pawn, Player: White})
	}
	return p
}

func (p Position) withPiece(sq Square, pc Piece) Position {
	p.pieces[pc.Type][pc.Player] = p.pieces[pc.Type][pc.Player].Set(sq)
	p.occ[pc.Player] = p.occ[pc.Player].Set(sq)
	return p
}

// PieceBB returns the bit-set of pt/pl.
func (p Position) PieceBB(pt PieceType, pl Player) Bitboard {
	return p.pieces[pt][pl]
}

// Occupancy returns pl's total occupancy.
func (p Position) Occupancy(pl Player) Bitboard {
	return p.occ[pl]
}

// All returns the total occupancy of both players.
func (p Position) All() Bitboard {
	return p.occ[Black].Or(p.occ[White])
}

// Hand returns pl's hand.
func (p Position) Hand(pl Player) Hand {
	return p.hands[pl]
}

// PieceAt returns the piece occupying sq, if any.
func (p Position) PieceAt(sq Square) (Piece, bool) {
	for pt := ZeroPieceType; pt < NumPieceTypes; pt++ {
		if p.pieces[pt][Black].IsSet(sq) {
			return Piece{Type: pt, Player: Black}, true
		}
		if p.pieces[pt][White].IsSet(sq) {
			return Piece{Type: pt, Player: White}, true
		}
	}
	return Piece{}, false
}

// KingSquare returns pl's King square. Panics if pl has no King, which is
// never true for a position reached through legal play.
func (p Position) KingSquare(pl Player) Square {
	bb := p.pieces[King][pl]
	if bb.IsEmpty() {
		panic("position has no king for player")
	}
	return bb.Lsb()
}

// IsSquareAttacked reports whether sq is attacked by any piece of side by.
func (p Position) IsSquareAttacked(sq Square, by Player) bool {
	all := p.All()
	for pt := ZeroPieceType; pt < NumPieceTypes; pt++ {
		bb := p.pieces[pt][by]
		for !bb.IsEmpty() {
			var from Square
			from, bb = bb.PopLsb()
			if Attacks(pt, by, from, all).IsSet(sq) {
				return true
			}
		}
	}
	return false
}

// IsChecked reports whether pl's King is currently attacked.
func (p Position) IsChecked(pl Player) bool {
	return p.IsSquareAttacked(p.KingSquare(pl), pl.Opponent())
}

// place adds pc at sq. Caller must ensure sq is empty.
func (p *Position) place(sq Square, pc Piece) {
	p.pieces[pc.Type][pc.Player] = p.pieces[pc.Type][pc.Player].Set(sq)
	p.occ[pc.Player] = p.occ[pc.Player].Set(sq)
}

// remove clears pc from sq. Caller must ensure pc occupies sq.
func (p *Position) remove(sq Square, pc Piece) {
	p.pieces[pc.Type][pc.Player] = p.pieces[pc.Type][pc.Player].Clear(sq)
	p.occ[pc.Player] = p.occ[pc.Player].Clear(sq)
}

// Apply returns the Position after playing m (assumed pseudo-legal for
// mover). A captured piece, promoted or not, is removed from the board and
// added unpromoted to mover's hand. The receiver is unchanged.
func (p Position) Apply(m Move, mover Player) Position {
	next := p // value copy

	if m.IsDrop {
		next.hands[mover] = next.hands[mover].Remove(m.Piece)
		next.place(m.To, Piece{Type: m.Piece, Player: mover})
		return next
	}

	next.remove(m.From, Piece{Type: m.Piece, Player: mover})
	if m.IsCapture {
		if victim, ok := next.PieceAt(m.To); ok {
			next.remove(m.To, victim)
		}
		next.hands[mover] = next.hands[mover].Add(m.CaptureType)
	}
	next.place(m.To, Piece{Type: m.ResultType(), Player: mover})
	return next
}

// HasInsufficientMaterial is a defensive stub: Shogi has no agreed
// insufficient-material draw rule (kings always retain mating material via
// drops), so this always reports false. Present for parity with the
// repetition/draw machinery in Board.
func (p Position) HasInsufficientMaterial() bool {
	return false
}

func (p Position) String() string {
	s := ""
	for row := 0; row < 9; row++ {
		for col := 0; col < 9; col++ {
			pc, ok := p.PieceAt(NewSquare(row, col))
			if !ok {
				s += " . "
				continue
			}
			mark := "+"
			if pc.Player == Black {
				mark = " "
			}
			s += fmt.Sprintf("%s%-2v", mark, pc.Type)
		}
		s += "\n"
	}
	return s
}
