package shogi

import "math/rand"

// Hash is a 64-bit position fingerprint covering pieces, hands and side to
// move. See https://research.cs.wisc.edu/techreports/1970/TR88.pdf.
type Hash uint64

// ZobristTable is a pseudo-randomized table for computing position hashes,
// seeded at construction so runs are reproducible.
type ZobristTable struct {
	pieceSquare [NumPieceTypes][NumPlayers][NumSquares]Hash
	hand        [NumHandTypes][NumPlayers][MaxHandCount + 1]Hash
	sideToMove  Hash
}

// NewZobristTable builds a table from the given seed.
func NewZobristTable(seed int64) *ZobristTable {
	z := &ZobristTable{}
	r := rand.New(rand.NewSource(seed))

	for pt := ZeroPieceType; pt < NumPieceTypes; pt++ {
		for pl := ZeroPlayer; pl < NumPlayers; pl++ {
			for sq := ZeroSquare; sq < NumSquares; sq++ {
				z.pieceSquare[pt][pl][sq] = Hash(r.Uint64())
			}
		}
	}
	for i := PieceType(0); i < NumHandTypes; i++ {
		for pl := ZeroPlayer; pl < NumPlayers; pl++ {
			for c := 0; c <= MaxHandCount; c++ {
				z.hand[i][pl][c] = Hash(r.Uint64())
			}
		}
	}
	z.sideToMove = Hash(r.Uint64())
	return z
}

// Hash computes the hash for the given position and side to move from
// scratch.
func (z *ZobristTable) Hash(pos Position, turn Player) Hash {
	var h Hash
	for pt := ZeroPieceType; pt < NumPieceTypes; pt++ {
		for pl := ZeroPlayer; pl < NumPlayers; pl++ {
			bb := pos.PieceBB(pt, pl)
			for !bb.IsEmpty() {
				var sq Square
				sq, bb = bb.PopLsb()
				h ^= z.pieceSquare[pt][pl][sq]
			}
		}
	}
	for i, pt := range HandPieceTypes {
		for pl := ZeroPlayer; pl < NumPlayers; pl++ {
			if c := pos.Hand(pl).Count(pt); c > 0 {
				h ^= z.hand[i][pl][c]
			}
		}
	}
	if turn == White {
		h ^= z.sideToMove
	}
	return h
}

// Move computes the hash of pos.Apply(m, mover) incrementally from h, the
// hash of pos before the move. Cheaper than a full recomputation.
func (z *ZobristTable) Move(h Hash, pos Position, m Move, mover Player) Hash {
	if m.IsDrop {
		idx := handIndex(m.Piece)
		before := pos.Hand(mover).Count(m.Piece)
		if before > 0 {
			h ^= z.hand[idx][mover][before]
		}
		if before-1 > 0 {
			h ^= z.hand[idx][mover][before-1]
		}
		h ^= z.pieceSquare[m.Piece][mover][m.To]
	} else {
		h ^= z.pieceSquare[m.Piece][mover][m.From]
		if m.IsCapture {
			if victim, ok := pos.PieceAt(m.To); ok {
				h ^= z.pieceSquare[victim.Type][victim.Player][m.To]
			}

			idx := handIndex(m.CaptureType)
			before := pos.Hand(mover).Count(m.CaptureType)
			if before > 0 {
				h ^= z.hand[idx][mover][before]
			}
			h ^= z.hand[idx][mover][before+1]
		}
		h ^= z.pieceSquare[m.ResultType()][mover][m.To]
	}
	h ^= z.sideToMove
	return h
}

func handIndex(pt PieceType) int {
	base := pt.Unpromoted()
	for i, t := range HandPieceTypes {
		if t == base {
			return i
		}
	}
	panic("piece type cannot be held in hand")
}
