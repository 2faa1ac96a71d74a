package shogi

import (
	"math/bits"
	"strings"
)

// Bitboard is an 81-bit set over the board squares, packed as two 64-bit
// words: Lo holds squares 0-62, Hi holds squares 63-80 (bit i of Hi is
// square 63+i). It relies on CPU-supported popcount/bitscan via math/bits.
type Bitboard struct {
	Lo, Hi uint64
}

// EmptyBitboard is the zero value.
var EmptyBitboard = Bitboard{}

func bitmaskFor(sq Square) (lo, hi uint64) {
	if sq < 63 {
		return 1 << uint(sq), 0
	}
	return 0, 1 << uint(sq-63)
}

// BitMask returns a bitboard with only the given square set.
func BitMask(sq Square) Bitboard {
	lo, hi := bitmaskFor(sq)
	return Bitboard{Lo: lo, Hi: hi}
}

func (b Bitboard) IsSet(sq Square) bool {
	lo, hi := bitmaskFor(sq)
	return b.Lo&lo != 0 || b.Hi&hi != 0
}

func (b Bitboard) Set(sq Square) Bitboard {
	lo, hi := bitmaskFor(sq)
	return Bitboard{Lo: b.Lo | lo, Hi: b.Hi | hi}
}

func (b Bitboard) Clear(sq Square) Bitboard {
	lo, hi := bitmaskFor(sq)
	return Bitboard{Lo: b.Lo &^ lo, Hi: b.Hi &^ hi}
}

func (b Bitboard) Or(o Bitboard) Bitboard {
	return Bitboard{Lo: b.Lo | o.Lo, Hi: b.Hi | o.Hi}
}

func (b Bitboard) And(o Bitboard) Bitboard {
	return Bitboard{Lo: b.Lo & o.Lo, Hi: b.Hi & o.Hi}
}

func (b Bitboard) Xor(o Bitboard) Bitboard {
	return Bitboard{Lo: b.Lo ^ o.Lo, Hi: b.Hi ^ o.Hi}
}

// AndNot returns b &^ o.
func (b Bitboard) AndNot(o Bitboard) Bitboard {
	return Bitboard{Lo: b.Lo &^ o.Lo, Hi: b.Hi &^ o.Hi}
}

// Not returns the complement, masked to the 81 valid squares.
func (b Bitboard) Not() Bitboard {
	const hiMask = (1 << 18) - 1
	return Bitboard{Lo: ^b.Lo, Hi: ^b.Hi & hiMask}
}

func (b Bitboard) IsEmpty() bool {
	return b.Lo == 0 && b.Hi == 0
}

// PopCount returns the population count.
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(b.Lo) + bits.OnesCount64(b.Hi)
}

// Lsb returns the least-significant set square. Panics-free: returns
// NumSquares if empty (callers must check IsEmpty first).
func (b Bitboard) Lsb() Square {
	if b.Lo != 0 {
		return Square(bits.TrailingZeros64(b.Lo))
	}
	if b.Hi == 0 {
		return NumSquares
	}
	return Square(63 + bits.TrailingZeros64(b.Hi))
}

// PopLsb clears and returns the least-significant set square.
func (b Bitboard) PopLsb() (Square, Bitboard) {
	sq := b.Lsb()
	return sq, b.Clear(sq)
}

// Squares returns all set squares, lowest first.
func (b Bitboard) Squares() []Square {
	var ret []Square
	for !b.IsEmpty() {
		var sq Square
		sq, b = b.PopLsb()
		ret = append(ret, sq)
	}
	return ret
}

func (b Bitboard) String() string {
	var sb strings.Builder
	for row := 0; row < 9; row++ {
		for col := 0; col < 9; col++ {
			if b.IsSet(NewSquare(row, col)) {
				sb.WriteRune('X')
			} else {
				sb.WriteRune('-')
			}
		}
		if row != 8 {
			sb.WriteRune('/')
		}
	}
	return sb.String()
}

// BitFile returns a bitboard for the whole given column.
func BitFile(col int) Bitboard {
	var b Bitboard
	for row := 0; row < 9; row++ {
		b = b.Set(NewSquare(row, col))
	}
	return b
}

// BitRow returns a bitboard for the whole given row.
func BitRow(row int) Bitboard {
	var b Bitboard
	for col := 0; col < 9; col++ {
		b = b.Set(NewSquare(row, col))
	}
	return b
}

// --- Precomputed non-sliding attack tables, built once at package init in
// an immutable, shared-read structure per spec.md's Design Notes.

var (
	kingAttacks   [NumSquares]Bitboard
	goldAttacks   [NumPlayers][NumSquares]Bitboard
	silverAttacks [NumPlayers][NumSquares]Bitboard
	knightAttacks [NumPlayers][NumSquares]Bitboard
	pawnAttacks   [NumPlayers][NumSquares]Bitboard
)

func init() {
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		r, c := sq.Row(), sq.Col()

		kingAttacks[sq] = offsets(r, c, [][2]int{
			{1, 0}, {-1, 0}, {0, 1}, {0, -1},
			{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
		})

		for _, pl := range []Player{Black, White} {
			fwd := pl.Forward()
			goldAttacks[pl][sq] = offsets(r, c, [][2]int{
				{fwd, 0}, {fwd, -1}, {fwd, 1}, {0, -1}, {0, 1}, {-fwd, 0},
			})
			silverAttacks[pl][sq] = offsets(r, c, [][2]int{
				{fwd, 0}, {fwd, -1}, {fwd, 1}, {-fwd, -1}, {-fwd, 1},
			})
			knightAttacks[pl][sq] = offsets(r, c, [][2]int{
				{2 * fwd, -1}, {2 * fwd, 1},
			})
			pawnAttacks[pl][sq] = offsets(r, c, [][2]int{
				{fwd, 0},
			})
		}
	}
}

func offsets(r, c int, deltas [][2]int) Bitboard {
	var b Bitboard
	for _, d := range deltas {
		nr, nc := r+d[0], c+d[1]
		if nr < 0 || nr > 8 || nc < 0 || nc > 8 {
			continue
		}
		b = b.Set(NewSquare(nr, nc))
	}
	return b
}

// KingAttacks returns the King's attack set (same both sides).
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// GoldAttacks returns the Gold-pattern attack set, shared by Gold and the
// four "promoted minor" piece types.
func GoldAttacks(pl Player, sq Square) Bitboard {
	return goldAttacks[pl][sq]
}

// SilverAttacks returns the Silver's attack set.
func SilverAttacks(pl Player, sq Square) Bitboard {
	return silverAttacks[pl][sq]
}

// KnightAttacks returns the Knight's attack set (the two forward jumps).
func KnightAttacks(pl Player, sq Square) Bitboard {
	return knightAttacks[pl][sq]
}

// PawnAttacks returns the Pawn's single forward-step attack set.
func PawnAttacks(pl Player, sq Square) Bitboard {
	return pawnAttacks[pl][sq]
}

// rookDirs and bishopDirs are the 8 compass directions used by sliding pieces, as
// (drow, dcol) unit steps.
var (
	rookDirs   = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// slidingAttacks ray-walks each direction from sq against the occupancy
// bit-set, stopping on (and including) the first occupied square.
func slidingAttacks(sq Square, occ Bitboard, dirs [][2]int) Bitboard {
	var b Bitboard
	r, c := sq.Row(), sq.Col()
	for _, d := range dirs {
		nr, nc := r+d[0], c+d[1]
		for nr >= 0 && nr <= 8 && nc >= 0 && nc <= 8 {
			to := NewSquare(nr, nc)
			b = b.Set(to)
			if occ.IsSet(to) {
				break
			}
			nr += d[0]
			nc += d[1]
		}
	}
	return b
}

// LanceAttacks ray-walks the single forward direction for pl from sq.
func LanceAttacks(pl Player, sq Square, occ Bitboard) Bitboard {
	return slidingAttacks(sq, occ, [][2]int{{pl.Forward(), 0}})
}

// BishopAttacks ray-walks the 4 diagonal directions from sq.
func BishopAttacks(sq Square, occ Bitboard) Bitboard {
	return slidingAttacks(sq, occ, bishopDirs)
}

// RookAttacks ray-walks the 4 orthogonal directions from sq.
func RookAttacks(sq Square, occ Bitboard) Bitboard {
	return slidingAttacks(sq, occ, rookDirs)
}

// PromotedBishopAttacks is the union of Bishop sliding attacks with King
// single-step attacks ("horse").
func PromotedBishopAttacks(sq Square, occ Bitboard) Bitboard {
	return BishopAttacks(sq, occ).Or(kingAttacks[sq])
}

// PromotedRookAttacks is the union of Rook sliding attacks with King
// single-step attacks ("dragon").
func PromotedRookAttacks(sq Square, occ Bitboard) Bitboard {
	return RookAttacks(sq, occ).Or(kingAttacks[sq])
}

// Attacks returns the attack set of the given piece at sq, against the
// given total-occupancy bit-set, from pl's perspective.
func Attacks(pt PieceType, pl Player, sq Square, occ Bitboard) Bitboard {
	switch pt {
	case King:
		return KingAttacks(sq)
	case Gold, PromotedPawn, PromotedLance, PromotedKnight, PromotedSilver:
		return GoldAttacks(pl, sq)
	case Silver:
		return SilverAttacks(pl, sq)
	case Knight:
		return KnightAttacks(pl, sq)
	case Pawn:
		return PawnAttacks(pl, sq)
	case Lance:
		return LanceAttacks(pl, sq, occ)
	case Bishop:
		return BishopAttacks(sq, occ)
	case Rook:
		return RookAttacks(sq, occ)
	case PromotedBishop:
		return PromotedBishopAttacks(sq, occ)
	case PromotedRook:
		return PromotedRookAttacks(sq, occ)
	default:
		return EmptyBitboard
	}
}
