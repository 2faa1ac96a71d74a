package eval

import "github.com/nanakusa/shogo/pkg/shogi"

// pieceSquareTable holds a tapered bonus per square, built once at package
// init the way the bitboard attack tables are in pkg/shogi, for every piece
// type from Black's point of view; White's bonus is read by mirroring the
// row (see pstAt).
var pieceSquareTable [shogi.NumPieceTypes][81]Tapered

func init() {
	for pt := shogi.ZeroPieceType; pt < shogi.NumPieceTypes; pt++ {
		for sq := shogi.ZeroSquare; sq < shogi.NumSquares; sq++ {
			pieceSquareTable[pt][sq] = pstValue(pt, sq)
		}
	}
}

// pstValue computes the Black-perspective bonus for pt at sq. Forward
// advancement (higher row) is rewarded for pieces whose promotion trades
// mobility for reach (Pawn, Lance, Knight, Silver); centralization is
// rewarded for sliding pieces; the King is rewarded for staying back and
// towards the side files in the midgame, and centralized in the endgame.
func pstValue(pt shogi.PieceType, sq shogi.Square) Tapered {
	row, col := sq.Row(), sq.Col()
	centerFile := 4 - abs(col-4) // 0 (edge) .. 4 (center file)

	switch pt {
	case shogi.Pawn:
		return Tapered{MG: Score(row * 2), EG: Score(row * 3)}
	case shogi.Lance:
		return Tapered{MG: Score(row), EG: Score(row * 2)}
	case shogi.Knight:
		return Tapered{MG: Score(row + centerFile), EG: Score(row*2 + centerFile)}
	case shogi.Silver:
		return Tapered{MG: Score(row + centerFile), EG: Score(row + centerFile*2)}
	case shogi.Gold, shogi.PromotedPawn, shogi.PromotedLance, shogi.PromotedKnight, shogi.PromotedSilver:
		return Tapered{MG: Score(centerFile * 2), EG: Score(centerFile * 3)}
	case shogi.Bishop, shogi.PromotedBishop:
		return Tapered{MG: Score(centerFile * 3), EG: Score(centerFile * 4)}
	case shogi.Rook, shogi.PromotedRook:
		return Tapered{MG: Score(centerFile * 2), EG: Score(centerFile * 4)}
	case shogi.King:
		backRank := row // distance from Black's own back rank
		return Tapered{MG: Score(-backRank*4 + (4 - centerFile)), EG: Score(centerFile * 4)}
	default:
		return Tapered{}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// pstAt returns the piece-square bonus for pt belonging to pl at sq, from
// pl's own perspective (positive is always good for pl).
func pstAt(pt shogi.PieceType, pl shogi.Player, sq shogi.Square) Tapered {
	if pl == shogi.Black {
		return pieceSquareTable[pt][sq]
	}
	mirrored := shogi.NewSquare(8-sq.Row(), sq.Col())
	return pieceSquareTable[pt][mirrored]
}

// PieceSquareTerm sums piece-square bonuses over the board, from Black's
// perspective.
func PieceSquareTerm(pos shogi.Position) Tapered {
	var total Tapered
	for pt := shogi.ZeroPieceType; pt < shogi.NumPieceTypes; pt++ {
		for _, sq := range pos.PieceBB(pt, shogi.Black).Squares() {
			total = total.Add(pstAt(pt, shogi.Black, sq))
		}
		for _, sq := range pos.PieceBB(pt, shogi.White).Squares() {
			total = total.Sub(pstAt(pt, shogi.White, sq))
		}
	}
	return total
}
