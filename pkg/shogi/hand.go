package shogi

// MaxHandCount is the largest possible count of a single piece type a
// player could hold (all 18 pawns, in the extreme).
const MaxHandCount = 18

// Hand is the set of captured, undropped pieces held by one player, keyed
// by base (unpromoted) PieceType. Promoted pieces demote to base form on
// capture, so only the 7 base types (excluding King) are tracked.
type Hand [NumHandTypes]uint8

// Count returns the number of pt held in hand. pt is normalized to its
// base (unpromoted) form.
func (h Hand) Count(pt PieceType) int {
	return int(h[pt.Unpromoted()])
}

// Add increments the hand count for pt (normalized to base form).
func (h Hand) Add(pt PieceType) Hand {
	h[pt.Unpromoted()]++
	return h
}

// Remove decrements the hand count for pt (normalized to base form). It is
// a programming error to call Remove when Count(pt) == 0.
func (h Hand) Remove(pt PieceType) Hand {
	h[pt.Unpromoted()]--
	return h
}

// IsEmpty reports whether the hand holds no pieces.
func (h Hand) IsEmpty() bool {
	for _, c := range h {
		if c != 0 {
			return false
		}
	}
	return true
}

// HandPieceTypes lists the 7 base piece types that may be held in hand, in
// a fixed order matching Hand's index.
var HandPieceTypes = [NumHandTypes]PieceType{Pawn, Lance, Knight, Silver, Gold, Bishop, Rook}
