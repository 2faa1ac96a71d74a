package shogi

// PieceType is one of the 14 Shogi piece types: 8 base types plus 6
// promoted forms (Gold and King never promote).
type PieceType uint8

const (
	Pawn PieceType = iota
	Lance
	Knight
	Silver
	Gold
	Bishop
	Rook
	King
	PromotedPawn
	PromotedLance
	PromotedKnight
	PromotedSilver
	PromotedBishop
	PromotedRook

	ZeroPieceType PieceType = 0
	NumPieceTypes PieceType = 14

	// NumHandTypes is the number of distinct base types that can be held
	// in hand (everything but the King).
	NumHandTypes PieceType = 7
)

// BaseValue is the nominal centipawn value of the piece type, grounded on
// the reference implementation's base_value table.
func (p PieceType) BaseValue() int {
	switch p {
	case Pawn:
		return 100
	case Lance:
		return 300
	case Knight:
		return 320
	case Silver:
		return 450
	case Gold:
		return 500
	case Bishop:
		return 800
	case Rook:
		return 1000
	case King:
		return 20000
	case PromotedPawn, PromotedLance, PromotedKnight, PromotedSilver:
		return 500
	case PromotedBishop:
		return 1200
	case PromotedRook:
		return 1300
	default:
		return 0
	}
}

// CanPromote reports whether the piece type has a promoted form.
func (p PieceType) CanPromote() bool {
	switch p {
	case Pawn, Lance, Knight, Silver, Bishop, Rook:
		return true
	default:
		return false
	}
}

// Promoted returns the promoted form and true, if any.
func (p PieceType) Promoted() (PieceType, bool) {
	switch p {
	case Pawn:
		return PromotedPawn, true
	case Lance:
		return PromotedLance, true
	case Knight:
		return PromotedKnight, true
	case Silver:
		return PromotedSilver, true
	case Bishop:
		return PromotedBishop, true
	case Rook:
		return PromotedRook, true
	default:
		return p, false
	}
}

// IsPromoted reports whether the piece type is a promoted form.
func (p PieceType) IsPromoted() bool {
	return p >= PromotedPawn
}

// Unpromoted returns the base (unpromoted) form of the piece type. Capturing
// a promoted piece demotes it to this form in the captor's hand.
func (p PieceType) Unpromoted() PieceType {
	switch p {
	case PromotedPawn:
		return Pawn
	case PromotedLance:
		return Lance
	case PromotedKnight:
		return Knight
	case PromotedSilver:
		return Silver
	case PromotedBishop:
		return Bishop
	case PromotedRook:
		return Rook
	default:
		return p
	}
}

// IsSliding reports whether the piece type's attacks must be resolved by
// ray-walking against the occupancy bit-set (as opposed to a fixed
// per-square attack set).
func (p PieceType) IsSliding() bool {
	switch p {
	case Lance, Bishop, Rook, PromotedBishop, PromotedRook:
		return true
	default:
		return false
	}
}

func (p PieceType) String() string {
	switch p {
	case Pawn:
		return "P"
	case Lance:
		return "L"
	case Knight:
		return "N"
	case Silver:
		return "S"
	case Gold:
		return "G"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case King:
		return "K"
	case PromotedPawn:
		return "+P"
	case PromotedLance:
		return "+L"
	case PromotedKnight:
		return "+N"
	case PromotedSilver:
		return "+S"
	case PromotedBishop:
		return "+B"
	case PromotedRook:
		return "+R"
	default:
		return "?"
	}
}

// ParsePieceLetter parses a single-letter piece type (no '+' prefix), as
// used for drop notation ("P*5e") and hand strings.
func ParsePieceLetter(r rune) (PieceType, bool) {
	switch r {
	case 'p', 'P':
		return Pawn, true
	case 'l', 'L':
		return Lance, true
	case 'n', 'N':
		return Knight, true
	case 's', 'S':
		return Silver, true
	case 'g', 'G':
		return Gold, true
	case 'b', 'B':
		return Bishop, true
	case 'r', 'R':
		return Rook, true
	case 'k', 'K':
		return King, true
	default:
		return 0, false
	}
}

// Piece is an immutable (PieceType, Player) value.
type Piece struct {
	Type   PieceType
	Player Player
}

func (p Piece) String() string {
	if p.Player == White {
		return p.Type.String()
	}
	return p.Type.String()
}
