package shogi

import "fmt"

// Move represents a not-necessarily-legal move: either an on-board move
// (From valid) or a drop (IsDrop true, From ignored). Capture/CaptureType
// and Promote are cached so make/unmake and evaluation need not re-derive
// them from the board.
type Move struct {
	IsDrop  bool
	From    Square // valid only if !IsDrop
	To      Square
	Piece   PieceType // type being moved/dropped, pre-promotion
	Promote bool
	Player  Player

	IsCapture   bool
	CaptureType PieceType // valid only if IsCapture; always the unpromoted form
}

func (m Move) Equals(o Move) bool {
	return m.IsDrop == o.IsDrop && m.From == o.From && m.To == o.To && m.Piece == o.Piece && m.Promote == o.Promote
}

// ResultType returns the piece type that occupies To after the move.
func (m Move) ResultType() PieceType {
	if m.Promote {
		p, _ := m.Piece.Promoted()
		return p
	}
	return m.Piece
}

// String renders the move in USI notation: on-board "7g7f" (+ '+' suffix on
// promotion), drop "P*5e".
func (m Move) String() string {
	if m.IsDrop {
		return fmt.Sprintf("%v*%v", m.Piece, m.To)
	}
	suffix := ""
	if m.Promote {
		suffix = "+"
	}
	return fmt.Sprintf("%v%v%v", m.From, m.To, suffix)
}

// ParseMove parses a move in USI notation.
func ParseMove(str string) (Move, error) {
	if len(str) < 4 {
		return Move{}, fmt.Errorf("invalid move: %q", str)
	}
	if str[1] == '*' {
		pt, ok := ParsePieceLetter(rune(str[0]))
		if !ok {
			return Move{}, fmt.Errorf("invalid drop piece: %q", str)
		}
		to, err := ParseSquare(str[2:4])
		if err != nil {
			return Move{}, fmt.Errorf("invalid drop target: %q: %w", str, err)
		}
		return Move{IsDrop: true, To: to, Piece: pt}, nil
	}

	from, err := ParseSquare(str[0:2])
	if err != nil {
		return Move{}, fmt.Errorf("invalid from: %q: %w", str, err)
	}
	to, err := ParseSquare(str[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("invalid to: %q: %w", str, err)
	}
	promote := len(str) >= 5 && str[4] == '+'
	return Move{From: from, To: to, Promote: promote}, nil
}

// FormatMoves joins a move list into a space-separated USI string.
func FormatMoves(moves []Move) string {
	s := ""
	for i, m := range moves {
		if i > 0 {
			s += " "
		}
		s += m.String()
	}
	return s
}
