package shogi

import "fmt"

const repetitionLimit = 4

type node struct {
	pos  Position
	hash Hash

	givesCheck bool // true if the move that produced pos checked the new side to move
	mover      Player

	next Move // the move played from this node, if not current
	prev *node
}

// Board is a Shogi game: current position plus the move history needed to
// correctly adjudicate repetition and perpetual check. Not thread-safe.
type Board struct {
	zt          *ZobristTable
	repetitions map[Hash]int

	turn       Player
	moveNumber int
	result     Result
	current    *node
}

// NewBoard starts a Board from the standard initial position.
func NewBoard(zt *ZobristTable) *Board {
	return NewBoardFromPosition(zt, NewInitialPosition(), Black, 1)
}

// NewBoardFromPosition starts a Board from an arbitrary position, as
// produced by FromSFEN.
func NewBoardFromPosition(zt *ZobristTable, pos Position, turn Player, moveNumber int) *Board {
	current := &node{
		pos:  pos,
		hash: zt.Hash(pos, turn),
	}
	return &Board{
		zt:          zt,
		repetitions: map[Hash]int{current.hash: 1},
		turn:        turn,
		moveNumber:  moveNumber,
		current:     current,
	}
}

func (b *Board) Position() Position { return b.current.pos }
func (b *Board) Turn() Player       { return b.turn }
func (b *Board) MoveNumber() int    { return b.moveNumber }
func (b *Board) Result() Result     { return b.result }
func (b *Board) Hash() Hash         { return b.current.hash }

// LastMove returns the last move played, if any.
func (b *Board) LastMove() (Move, bool) {
	if b.current.prev != nil {
		return b.current.prev.next, true
	}
	return Move{}, false
}

// PushMove plays m, assumed legal for the side to move, and updates
// repetition/check bookkeeping. Returns false if the game already has a
// terminal result.
func (b *Board) PushMove(m Move) bool {
	if b.result.Outcome != Undecided {
		return false
	}

	mover := b.turn
	next := b.current.pos.Apply(m, mover)
	opp := mover.Opponent()

	n := &node{
		pos:        next,
		hash:       b.zt.Move(b.current.hash, b.current.pos, m, mover),
		givesCheck: next.IsChecked(opp),
		mover:      mover,
		prev:       b.current,
	}

	b.current.next = m
	b.current = n
	b.turn = opp
	b.moveNumber++
	b.repetitions[n.hash]++

	if count := b.repetitions[n.hash]; count >= repetitionLimit {
		b.result = b.adjudicateRepetition(n, count)
	}

	return true
}

// PopMove undoes the last move played. Returns false if there is none.
func (b *Board) PopMove() (Move, bool) {
	if b.current.prev == nil {
		return Move{}, false
	}

	b.repetitions[b.current.hash]--
	b.turn = b.current.mover
	b.moveNumber--
	b.result = Result{Outcome: Undecided}

	b.current = b.current.prev
	m := b.current.next
	b.current.next = Move{}
	return m, true
}

// adjudicateRepetition determines whether a fourfold-repeated position is a
// plain draw or a loss by perpetual check: it walks back from the latest
// occurrence to the most recent earlier one and checks whether every move
// in that cycle, by one consistent player, gave check.
func (b *Board) adjudicateRepetition(n *node, count int) Result {
	perpetrator := n.mover
	allChecks := n.givesCheck

	steps := 0
	for cur := n.prev; cur != nil; cur = cur.prev {
		if cur.hash == n.hash && cur.pos.equalsForRepetition(n.pos) {
			break
		}
		if cur.mover == perpetrator && !cur.givesCheck {
			allChecks = false
		}
		steps++
		if steps > 400 {
			break // safety bound; genuine repetition cycles are short
		}
	}

	if allChecks {
		return Result{Outcome: lossFor(perpetrator), Reason: PerpetualCheck}
	}
	return Result{Outcome: Draw, Reason: Repetition}
}

// equalsForRepetition reports whether two positions are identical for the
// purpose of repetition detection: same piece placement and same hands for
// both players (the Zobrist hash already captures this, but hash equality
// alone cannot rule out a collision).
func (p Position) equalsForRepetition(o Position) bool {
	for pt := ZeroPieceType; pt < NumPieceTypes; pt++ {
		for pl := ZeroPlayer; pl < NumPlayers; pl++ {
			if p.pieces[pt][pl] != o.pieces[pt][pl] {
				return false
			}
		}
	}
	return p.hands[Black] == o.hands[Black] && p.hands[White] == o.hands[White]
}

// AdjudicateNoLegalMove settles the game when the side to move has none: in
// Shogi this is always a loss for that side (there is no stalemate draw).
func (b *Board) AdjudicateNoLegalMove() Result {
	reason := NoLegalMove
	if b.current.pos.IsChecked(b.turn) {
		reason = Checkmate
	}
	b.result = Result{Outcome: lossFor(b.turn), Reason: reason}
	return b.result
}

// Adjudicate forces a result, e.g. for resignation or a move-count cap.
func (b *Board) Adjudicate(result Result) {
	b.result = result
}

func (b *Board) String() string {
	return fmt.Sprintf("board{turn=%v hash=%x moveNumber=%d result=%v}\n%v", b.turn, b.current.hash, b.moveNumber, b.result, b.current.pos)
}
