package eval

import (
	"context"

	"github.com/nanakusa/shogo/pkg/shogi"
)

// Evaluator is a static position evaluator, returning a score in
// centipawns from the perspective of the side to move. hash is the
// position's Zobrist hash, supplied by the caller so implementations can
// memoize without recomputing it.
type Evaluator interface {
	Evaluate(ctx context.Context, pos shogi.Position, turn shogi.Player, hash shogi.Hash) Score
}

// Standard combines material, piece-square, king safety, attack and pawn
// structure terms into a single tapered evaluation. It is the Evaluator the
// engine uses by default. Not safe for concurrent use; the search package
// gives each worker its own Standard.
type Standard struct {
	Castles *CastleRecognizer
	nodes   *NodeCache
	Noise   Noise
}

// NewStandard builds a Standard evaluator with its own castle-pattern and
// node-evaluation caches.
func NewStandard() *Standard {
	return &Standard{
		Castles: NewCastleRecognizer(1024),
		nodes:   NewNodeCache(1 << 16),
	}
}

func (s *Standard) Evaluate(ctx context.Context, pos shogi.Position, turn shogi.Player, hash shogi.Hash) Score {
	if v, ok := s.nodes.Get(hash); ok {
		return perspective(v, turn)
	}

	phase := Phase(pos)
	total := Material(pos).
		Add(PieceSquareTerm(pos)).
		Add(KingSafetyTerm(pos, s.Castles)).
		Add(AttackTerm(pos)).
		Add(PawnStructureTerm(pos))

	blackScore := total.Blend(phase)
	s.nodes.Put(hash, blackScore)

	return perspective(blackScore, turn) + s.Noise.Sample()
}

// perspective flips a Black-relative score for White to move.
func perspective(blackScore Score, turn shogi.Player) Score {
	if turn == shogi.White {
		return -blackScore
	}
	return blackScore
}
