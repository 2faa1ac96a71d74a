package engine

import (
	"context"
	"strings"

	"github.com/nanakusa/shogo/pkg/shogi"
)

// Book represents an opening book. Engine.Search looks up the current
// position at the start of every search; a hit is only logged and the search
// runs regardless, and an empty result does not stop later lookups.
type Book interface {
	Find(ctx context.Context, sfen string) ([]shogi.Move, error)
}

// NoBook is an opening book that never has a recommendation.
var NoBook Book = noBook{}

type noBook struct{}

func (noBook) Find(ctx context.Context, sfen string) ([]shogi.Move, error) {
	return nil, nil
}

// bookKey drops the move-number field from an SFEN string so book lookups
// are insensitive to it, mirroring how a position's book entry doesn't
// depend on how many moves it took to reach it.
func bookKey(sfen string) string {
	fields := strings.Fields(sfen)
	if len(fields) < 3 {
		return sfen
	}
	return strings.Join(fields[:3], " ")
}

// MapBook is a Book backed by a fixed table of SFEN position to candidate
// moves, built once (e.g. from a curated opening line set) and read-only
// thereafter.
type MapBook struct {
	moves map[string][]shogi.Move
}

// NewMapBook builds a Book from a position -> candidate moves table. The
// map is not copied; callers must not mutate it afterwards.
func NewMapBook(moves map[string][]shogi.Move) *MapBook {
	return &MapBook{moves: moves}
}

func (b *MapBook) Find(ctx context.Context, sfen string) ([]shogi.Move, error) {
	return b.moves[bookKey(sfen)], nil
}
