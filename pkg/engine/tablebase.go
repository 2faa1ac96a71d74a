package engine

import (
	"context"

	"github.com/nanakusa/shogo/pkg/eval"
)

// TablebaseOutcome is the verdict a tablebase returns for a position.
type TablebaseOutcome int

const (
	TablebaseUnknown TablebaseOutcome = iota
	TablebaseWin
	TablebaseLoss
	TablebaseDraw
)

// TablebaseResult is one probe response: an outcome, an optional distance
// to mate, and (for Unknown) a confidence the caller should scale by.
type TablebaseResult struct {
	Outcome        TablebaseOutcome
	DistanceToMate int
	HasDistance    bool
	Confidence     float32
}

// Tablebase is an external collaborator the engine may consult for exact
// endgame results; no implementation ships in this module.
type Tablebase interface {
	Probe(ctx context.Context, sfen string) (TablebaseResult, bool, error)
}

// convertTablebaseScore turns a tablebase verdict into a search score,
// preferring shorter mates and scaling unknown results by confidence.
func convertTablebaseScore(r TablebaseResult) eval.Score {
	const tablebaseBase = eval.Score(10000)

	switch r.Outcome {
	case TablebaseWin:
		if r.HasDistance {
			return tablebaseBase - eval.Score(r.DistanceToMate)
		}
		return tablebaseBase
	case TablebaseLoss:
		if r.HasDistance {
			return -tablebaseBase - eval.Score(r.DistanceToMate)
		}
		return -tablebaseBase
	case TablebaseDraw:
		return eval.Zero
	default: // TablebaseUnknown
		if r.HasDistance {
			return eval.Score(float32(tablebaseBase-eval.Score(r.DistanceToMate)) * r.Confidence)
		}
		return eval.Zero
	}
}
