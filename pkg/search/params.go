package search

import "github.com/nanakusa/shogo/pkg/eval"

// Params collects every search-technique toggle and threshold that used to
// be a package constant, so an engine built over this package can expose
// them as configuration instead of requiring a rebuild to retune.
type Params struct {
	EnableNullMove        bool
	EnableLMR             bool
	EnableIID             bool
	EnableAspiration      bool
	EnableQuiescence      bool
	EnableDeltaPruning    bool
	EnableFutilityPruning bool

	NullMoveMinDepth int

	LMRMinDepth      int
	LMRMinMoveIndex  int
	LMRBaseReduction int
	LMRMaxReduction  int

	IIDMinDepth int

	DeltaMargin               eval.Score
	FutilityMargin            eval.Score
	HighValueCaptureThreshold eval.Score

	AspirationBaseWindow     eval.Score
	AspirationMaxWindow      eval.Score
	AspirationMinDepth       int
	AspirationMaxResearches  int
	AspirationDynamicScaling bool
	AspirationAdaptiveSizing bool
}

// DefaultParams reproduces the behavior this package shipped with before
// every technique became independently configurable.
func DefaultParams() Params {
	return Params{
		EnableNullMove:        true,
		EnableLMR:             true,
		EnableIID:             true,
		EnableAspiration:      true,
		EnableQuiescence:      true,
		EnableDeltaPruning:    true,
		EnableFutilityPruning: true,

		NullMoveMinDepth: 3,

		LMRMinDepth:      3,
		LMRMinMoveIndex:  3,
		LMRBaseReduction: 1,
		LMRMaxReduction:  2,

		IIDMinDepth: 5,

		DeltaMargin:               200,
		FutilityMargin:            100,
		HighValueCaptureThreshold: 1000, // a Rook-class capture or better

		AspirationBaseWindow:     50,
		AspirationMaxWindow:      800,
		AspirationMinDepth:       4,
		AspirationMaxResearches:  4,
		AspirationDynamicScaling: true,
		AspirationAdaptiveSizing: false,
	}
}
