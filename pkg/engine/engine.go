package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nanakusa/shogo/pkg/eval"
	"github.com/nanakusa/shogo/pkg/search"
	"github.com/nanakusa/shogo/pkg/searchctl"
	"github.com/nanakusa/shogo/pkg/shogi"
	"github.com/nanakusa/shogo/pkg/tt"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(0, 1, 0)

// AspirationOptions tunes the aspiration-window re-search loop. A zero value
// for any numeric field falls back to search.DefaultParams()'s setting.
type AspirationOptions struct {
	BaseWindowSize       int
	MaxWindowSize        int
	MinDepth             int
	MaxResearches        int
	DynamicScaling       *bool
	EnableAdaptiveSizing *bool
}

// QuiescenceOptions tunes the quiescence search's capture-pruning margins. A
// zero value for any field falls back to search.DefaultParams()'s setting.
type QuiescenceOptions struct {
	DeltaMargin               int
	FutilityMargin            int
	HighValueCaptureThreshold int
}

// LMROptions tunes late move reduction. A zero value for any field falls
// back to search.DefaultParams()'s setting.
type LMROptions struct {
	BaseReduction int
	MaxReduction  int
}

// YBWCOptions gates and caps root-parallel fan-out; see
// pkg/search/parallel.Coordinator for their exact meaning. Only consulted
// when Threads > 1.
type YBWCOptions struct {
	MinDepth    int
	MinBranch   int
	MaxSiblings int
}

// Options are search creation options.
type Options struct {
	// Depth is the search depth limit. Zero means no limit; overridden by
	// per-call search options if provided.
	Depth uint
	// Hash is the transposition table size in MB. Zero disables the table.
	Hash uint
	// Noise adds centipawn randomness to leaf evaluations, for variety.
	Noise uint
	// Threads is the number of YBWC root workers. 0 or 1 means single-
	// threaded iterative deepening.
	Threads uint

	// MinTimePerMoveMs/MaxTimePerMoveMs clamp the soft per-move time limit
	// of any TimeControl supplied to Search, regardless of what its
	// Strategy would otherwise allocate. Zero leaves that side open.
	MinTimePerMoveMs uint
	MaxTimePerMoveMs uint
	// TimeAllocation selects how a supplied TimeControl divides the
	// remaining clock across moves still to come.
	TimeAllocation searchctl.Strategy

	// Enable* toggle individual search techniques; nil means use
	// search.DefaultParams()'s setting (enabled).
	EnableNullMove        *bool
	EnableLMR             *bool
	EnableIID             *bool
	EnableAspiration      *bool
	EnableQuiescence      *bool
	EnableDeltaPruning    *bool
	EnableFutilityPruning *bool

	Aspiration AspirationOptions
	Quiescence QuiescenceOptions
	LMR        LMROptions
	YBWC       YBWCOptions
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%v, noise=%v, threads=%v}", o.Depth, o.Hash, o.Noise, o.Threads)
}

// Validate reports an error for a Configuration no Engine can run with.
func (o Options) Validate() error {
	if o.Threads > 32 {
		return fmt.Errorf("invalid configuration: threads=%v exceeds 32", o.Threads)
	}
	return nil
}

// searchParams builds a search.Params from o, starting from
// search.DefaultParams() and overriding only the fields o explicitly sets.
func (o Options) searchParams() search.Params {
	p := search.DefaultParams()

	if o.EnableNullMove != nil {
		p.EnableNullMove = *o.EnableNullMove
	}
	if o.EnableLMR != nil {
		p.EnableLMR = *o.EnableLMR
	}
	if o.EnableIID != nil {
		p.EnableIID = *o.EnableIID
	}
	if o.EnableAspiration != nil {
		p.EnableAspiration = *o.EnableAspiration
	}
	if o.EnableQuiescence != nil {
		p.EnableQuiescence = *o.EnableQuiescence
	}
	if o.EnableDeltaPruning != nil {
		p.EnableDeltaPruning = *o.EnableDeltaPruning
	}
	if o.EnableFutilityPruning != nil {
		p.EnableFutilityPruning = *o.EnableFutilityPruning
	}

	if o.Aspiration.BaseWindowSize != 0 {
		p.AspirationBaseWindow = eval.Score(o.Aspiration.BaseWindowSize)
	}
	if o.Aspiration.MaxWindowSize != 0 {
		p.AspirationMaxWindow = eval.Score(o.Aspiration.MaxWindowSize)
	}
	if o.Aspiration.MinDepth != 0 {
		p.AspirationMinDepth = o.Aspiration.MinDepth
	}
	if o.Aspiration.MaxResearches != 0 {
		p.AspirationMaxResearches = o.Aspiration.MaxResearches
	}
	if o.Aspiration.DynamicScaling != nil {
		p.AspirationDynamicScaling = *o.Aspiration.DynamicScaling
	}
	if o.Aspiration.EnableAdaptiveSizing != nil {
		p.AspirationAdaptiveSizing = *o.Aspiration.EnableAdaptiveSizing
	}

	if o.Quiescence.DeltaMargin != 0 {
		p.DeltaMargin = eval.Score(o.Quiescence.DeltaMargin)
	}
	if o.Quiescence.FutilityMargin != 0 {
		p.FutilityMargin = eval.Score(o.Quiescence.FutilityMargin)
	}
	if o.Quiescence.HighValueCaptureThreshold != 0 {
		p.HighValueCaptureThreshold = eval.Score(o.Quiescence.HighValueCaptureThreshold)
	}

	if o.LMR.BaseReduction != 0 {
		p.LMRBaseReduction = o.LMR.BaseReduction
	}
	if o.LMR.MaxReduction != 0 {
		p.LMRMaxReduction = o.LMR.MaxReduction
	}

	return p
}

// Engine encapsulates game-playing logic: search, evaluation, and the
// opening book / tablebase collaborators.
type Engine struct {
	name, author string

	zt   *shogi.ZobristTable
	seed int64
	opts Options

	book      Book
	tablebase Tablebase

	b      *shogi.Board
	table  *tt.Table
	active searchctl.Handle
	mu     sync.Mutex
}

// Option is an engine creation option.
type Option func(*Engine)

// WithOptions sets default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) { e.opts = opts }
}

// WithZobrist configures the engine's Zobrist seed instead of the default
// of zero, so two engines never collide if run in the same process.
func WithZobrist(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithBook configures an opening book collaborator.
func WithBook(b Book) Option {
	return func(e *Engine) { e.book = b }
}

// WithTablebase configures a tablebase collaborator.
func WithTablebase(tb Tablebase) Option {
	return func(e *Engine) { e.tablebase = tb }
}

// New constructs an Engine at the initial Shogi position.
func New(ctx context.Context, name, author string, opts ...Option) (*Engine, error) {
	e := &Engine{name: name, author: author, book: NoBook}
	for _, fn := range opts {
		fn(e)
	}
	if err := e.opts.Validate(); err != nil {
		return nil, err
	}

	e.zt = shogi.NewZobristTable(e.seed)
	e.NewGame(ctx)

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e, nil
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opts
}

// NewGame resets the engine to the initial position and clears all caches
// and the transposition table, as required between unrelated games.
func (e *Engine) NewGame(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, _ = e.haltSearchIfActive(ctx)

	e.b = shogi.NewBoard(e.zt)
	if e.opts.Hash > 0 {
		e.table = tt.New(ctx, uint64(e.opts.Hash)<<20)
	} else {
		e.table = nil
	}

	logw.Infof(ctx, "New game: %v", e.b)
}

// ClearTranspositionTable drops all entries without otherwise resetting
// engine state (position and move history are untouched).
func (e *Engine) ClearTranspositionTable() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.table != nil {
		e.table.Clear()
	}
}

// Board returns the engine's board. Callers must not mutate it.
func (e *Engine) Board() *shogi.Board {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.b
}

// SFEN returns the current position in SFEN notation.
func (e *Engine) SFEN() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return shogi.ToSFEN(e.b.Position(), e.b.Turn(), e.b.MoveNumber())
}

// Move applies a move, usually the opponent's, to the engine's board.
func (e *Engine) Move(ctx context.Context, m shogi.Move) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, _ = e.haltSearchIfActive(ctx)

	legal := false
	for _, l := range shogi.LegalMoves(e.b.Position(), e.b.Turn()) {
		if l.Equals(m) {
			m, legal = l, true
			break
		}
	}
	if !legal {
		return fmt.Errorf("illegal move: %v", m)
	}
	if !e.b.PushMove(m) {
		return fmt.Errorf("game already decided (%v): cannot play %v", e.b.Result(), m)
	}
	logw.Infof(ctx, "Move %v: %v", m, e.b)
	return nil
}

// TakeBack undoes the latest move.
func (e *Engine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, _ = e.haltSearchIfActive(ctx)

	m, ok := e.b.PopMove()
	if !ok {
		return fmt.Errorf("no move to take back")
	}
	logw.Infof(ctx, "Takeback %v", m)
	return nil
}

// Search launches a search on the current position and returns a channel
// fed one PV per completed iteration. The caller must Halt it before
// starting another.
func (e *Engine) Search(ctx context.Context, opt searchctl.Options) (<-chan searchctl.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := opt.DepthLimit.V(); !ok && e.opts.Depth > 0 {
		opt.DepthLimit = lang.Some(e.opts.Depth)
	}
	if tc, ok := opt.TimeControl.V(); ok {
		tc.Strategy = e.opts.TimeAllocation
		if e.opts.MinTimePerMoveMs > 0 {
			tc.MinPerMove = time.Duration(e.opts.MinTimePerMoveMs) * time.Millisecond
		}
		if e.opts.MaxTimePerMoveMs > 0 {
			tc.MaxPerMove = time.Duration(e.opts.MaxTimePerMoveMs) * time.Millisecond
		}
		opt.TimeControl = lang.Some(tc)
	}

	if e.active != nil {
		return nil, fmt.Errorf("search already active")
	}

	sfen := shogi.ToSFEN(e.b.Position(), e.b.Turn(), e.b.MoveNumber())

	if moves, err := e.book.Find(ctx, sfen); err == nil && len(moves) > 0 {
		logw.Infof(ctx, "Book hit: %v candidate moves", len(moves))
	}

	if e.tablebase != nil {
		if r, hit, err := e.tablebase.Probe(ctx, sfen); err == nil && hit {
			logw.Infof(ctx, "Tablebase hit: %v (score=%v)", r.Outcome, convertTablebaseScore(r))
		}
	}

	launcher := e.newLauncher()
	logw.Infof(ctx, "Search %v, opt=%v", e.b, opt)

	handle, out := launcher.Launch(ctx, e.b, e.table, e.newEvaluator(), opt)
	e.active = handle
	return out, nil
}

func (e *Engine) newLauncher() searchctl.Launcher {
	params := e.opts.searchParams()
	if e.opts.Threads > 1 {
		return &searchctl.ParallelIterative{
			Zobrist:         e.zt,
			NewEval:         e.newEvaluator,
			NumWorkers:      int(e.opts.Threads),
			Params:          params,
			YBWCMinDepth:    e.opts.YBWC.MinDepth,
			YBWCMinBranch:   e.opts.YBWC.MinBranch,
			YBWCMaxSiblings: e.opts.YBWC.MaxSiblings,
		}
	}
	return &searchctl.Iterative{Zobrist: e.zt, Params: params}
}

func (e *Engine) newEvaluator() eval.Evaluator {
	std := eval.NewStandard()
	if e.opts.Noise > 0 {
		std.Noise = eval.NewNoise(int(e.opts.Noise), e.seed)
	}
	return std
}

// Halt halts the active search and returns its principal variation, if any.
func (e *Engine) Halt(ctx context.Context) (searchctl.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pv, ok := e.haltSearchIfActive(ctx)
	if !ok {
		return searchctl.PV{}, fmt.Errorf("no active search")
	}
	return pv, nil
}

func (e *Engine) haltSearchIfActive(ctx context.Context) (searchctl.PV, bool) {
	if e.active != nil {
		pv := e.active.Halt()
		logw.Infof(ctx, "Search %v halted: %v", e.b, pv)
		e.active = nil
		return pv, true
	}
	return searchctl.PV{}, false
}
