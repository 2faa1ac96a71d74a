package searchctl

import (
	"context"
	"fmt"
	"time"

	"github.com/nanakusa/shogo/pkg/shogi"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Strategy selects how the remaining clock is divided across the moves
// still to come.
type Strategy int

const (
	// Equal allocates remainder/(2*movesLeft) to every move.
	Equal Strategy = iota
	// Exponential weights the flat remainder/movesLeft share by
	// 1.5/(1+movesLeft/40), so each move gets a larger share as movesLeft
	// shrinks.
	Exponential
	// Adaptive scales the Equal share by recent move-time pressure: a side
	// that has been moving quickly gets a bigger share banked for when
	// mating nets or tactics demand deeper search.
	Adaptive
)

// TimeControl represents the per-side remaining clock.
type TimeControl struct {
	Black, White time.Duration
	Moves        int // 0 == rest of game
	Strategy     Strategy
	// Pressure is a caller-tracked EMA of recent (time spent / time
	// budgeted) ratios, consumed only by the Adaptive strategy. 1.0 is
	// neutral; above 1.0 means recent moves ran over budget.
	Pressure float64
	// MinPerMove/MaxPerMove clamp the soft limit Limits returns, regardless
	// of what the chosen Strategy would otherwise allocate. Zero leaves that
	// side of the clamp open.
	MinPerMove, MaxPerMove time.Duration
}

// Limits returns a soft and hard deadline for the side to move. After the
// soft limit, no new iteration is started; the hard limit force-halts a
// search already in progress.
func (t TimeControl) Limits(p shogi.Player) (time.Duration, time.Duration) {
	remainder := t.Black
	if p == shogi.White {
		remainder = t.White
	}

	// Assume 40 moves to the end of the game if nothing else is known.
	moves := time.Duration(40)
	if t.Moves > 0 {
		moves = time.Duration(t.Moves) + 1
	}

	var soft time.Duration
	switch t.Strategy {
	case Exponential:
		// Weight this move at 1.5x the flat share, less as movesLeft grows.
		share := 1.5 / (1.0 + float64(moves)/40.0)
		soft = time.Duration(float64(remainder) / float64(moves) * share)
	case Adaptive:
		pressure := t.Pressure
		if pressure <= 0 {
			pressure = 1.0
		}
		soft = time.Duration(float64(remainder/(2*moves)) / pressure)
	default: // Equal
		soft = remainder / (2 * moves)
	}

	if t.MinPerMove > 0 && soft < t.MinPerMove {
		soft = t.MinPerMove
	}
	if t.MaxPerMove > 0 && soft > t.MaxPerMove {
		soft = t.MaxPerMove
	}

	hard := 3 * soft
	return soft, hard
}

func (t TimeControl) String() string {
	if t.Moves == 0 {
		return fmt.Sprintf("%.1f<>%.1f", t.Black.Seconds(), t.White.Seconds())
	}
	return fmt.Sprintf("%.1f<>%.1f[moves=%v]", t.Black.Seconds(), t.White.Seconds(), t.Moves)
}

// EnforceTimeControl schedules a hard-limit halt, if a time control is set,
// and returns the soft limit the iterative driver should stop starting new
// iterations at.
func EnforceTimeControl(ctx context.Context, h Handle, tc lang.Optional[TimeControl], turn shogi.Player) (time.Duration, bool) {
	c, ok := tc.V()
	if !ok {
		return 0, false
	}

	soft, hard := c.Limits(turn)
	time.AfterFunc(hard, func() {
		h.Halt()
	})

	logw.Debugf(ctx, "Time control limits for %v: [%v; %v]", c, soft, hard)
	return soft, true
}
