// Package searchers defines the Searcher interface implemented by the game tree search algorithms
// (see sub-packages minimax and alphabeta), and the deadline machinery they share.
package searchers

import (
	"fmt"
	. "github.com/janpfeifer/isolationGo/internal/state"
	"github.com/pkg/errors"
	"time"
)

// ErrTimeout is returned by Searcher.Search when the time left drops below the searcher's threshold.
// It is not a failure: it is how the deadline is enforced, and the partial results of the
// interrupted search must be discarded.
var ErrTimeout = errors.New("search timeout")

// DefaultTimeThreshold is the time left below which a search aborts.
const DefaultTimeThreshold = 10 * time.Millisecond

// TimeLeftFn returns the time left before the deadline of the current move. It is polled by the
// searchers, so it must be cheap.
//
// A nil TimeLeftFn means there is no deadline.
type TimeLeftFn func() time.Duration

// NewDeadline returns a TimeLeftFn counting down from budget, starting now.
// It uses the monotonic clock.
func NewDeadline(budget time.Duration) TimeLeftFn {
	deadline := time.Now().Add(budget)
	return func() time.Duration {
		return time.Until(deadline)
	}
}

// CheckTime returns ErrTimeout if timeLeft is below the threshold.
func CheckTime(timeLeft TimeLeftFn, threshold time.Duration) error {
	if timeLeft != nil && timeLeft() < threshold {
		return ErrTimeout
	}
	return nil
}

// Searcher is the interface that any of the search algorithms must adhere to be valid.
type Searcher interface {
	// Search returns the best move for board.NextPlayer() searching depth plies, along with its score from
	// the point of view of board.NextPlayer().
	//
	// If board.NextPlayer() has no legal moves, it returns NoMove and a loss score.
	// If the time left drops below the searcher's threshold, it returns ErrTimeout, and the move and
	// score should be discarded.
	Search(board GameState, depth int, timeLeft TimeLeftFn) (move Pos, score float32, err error)

	// Stats collected during the last call to Search.
	Stats() Stats

	// String returns the searcher name and configuration.
	String() string
}

// Stats stores running stats collected during the search: for benchmarking, monitoring and debugging purposes.
type Stats struct {
	// Nodes "played" during search: states created by applying a move.
	Nodes int

	// LeafEvals is the number of calls to the scorer, at the depth limit.
	LeafEvals int

	// Prunes is the number of times the remaining siblings of a node were skipped.
	Prunes int

	// Elapsed time in the search.
	Elapsed time.Duration
}

// String implements fmt.Stringer.
func (s Stats) String() string {
	var nodesPerSec float64
	if s.Elapsed > 0 {
		nodesPerSec = float64(s.Nodes) / s.Elapsed.Seconds()
	}
	return fmt.Sprintf("nodes=%d, leafEvals=%d, prunes=%d, elapsed=%s (%.1f nodes/s)",
		s.Nodes, s.LeafEvals, s.Prunes, s.Elapsed, nodesPerSec)
}
