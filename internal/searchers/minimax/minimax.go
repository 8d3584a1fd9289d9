// Package minimax implements a plain depth-limited minimax searchers.Searcher.
//
// It explores the full game tree up to the given depth, so it is mostly useful as a baseline and
// as a reference for the alphabeta searcher, which must always agree with it.
package minimax

import (
	"fmt"
	"github.com/janpfeifer/isolationGo/internal/ai"
	"github.com/janpfeifer/isolationGo/internal/searchers"
	. "github.com/janpfeifer/isolationGo/internal/state"
	"k8s.io/klog/v2"
	"time"
)

// Searcher implements the searchers.Searcher interface with the minimax algorithm.
type Searcher struct {
	scorer    ai.ValueScorer
	threshold time.Duration

	// Per-search state.
	player   PlayerNum
	timeLeft searchers.TimeLeftFn
	stats    searchers.Stats
}

// Assert that Searcher implements searchers.Searcher.
var _ searchers.Searcher = (*Searcher)(nil)

// New returns a minimax searchers.Searcher using scorer to evaluate the leaf boards.
//
// See: wikipedia.org/wiki/Minimax
func New(scorer ai.ValueScorer) *Searcher {
	return &Searcher{
		scorer:    scorer,
		threshold: searchers.DefaultTimeThreshold,
	}
}

// WithTimeThreshold sets the time left below which the search is aborted with searchers.ErrTimeout.
// It should be large enough for the caller to return its move before the deadline.
//
// The default is searchers.DefaultTimeThreshold.
func (mm *Searcher) WithTimeThreshold(threshold time.Duration) *Searcher {
	mm.threshold = threshold
	return mm
}

// String implements searchers.Searcher.
func (mm *Searcher) String() string {
	return fmt.Sprintf("minimax(%s)", mm.scorer)
}

// Stats implements searchers.Searcher.
func (mm *Searcher) Stats() searchers.Stats {
	return mm.stats
}

// Search implements searchers.Searcher.
func (mm *Searcher) Search(board GameState, depth int, timeLeft searchers.TimeLeftFn) (move Pos, score float32, err error) {
	start := time.Now()
	mm.player = board.NextPlayer()
	mm.timeLeft = timeLeft
	mm.stats = searchers.Stats{}
	move, score, err = mm.recursion(board, max(depth, 1), true)
	mm.stats.Elapsed = time.Since(start)
	mm.timeLeft = nil
	if klog.V(3).Enabled() {
		klog.Infof("%s depth=%d: move=%s, score=%g, err=%v, %s", mm, depth, move, score, err, mm.stats)
	}
	return
}

// recursion of the minimax algorithm, with depthLeft plies to go.
// Scores are always from the point of view of mm.player, the player that started the search.
func (mm *Searcher) recursion(board GameState, depthLeft int, maximizing bool) (bestMove Pos, bestScore float32, err error) {
	if err = searchers.CheckTime(mm.timeLeft, mm.threshold); err != nil {
		return
	}

	mover := mm.player
	if !maximizing {
		mover = board.Opponent(mm.player)
	}
	moves := board.LegalMoves(mover)
	if len(moves) == 0 {
		// mover lost.
		if maximizing {
			return NoMove, ai.LossScore, nil
		}
		return NoMove, ai.WinScore, nil
	}

	for ii, move := range moves {
		newBoard := board.ForecastMove(move)
		mm.stats.Nodes++
		var score float32
		if depthLeft <= 1 {
			mm.stats.LeafEvals++
			score = mm.scorer.Score(newBoard, mm.player)
		} else {
			_, score, err = mm.recursion(newBoard, depthLeft-1, !maximizing)
			if err != nil {
				return NoMove, 0, err
			}
		}
		// Strict comparisons: ties are broken by the first move enumerated.
		if ii == 0 || (maximizing && score > bestScore) || (!maximizing && score < bestScore) {
			bestMove, bestScore = move, score
		}
	}
	return
}
