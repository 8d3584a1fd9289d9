// Package alphabeta implements the minimax searchers.Searcher with alpha-beta pruning.
//
// It returns the same move and score as the plain minimax search (see package minimax), it only
// skips sub-trees proven not to change the result.
package alphabeta

import (
	"fmt"
	"github.com/janpfeifer/isolationGo/internal/ai"
	"github.com/janpfeifer/isolationGo/internal/searchers"
	. "github.com/janpfeifer/isolationGo/internal/state"
	"k8s.io/klog/v2"
	"time"
)

// Searcher implements the searchers.Searcher interface.
// It is used by players.SearcherPlayer, along with a scorer, to implement an AI player.
type Searcher struct {
	scorer    ai.ValueScorer
	threshold time.Duration

	// Per-search state: the player that started the search and the clock.
	player   PlayerNum
	timeLeft searchers.TimeLeftFn
	stats    searchers.Stats
}

// Assert that Searcher implements searchers.Searcher.
var _ searchers.Searcher = (*Searcher)(nil)

// New returns an Alpha-Beta Pruning based searchers.Searcher implementation.
// There are other optional configurations, see methods Searcher.With...
//
// The one obligatory parameter is the scorer used to evaluate the boards at the maximum depth.
//
// See: wikipedia.org/wiki/Alpha-beta_pruning
func New(scorer ai.ValueScorer) *Searcher {
	return &Searcher{
		scorer:    scorer,
		threshold: searchers.DefaultTimeThreshold,
	}
}

// WithTimeThreshold sets the time left below which the search is aborted with searchers.ErrTimeout.
//
// The default is searchers.DefaultTimeThreshold.
func (ab *Searcher) WithTimeThreshold(threshold time.Duration) *Searcher {
	ab.threshold = threshold
	return ab
}

// String implements searchers.Searcher.
func (ab *Searcher) String() string {
	return fmt.Sprintf("alphabeta(%s)", ab.scorer)
}

// Stats implements searchers.Searcher.
func (ab *Searcher) Stats() searchers.Stats {
	return ab.stats
}

// Search implements the searchers.Searcher interface.
//
// The alpha/beta window starts fully open at every call, so each depth of an iterative deepening
// is an independent search.
func (ab *Searcher) Search(board GameState, depth int, timeLeft searchers.TimeLeftFn) (move Pos, score float32, err error) {
	start := time.Now()
	ab.player = board.NextPlayer()
	ab.timeLeft = timeLeft
	ab.stats = searchers.Stats{}
	move, score, err = ab.recursion(board, max(depth, 1), ai.LossScore, ai.WinScore, true)
	ab.stats.Elapsed = time.Since(start)
	ab.timeLeft = nil
	if klog.V(3).Enabled() {
		klog.Infof("%s depth=%d: move=%s, score=%g, err=%v, %s", ab, depth, move, score, err, ab.stats)
	}
	return
}

// recursion of the alpha-beta pruning algorithm, with depthLeft plies to go.
//
// Scores are always from the point of view of ab.player, the player that started the search:
// alpha is the score the maximizing player can already guarantee, and beta the score the
// minimizing player can already guarantee.
func (ab *Searcher) recursion(board GameState, depthLeft int, alpha, beta float32, maximizing bool) (
	bestMove Pos, bestScore float32, err error) {
	if err = searchers.CheckTime(ab.timeLeft, ab.threshold); err != nil {
		return
	}

	mover := ab.player
	if !maximizing {
		mover = board.Opponent(ab.player)
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
		ab.stats.Nodes++
		var score float32
		if depthLeft <= 1 {
			ab.stats.LeafEvals++
			score = ab.scorer.Score(newBoard, ab.player)
		} else {
			_, score, err = ab.recursion(newBoard, depthLeft-1, alpha, beta, !maximizing)
			if err != nil {
				return NoMove, 0, err
			}
		}

		// Save best for this board: ties are broken by the first move enumerated.
		if maximizing {
			if ii == 0 || score > bestScore {
				bestMove, bestScore = move, score
			}
			alpha = max(alpha, bestScore)
		} else {
			if ii == 0 || score < bestScore {
				bestMove, bestScore = move, score
			}
			beta = min(beta, bestScore)
		}

		// Prune.
		if beta <= alpha {
			// The other player will never take this path, so the remaining siblings are irrelevant.
			if ii < len(moves)-1 {
				ab.stats.Prunes++
			}
			return
		}
	}
	return
}
