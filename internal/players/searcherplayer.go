package players

import (
	"fmt"
	"github.com/janpfeifer/isolationGo/internal/ai"
	"github.com/janpfeifer/isolationGo/internal/searchers"
	. "github.com/janpfeifer/isolationGo/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"time"
)

// DefaultMaxDepth of the search when not using iterative deepening.
const DefaultMaxDepth = 3

// SearcherPlayer is the standard set up for an AI: a searcher (which holds the scorer), driven either to a
// fixed depth, or with iterative deepening until the time runs out.
// It implements the Player interface.
//
// It is not safe for concurrent use: searchers keep per-search state.
type SearcherPlayer struct {
	Searcher searchers.Searcher

	maxDepth  int
	iterative bool
	maxPlies  int
	fallback  searchers.FallbackFn

	// Results of the last call to Play.
	lastDepth int
	lastScore float32
}

// Assert that SearcherPlayer is a Player.
var _ Player = (*SearcherPlayer)(nil)

// NewSearcherPlayer creates a player that uses iterative deepening with the given searcher.
// See methods SearcherPlayer.With... for other configurations.
func NewSearcherPlayer(searcher searchers.Searcher) *SearcherPlayer {
	return &SearcherPlayer{
		Searcher:  searcher,
		maxDepth:  DefaultMaxDepth,
		iterative: true,
		fallback:  searchers.CenterOrRandom,
	}
}

// WithMaxDepth sets the depth of search (in plies) when not using iterative deepening.
// The default is DefaultMaxDepth.
func (p *SearcherPlayer) WithMaxDepth(maxDepth int) *SearcherPlayer {
	p.maxDepth = maxDepth
	return p
}

// WithIterative sets whether to use iterative deepening: search at depth 1, 2, 3, ... until the
// time runs out, and play the best move of the deepest completed search.
// Otherwise, it does one search to the max depth. The default is true.
func (p *SearcherPlayer) WithIterative(iterative bool) *SearcherPlayer {
	p.iterative = iterative
	return p
}

// WithMaxPlies sets the deepest search of the iterative deepening.
// If <= 0 (the default), it uses half the number of cells of the board.
func (p *SearcherPlayer) WithMaxPlies(maxPlies int) *SearcherPlayer {
	p.maxPlies = maxPlies
	return p
}

// WithFallback sets the function that chooses the move to play if not even the first search completes.
// The default is searchers.CenterOrRandom.
func (p *SearcherPlayer) WithFallback(fallback searchers.FallbackFn) *SearcherPlayer {
	p.fallback = fallback
	return p
}

// String implements Player.
func (p *SearcherPlayer) String() string {
	if p.iterative {
		return fmt.Sprintf("%s, iterative", p.Searcher)
	}
	return fmt.Sprintf("%s, max_depth=%d", p.Searcher, p.maxDepth)
}

// LastSearch returns the deepest depth completed and its score in the last call to Play.
// A depth of 0 means the fallback move was played.
func (p *SearcherPlayer) LastSearch() (depth int, score float32) {
	return p.lastDepth, p.lastScore
}

// depthRange returns the first and last depths of search to try.
func (p *SearcherPlayer) depthRange(board GameState) (first, last int) {
	if !p.iterative {
		return p.maxDepth, p.maxDepth
	}
	last = p.maxPlies
	if last <= 0 {
		width, height := board.Dimensions()
		last = max(width*height/2, 1)
	}
	return 1, last
}

// Play implements the Player interface: it chooses a move given a board.
//
// It always returns before timeLeft runs out (minus the searcher's threshold): a search interrupted by the
// deadline is discarded, and the move of the last completed depth is returned instead.
func (p *SearcherPlayer) Play(board GameState, legalMoves []Pos, timeLeft searchers.TimeLeftFn) Pos {
	p.lastDepth, p.lastScore = 0, 0
	if len(legalMoves) == 0 {
		return NoMove
	}
	start := time.Now()
	bestMove := p.fallback(board, legalMoves)

	firstDepth, lastDepth := p.depthRange(board)
	for depth := firstDepth; depth <= lastDepth; depth++ {
		move, score, err := p.Searcher.Search(board, depth, timeLeft)
		if err != nil {
			if !errors.Is(err, searchers.ErrTimeout) {
				klog.Warningf("%s: search at depth %d failed: %+v", p, depth, err)
			} else if klog.V(2).Enabled() {
				klog.Infof("%s: timeout at depth %d after %s", p, depth, time.Since(start))
			}
			break
		}
		if move.IsNoMove() {
			// The searcher found no moves, legalMoves must not correspond to board.
			klog.Warningf("%s: searcher found no moves, but %d legal moves were given", p, len(legalMoves))
			break
		}
		bestMove = move
		p.lastDepth, p.lastScore = depth, score
		if klog.V(2).Enabled() {
			klog.Infof("%s: depth %d, move=%s, score=%g, %s", p, depth, move, score, p.Searcher.Stats())
		}
		if ai.IsProven(score) {
			// Deeper searches won't change a proven win or loss.
			break
		}
	}

	if klog.V(1).Enabled() {
		klog.Infof("Move #%d: AI (%s) playing %s, depth=%d, score=%g, elapsed=%s",
			moveNumber(board), p, bestMove, p.lastDepth, p.lastScore, time.Since(start))
	}
	return bestMove
}

// moveNumber returns the move number for boards that keep track of it, or -1.
func moveNumber(board GameState) int {
	if b, ok := board.(interface{ MoveNumber() int }); ok {
		return b.MoveNumber()
	}
	return -1
}
