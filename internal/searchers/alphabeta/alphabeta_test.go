package alphabeta_test

import (
	"github.com/janpfeifer/isolationGo/internal/ai"
	"github.com/janpfeifer/isolationGo/internal/ai/heuristics"
	"github.com/janpfeifer/isolationGo/internal/searchers"
	"github.com/janpfeifer/isolationGo/internal/searchers/alphabeta"
	"github.com/janpfeifer/isolationGo/internal/searchers/minimax"
	. "github.com/janpfeifer/isolationGo/internal/state"
	. "github.com/janpfeifer/isolationGo/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"
	"math/rand/v2"
	"testing"
	"time"
)

func init() {
	klog.InitFlags(nil)
}

var allScorers = []ai.ValueScorer{heuristics.MobilityRatio, heuristics.OwnMobility, heuristics.CenterMobility}

func TestNoMoves(t *testing.T) {
	board := BuildBoard([]string{
		". . 2",
		". 1 .",
		". . .",
	}, PlayerFirst)
	for depth := 1; depth <= 3; depth++ {
		move, score, err := alphabeta.New(heuristics.MobilityRatio).Search(board, depth, nil)
		require.NoError(t, err)
		assert.Equal(t, NoMove, move)
		assert.Equal(t, ai.LossScore, score)
	}
}

func TestEndGameMove(t *testing.T) {
	// First player wins by moving to (1, 2).
	board := BuildBoard([]string{
		"2 . .",
		". . .",
		"1 # .",
	}, PlayerFirst)
	PrintBoard(board)
	var previousScore float32
	for depth := 1; depth <= 4; depth++ {
		move, score, err := alphabeta.New(heuristics.MobilityRatio).Search(board, depth, nil)
		require.NoError(t, err)
		if depth <= 2 {
			assert.Equalf(t, Pos{1, 2}, move, "depth=%d", depth)
		}
		assert.Equalf(t, ai.WinScore, score, "depth=%d", depth)
		if depth > 1 {
			// Deeper searches never make it worse.
			assert.GreaterOrEqual(t, score, previousScore)
		}
		previousScore = score
	}
}

// randomPositions plays a few random moves from an empty board, after both players are placed.
func randomPositions(rng *rand.Rand, numPositions, width, height int) []*Board {
	var boards []*Board
	for len(boards) < numPositions {
		board := NewBoard(width, height)
		numMoves := 2 + rng.IntN(width*height/2)
		for range numMoves {
			if board.IsFinished() {
				break
			}
			moves := board.LegalMoves(board.NextPlayer())
			board = board.Act(moves[rng.IntN(len(moves))])
		}
		boards = append(boards, board)
	}
	return boards
}

// TestSameAsMinimax checks alpha-beta pruning never changes the result of minimax, and never evaluates
// more leaves.
func TestSameAsMinimax(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0)) // Ensure reproducibility
	boards := randomPositions(rng, 40, 5, 5)
	for boardIdx, board := range boards {
		for _, scorer := range allScorers {
			mm := minimax.New(scorer)
			ab := alphabeta.New(scorer)
			for depth := 1; depth <= 4; depth++ {
				mmMove, mmScore, err := mm.Search(board, depth, nil)
				require.NoError(t, err)
				abMove, abScore, err := ab.Search(board, depth, nil)
				require.NoError(t, err)
				assert.Equalf(t, mmScore, abScore, "board #%d, scorer=%s, depth=%d:\n%s", boardIdx, scorer, depth, board)
				assert.Equalf(t, mmMove, abMove, "board #%d, scorer=%s, depth=%d:\n%s", boardIdx, scorer, depth, board)
				assert.LessOrEqualf(t, ab.Stats().LeafEvals, mm.Stats().LeafEvals, "board #%d, scorer=%s, depth=%d", boardIdx, scorer, depth)
			}
		}
	}
}

func TestPrunes(t *testing.T) {
	board := NewBoard(5, 5).Act(Pos{2, 2}).Act(Pos{0, 0})
	mm := minimax.New(heuristics.OwnMobility)
	ab := alphabeta.New(heuristics.OwnMobility)
	_, _, err := mm.Search(board, 4, nil)
	require.NoError(t, err)
	_, _, err = ab.Search(board, 4, nil)
	require.NoError(t, err)
	assert.Greater(t, ab.Stats().Prunes, 0)
	assert.Less(t, ab.Stats().LeafEvals, mm.Stats().LeafEvals)
	assert.Equal(t, 0, mm.Stats().Prunes)
}

func TestTimeout(t *testing.T) {
	board := NewBoard(7, 7)
	searcher := alphabeta.New(heuristics.CenterMobility).WithTimeThreshold(time.Second)
	_, _, err := searcher.Search(board, 3, func() time.Duration { return 999 * time.Millisecond })
	assert.ErrorIs(t, err, searchers.ErrTimeout)
	assert.Equal(t, 0, searcher.Stats().Nodes)

	move, _, err := searcher.Search(board, 1, func() time.Duration { return time.Second })
	require.NoError(t, err)
	assert.True(t, board.IsValid(move))
}
