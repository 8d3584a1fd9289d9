package players

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
	"testing"
	"time"
)

func init() {
	klog.InitFlags(nil)
}

// noTime is a clock that already ran out.
func noTime() time.Duration { return 0 }

// forcedWinBoard: first player wins by moving to (1, 2).
var forcedWinBoard = []string{
	"2 . .",
	". . .",
	"1 # .",
}

func TestNoLegalMoves(t *testing.T) {
	board := BuildBoard([]string{
		". . 2",
		". 1 .",
		". . .",
	}, PlayerFirst)
	player := NewSearcherPlayer(alphabeta.New(heuristics.MobilityRatio))
	assert.Equal(t, NoMove, player.Play(board, board.LegalMoves(PlayerFirst), searchers.NewDeadline(time.Second)))
	assert.Equal(t, NoMove, player.Play(board, nil, nil))
}

func TestFallbackOnTimeout(t *testing.T) {
	board := NewBoard(5, 5)
	for _, iterative := range []bool{true, false} {
		player := NewSearcherPlayer(minimax.New(heuristics.MobilityRatio).WithTimeThreshold(time.Second)).
			WithIterative(iterative)
		move := player.Play(board, board.LegalMoves(board.NextPlayer()), noTime)
		assert.Equal(t, Pos{2, 2}, move)
		depth, _ := player.LastSearch()
		assert.Equal(t, 0, depth)
	}

	// Center is already taken.
	board = board.Act(Pos{2, 2})
	legal := board.LegalMoves(board.NextPlayer())
	player := NewSearcherPlayer(alphabeta.New(heuristics.MobilityRatio))
	for range 10 {
		assert.Contains(t, legal, player.Play(board, legal, noTime))
	}
	player.WithFallback(searchers.CenterOrFirst)
	assert.Equal(t, Pos{0, 0}, player.Play(board, legal, noTime))
}

func TestKeepsLastCompletedDepth(t *testing.T) {
	board := NewBoard(5, 5).Act(Pos{2, 2}).Act(Pos{0, 0})
	legal := board.LegalMoves(board.NextPlayer())
	searcher := alphabeta.New(heuristics.CenterMobility)
	wantMove, wantScore, err := searcher.Search(board, 1, nil)
	require.NoError(t, err)

	// The clock allows only the root of the depth 1 search: depth 2 is interrupted.
	calls := 0
	scripted := func() time.Duration {
		calls++
		if calls > 1 {
			return 0
		}
		return time.Hour
	}
	player := NewSearcherPlayer(searcher).WithFallback(searchers.CenterOrFirst)
	move := player.Play(board, legal, scripted)
	assert.Equal(t, wantMove, move)
	depth, score := player.LastSearch()
	assert.Equal(t, 1, depth)
	assert.Equal(t, wantScore, score)
}

func TestIterativeDeepening(t *testing.T) {
	board := NewBoard(5, 5).Act(Pos{2, 2}).Act(Pos{0, 0})
	legal := board.LegalMoves(board.NextPlayer())
	player := NewSearcherPlayer(alphabeta.New(heuristics.MobilityRatio)).WithMaxPlies(3)
	move := player.Play(board, legal, searchers.NewDeadline(time.Minute))
	assert.Contains(t, legal, move)
	depth, _ := player.LastSearch()
	assert.Equal(t, 3, depth)

	// Same as a fixed depth search.
	fixed := NewSearcherPlayer(alphabeta.New(heuristics.MobilityRatio)).WithIterative(false).WithMaxDepth(3)
	assert.Equal(t, move, fixed.Play(board, legal, nil))
	depth, _ = fixed.LastSearch()
	assert.Equal(t, 3, depth)
}

func TestStopsOnProvenScore(t *testing.T) {
	board := BuildBoard(forcedWinBoard, PlayerFirst)
	legal := board.LegalMoves(PlayerFirst)
	player := NewSearcherPlayer(minimax.New(heuristics.MobilityRatio))
	assert.Equal(t, Pos{1, 2}, player.Play(board, legal, searchers.NewDeadline(time.Minute)))
	depth, score := player.LastSearch()
	assert.Equal(t, 1, depth)
	assert.Equal(t, ai.WinScore, score)

	// Default max plies for a 3x3 board is 4.
	first, last := player.depthRange(board)
	assert.Equal(t, 1, first)
	assert.Equal(t, 4, last)
}

func TestNew(t *testing.T) {
	player, err := New("")
	require.NoError(t, err)
	sp, ok := player.(*SearcherPlayer)
	require.True(t, ok)
	assert.Equal(t, "minimax(ratio), iterative", sp.String())
	assert.Equal(t, 3, sp.maxDepth)

	player, err = New("center,ab,iterative=false,max_depth=5,threshold=20ms")
	require.NoError(t, err)
	assert.Equal(t, "alphabeta(center), max_depth=5", player.String())

	player, err = New("own,max_plies=6")
	require.NoError(t, err)
	assert.Equal(t, 6, player.(*SearcherPlayer).maxPlies)

	player, err = New("random")
	require.NoError(t, err)
	assert.Equal(t, "random", player.String())

	for _, config := range []string{
		"ratio,own", "ab,minimax", "foo", "max_depth=0", "max_depth=x", "random,ab", "threshold=-1ms",
	} {
		_, err = New(config)
		assert.Errorf(t, err, "config %q should have failed", config)
	}
}

func TestRandomPlayer(t *testing.T) {
	board := NewBoard(5, 5)
	legal := board.LegalMoves(PlayerFirst)
	player := NewRandomPlayerWithSeed(42)
	for range 10 {
		assert.Contains(t, legal, player.Play(board, legal, nil))
	}
	assert.Equal(t, NoMove, player.Play(board, nil, nil))
}
