package match

import (
	"context"
	"github.com/janpfeifer/isolationGo/internal/players"
	"github.com/janpfeifer/isolationGo/internal/searchers"
	. "github.com/janpfeifer/isolationGo/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"
	"sync/atomic"
	"testing"
	"time"
)

func init() {
	klog.InitFlags(nil)
}

// stubPlayer plays with the given function.
type stubPlayer struct {
	fn    func(board GameState, legalMoves []Pos, timeLeft searchers.TimeLeftFn) Pos
	calls atomic.Int32
}

func (p *stubPlayer) Play(board GameState, legalMoves []Pos, timeLeft searchers.TimeLeftFn) Pos {
	p.calls.Add(1)
	return p.fn(board, legalMoves, timeLeft)
}

func (p *stubPlayer) String() string { return "stub" }

func firstMovePlayer() *stubPlayer {
	return &stubPlayer{fn: func(_ GameState, legalMoves []Pos, _ searchers.TimeLeftFn) Pos {
		return legalMoves[0]
	}}
}

func TestPlayFinishes(t *testing.T) {
	ctx := context.Background()
	for seed := range uint64(5) {
		matchPlayers := [NumPlayers]players.Player{
			players.NewRandomPlayerWithSeed(seed + 1),
			players.NewRandomPlayerWithSeed(seed + 100),
		}
		var numOnMove int
		result, err := Play(ctx, matchPlayers, Options{
			Width: 5, Height: 5, Seed: seed + 1,
			OnMove: func(_ *Board, _ Pos) { numOnMove++ },
		})
		require.NoError(t, err)
		assert.Equal(t, ReasonNoMoves, result.Reason)
		assert.False(t, result.Reason.IsForfeit())
		require.NotNil(t, result.Final)
		assert.True(t, result.Final.IsFinished())
		assert.Equal(t, result.Final.Winner(), result.Winner)
		assert.True(t, result.Final.IsWinner(result.Winner))
		assert.Len(t, result.Moves, result.Final.MoveNumber())
		assert.Equal(t, len(result.Moves), numOnMove)
		assert.GreaterOrEqual(t, len(result.Moves), 3)
	}
}

func TestPlaySearchers(t *testing.T) {
	matchPlayers := [NumPlayers]players.Player{
		players.NewRandomPlayerWithSeed(7),
		must(players.New("ab,own,max_depth=2,iterative=false")),
	}
	result, err := Play(context.Background(), matchPlayers, Options{Width: 5, Height: 5, TimeLimit: time.Second})
	require.NoError(t, err)
	assert.Equal(t, ReasonNoMoves, result.Reason)
	assert.NotEqual(t, PlayerInvalid, result.Winner)
}

func must(player players.Player, err error) players.Player {
	if err != nil {
		panic(err)
	}
	return player
}

func TestForfeits(t *testing.T) {
	ctx := context.Background()
	illegal := &stubPlayer{fn: func(_ GameState, _ []Pos, _ searchers.TimeLeftFn) Pos {
		return NoMove
	}}
	slow := &stubPlayer{fn: func(_ GameState, legalMoves []Pos, timeLeft searchers.TimeLeftFn) Pos {
		for timeLeft() > 0 {
			time.Sleep(time.Millisecond)
		}
		return legalMoves[0]
	}}
	panicking := &stubPlayer{fn: func(_ GameState, _ []Pos, _ searchers.TimeLeftFn) Pos {
		panic("boom")
	}}
	panickingError := &stubPlayer{fn: func(_ GameState, _ []Pos, _ searchers.TimeLeftFn) Pos {
		var board *Board
		return board.Location(PlayerFirst) // nil pointer dereference.
	}}

	testCases := []struct {
		name   string
		loser  *stubPlayer
		reason Reason
	}{
		{"illegal", illegal, ReasonIllegalMove},
		{"slow", slow, ReasonTimeout},
		{"panic", panicking, ReasonPanic},
		{"runtime error", panickingError, ReasonPanic},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Loser moves second: the first player makes one move first.
			first := firstMovePlayer()
			result, err := Play(ctx, [NumPlayers]players.Player{first, tc.loser},
				Options{Width: 5, Height: 5, TimeLimit: 20 * time.Millisecond})
			require.NoError(t, err)
			assert.Equal(t, tc.reason, result.Reason)
			assert.True(t, result.Reason.IsForfeit())
			assert.Equal(t, PlayerFirst, result.Winner)
			assert.Equal(t, []Pos{{0, 0}}, result.Moves)
			assert.Equal(t, int32(1), first.calls.Load())
		})
	}
}

func TestNoTimeLimit(t *testing.T) {
	var gotNilClock atomic.Bool
	player := &stubPlayer{fn: func(_ GameState, legalMoves []Pos, timeLeft searchers.TimeLeftFn) Pos {
		gotNilClock.Store(timeLeft == nil)
		return legalMoves[0]
	}}
	result, err := Play(context.Background(), [NumPlayers]players.Player{player, firstMovePlayer()},
		Options{Width: 4, Height: 4, TimeLimit: -1})
	require.NoError(t, err)
	assert.Equal(t, ReasonNoMoves, result.Reason)
	assert.True(t, gotNilClock.Load())
}

func TestRandomOpenings(t *testing.T) {
	var firstSeen atomic.Int32
	firstSeen.Store(-1)
	player := &stubPlayer{fn: func(board GameState, legalMoves []Pos, _ searchers.TimeLeftFn) Pos {
		firstSeen.CompareAndSwap(-1, int32(board.(*Board).MoveNumber()))
		return legalMoves[0]
	}}
	result, err := Play(context.Background(), [NumPlayers]players.Player{player, player},
		Options{Width: 5, Height: 5, RandomOpenings: 2, Seed: 42})
	require.NoError(t, err)
	assert.Equal(t, int32(2), firstSeen.Load())
	assert.GreaterOrEqual(t, len(result.Moves), 2)

	// Same seed, same openings.
	result2, err := Play(context.Background(), [NumPlayers]players.Player{player, player},
		Options{Width: 5, Height: 5, RandomOpenings: 2, Seed: 42})
	require.NoError(t, err)
	assert.Equal(t, result.Moves, result2.Moves)
}

func TestPlayInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Play(ctx, [NumPlayers]players.Player{firstMovePlayer(), firstMovePlayer()}, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunMatches(t *testing.T) {
	configs := [2]string{"random", "ab,own,max_depth=1,iterative=false"}
	var numProgress int
	opts := Options{
		Width: 5, Height: 5, TimeLimit: time.Second, Seed: 1,
		Progress: func(summary Summary) { numProgress++ },
	}
	summary, err := RunMatches(context.Background(), configs, opts, 6, 2)
	require.NoError(t, err)
	assert.Equal(t, 6, summary.Played)
	assert.Equal(t, 6, numProgress)
	assert.Equal(t, 6, summary.Wins(0)+summary.Wins(1))
	// Each configuration moved first in 3 matches.
	assert.Equal(t, 3, summary.WinsAs1st[0]+summary.WinsAs2nd[1])
	assert.Equal(t, 3, summary.WinsAs1st[1]+summary.WinsAs2nd[0])
	assert.Equal(t, 6, summary.Forfeits[0][ReasonNoMoves]+summary.Forfeits[1][ReasonNoMoves])
	assert.InDelta(t, 1.0, summary.WinRate(0)+summary.WinRate(1), 1e-9)
	assert.Contains(t, summary.String(), "Played 6 of 6")

	_, err = RunMatches(context.Background(), [2]string{"random", "foo"}, opts, 2, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AI-2")
}

func TestReason(t *testing.T) {
	assert.Equal(t, "illegal move", ReasonIllegalMove.String())
	assert.Equal(t, "Reason(10)", Reason(10).String())
}
