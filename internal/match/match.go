// Package match plays matches between two players, enforcing the rules and the per-move time limit,
// and runs series of matches in parallel to compare player configurations.
package match

import (
	"context"
	"fmt"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/isolationGo/internal/players"
	"github.com/janpfeifer/isolationGo/internal/searchers"
	. "github.com/janpfeifer/isolationGo/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"math/rand/v2"
	"time"
)

// DefaultTimeLimit for each move.
const DefaultTimeLimit = 150 * time.Millisecond

// Reason why a match ended.
type Reason uint8

const (
	// ReasonNoMoves means the loser had no legal moves left: the normal end of a match.
	ReasonNoMoves Reason = iota

	// ReasonTimeout means the loser returned its move after the time limit.
	ReasonTimeout

	// ReasonIllegalMove means the loser returned a move that is not legal.
	ReasonIllegalMove

	// ReasonPanic means the loser panicked while choosing its move.
	ReasonPanic

	// NumReasons is the number of Reason values.
	NumReasons
)

var reasonNames = [NumReasons]string{"no moves", "timeout", "illegal move", "panic"}

// String implements fmt.Stringer.
func (r Reason) String() string {
	if r >= NumReasons {
		return fmt.Sprintf("Reason(%d)", r)
	}
	return reasonNames[r]
}

// IsForfeit returns whether the match ended for any reason other than the loser running out of moves.
func (r Reason) IsForfeit() bool {
	return r != ReasonNoMoves
}

// Options for matches.
type Options struct {
	// Width and Height of the board. If 0 they default to DefaultWidth and DefaultHeight.
	Width, Height int

	// TimeLimit for each move. If 0 it defaults to DefaultTimeLimit. If negative there is no time limit.
	TimeLimit time.Duration

	// RandomOpenings is the number of random moves played before the players take over.
	RandomOpenings int

	// Seed for the random openings. If 0 a random seed is used.
	Seed uint64

	// OnMove, if set, is called after each move with the new board.
	OnMove func(board *Board, move Pos)

	// Progress, if set, is called by RunMatches after each match with the current summary.
	// Calls are serialized.
	Progress func(summary Summary)
}

func (opts Options) withDefaults() Options {
	if opts.Width == 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height == 0 {
		opts.Height = DefaultHeight
	}
	if opts.TimeLimit == 0 {
		opts.TimeLimit = DefaultTimeLimit
	}
	return opts
}

// Result of a match.
type Result struct {
	Winner PlayerNum
	Reason Reason

	// Moves played, including the random openings.
	Moves []Pos

	// Final board.
	Final *Board
}

// String implements fmt.Stringer.
func (r *Result) String() string {
	return fmt.Sprintf("%s player wins (%s) after %d moves", r.Winner, r.Reason, len(r.Moves))
}

// Play one match between players, where players[0] moves first.
//
// A player forfeits if it doesn't return within the time limit, if it returns an illegal move or
// if it panics. The only error returned is if the context is cancelled.
func Play(ctx context.Context, matchPlayers [NumPlayers]players.Player, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	board := NewBoard(opts.Width, opts.Height)
	result := &Result{Winner: PlayerInvalid}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, 0))
	for range opts.RandomOpenings {
		moves := board.LegalMoves(board.NextPlayer())
		if len(moves) == 0 {
			break
		}
		board = result.apply(board, moves[rng.IntN(len(moves))], opts)
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrapf(err, "match interrupted at move #%d", board.MoveNumber())
		}
		mover := board.NextPlayer()
		legalMoves := board.LegalMoves(mover)
		if len(legalMoves) == 0 {
			return result.finish(board, mover.Opponent(), ReasonNoMoves), nil
		}

		var timeLeft searchers.TimeLeftFn
		if opts.TimeLimit > 0 {
			timeLeft = searchers.NewDeadline(opts.TimeLimit)
		}
		var move Pos
		player := matchPlayers[mover]
		exception := exceptions.TryCatch[any](func() {
			move = player.Play(board, legalMoves, timeLeft)
		})
		if exception != nil {
			klog.Warningf("%s player (%s) panicked at move #%d: %v", mover, player, board.MoveNumber(), exception)
			return result.finish(board, mover.Opponent(), ReasonPanic), nil
		}
		if timeLeft != nil && timeLeft() <= 0 {
			klog.V(1).Infof("%s player (%s) timed out at move #%d", mover, player, board.MoveNumber())
			return result.finish(board, mover.Opponent(), ReasonTimeout), nil
		}
		if !board.IsValid(move) {
			klog.V(1).Infof("%s player (%s) played illegal move %s at move #%d", mover, player, move, board.MoveNumber())
			return result.finish(board, mover.Opponent(), ReasonIllegalMove), nil
		}
		board = result.apply(board, move, opts)
	}
}

func (r *Result) apply(board *Board, move Pos, opts Options) *Board {
	board = board.Act(move)
	r.Moves = append(r.Moves, move)
	if opts.OnMove != nil {
		opts.OnMove(board, move)
	}
	return board
}

func (r *Result) finish(board *Board, winner PlayerNum, reason Reason) *Result {
	r.Final = board
	r.Winner = winner
	r.Reason = reason
	return r
}
