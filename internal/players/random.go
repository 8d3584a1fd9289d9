package players

import (
	"github.com/janpfeifer/isolationGo/internal/searchers"
	. "github.com/janpfeifer/isolationGo/internal/state"
	"math/rand/v2"
)

// RandomPlayer plays a uniformly random legal move. It is the baseline opponent.
type RandomPlayer struct {
	rng *rand.Rand
}

// Assert RandomPlayer is a Player.
var _ Player = (*RandomPlayer)(nil)

// NewRandomPlayer returns a RandomPlayer with a randomly seeded generator.
func NewRandomPlayer() *RandomPlayer {
	return NewRandomPlayerWithSeed(rand.Uint64())
}

// NewRandomPlayerWithSeed returns a RandomPlayer with a reproducible sequence of moves.
func NewRandomPlayerWithSeed(seed uint64) *RandomPlayer {
	return &RandomPlayer{rng: rand.New(rand.NewPCG(seed, 0))}
}

// Play implements Player.
func (p *RandomPlayer) Play(_ GameState, legalMoves []Pos, _ searchers.TimeLeftFn) Pos {
	if len(legalMoves) == 0 {
		return NoMove
	}
	return legalMoves[p.rng.IntN(len(legalMoves))]
}

// String implements Player.
func (p *RandomPlayer) String() string {
	return "random"
}
