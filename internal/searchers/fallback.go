package searchers

import (
	. "github.com/janpfeifer/isolationGo/internal/state"
	"math/rand/v2"
	"slices"
)

// FallbackFn selects the move to play if not even the shallowest search completes in time.
// legalMoves is never empty.
type FallbackFn func(board GameState, legalMoves []Pos) Pos

// CenterOrRandom selects the center of the board if it is a legal move, or otherwise a random legal move.
func CenterOrRandom(board GameState, legalMoves []Pos) Pos {
	if center := Center(board.Dimensions()); slices.Contains(legalMoves, center) {
		return center
	}
	return legalMoves[rand.IntN(len(legalMoves))]
}

// CenterOrFirst selects the center of the board if it is a legal move, or otherwise the first legal move.
// It is the deterministic version of CenterOrRandom.
func CenterOrFirst(board GameState, legalMoves []Pos) Pos {
	if center := Center(board.Dimensions()); slices.Contains(legalMoves, center) {
		return center
	}
	return legalMoves[0]
}
