// Package heuristics implements the evaluation functions for isolation boards, and registers
// them in the ai package:
//
//   - "ratio": own legal moves divided by opponent legal moves. The default.
//   - "own": number of own legal moves.
//   - "center": own moves minus opponent moves, minus the distance to the center of the board
//     (or to the opponent, once the center is occupied).
package heuristics

import (
	"github.com/chewxy/math32"
	"github.com/janpfeifer/isolationGo/internal/ai"
	. "github.com/janpfeifer/isolationGo/internal/state"
)

// Default is the name of the default scorer.
const Default = "ratio"

var (
	// MobilityRatio scores own legal moves divided by the opponent's legal moves.
	MobilityRatio = ai.ScorerFunc{Name: "ratio", Fn: mobilityRatio}

	// OwnMobility scores the number of own legal moves.
	OwnMobility = ai.ScorerFunc{Name: "own", Fn: ownMobility}

	// CenterMobility scores the difference in legal moves, minus the distance to the center
	// while it is free, or to the opponent afterward.
	CenterMobility = ai.ScorerFunc{Name: "center", Fn: centerMobility}
)

func init() {
	for _, scorer := range []ai.ScorerFunc{MobilityRatio, OwnMobility, CenterMobility} {
		ai.RegisterScorer(scorer.Name, scorer)
	}
}

// moveCounter is implemented by boards that can count moves without allocating them.
type moveCounter interface {
	NumLegalMoves(player PlayerNum) int
}

// cellChecker is implemented by boards that can check a cell without building EmptyCells.
type cellChecker interface {
	IsEmpty(pos Pos) bool
}

func isEmpty(board GameState, pos Pos) bool {
	if checker, ok := board.(cellChecker); ok {
		return checker.IsEmpty(pos)
	}
	return board.EmptyCells().Has(pos)
}

func numMoves(board GameState, player PlayerNum) float32 {
	if counter, ok := board.(moveCounter); ok {
		return float32(counter.NumLegalMoves(player))
	}
	return float32(len(board.LegalMoves(player)))
}

func mobilityRatio(board GameState, player PlayerNum) float32 {
	ownMoves := numMoves(board, player)
	// The opponent can be out of moves without the game being over yet, if it is player's turn.
	oppMoves := max(numMoves(board, board.Opponent(player)), 1)
	return ownMoves / oppMoves
}

func ownMobility(board GameState, player PlayerNum) float32 {
	return numMoves(board, player)
}

func centerMobility(board GameState, player PlayerNum) float32 {
	opponent := board.Opponent(player)
	ownMoves := numMoves(board, player)
	oppMoves := numMoves(board, opponent)

	target := Center(board.Dimensions())
	if oppLoc := board.Location(opponent); !isEmpty(board, target) && !oppLoc.IsNoMove() {
		target = oppLoc
	}
	return ownMoves - oppMoves - Distance(board.Location(player), target)
}

// Distance returns the euclidean distance between two positions.
func Distance(a, b Pos) float32 {
	dRow := float32(a.Row()) - float32(b.Row())
	dCol := float32(a.Col()) - float32(b.Col())
	return math32.Sqrt(dRow*dRow + dCol*dCol)
}
