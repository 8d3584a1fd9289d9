// Package state holds the game state representation used by the searchers: positions, players,
// the GameState capability interface and Board, the isolation board implementation.
package state

import (
	"fmt"
	"github.com/janpfeifer/isolationGo/internal/generics"
	"sort"
)

const (
	// NumPlayers is always 2 for isolation.
	NumPlayers = 2

	// DefaultWidth and DefaultHeight of a Board.
	DefaultWidth, DefaultHeight = 7, 7
)

// PlayerNum is the either 0 or 1 corresponding to the first player to move or the second player to move.
type PlayerNum uint8

const (
	PlayerFirst PlayerNum = iota
	PlayerSecond

	// PlayerInvalid represents an invalid PlayerNum, also used as the "winner" of unfinished matches.
	PlayerInvalid
)

//go:generate go tool enumer -type=PlayerNum -trimprefix=Player -values -text -json state.go

// Opponent returns the other player.
func (p PlayerNum) Opponent() PlayerNum {
	return 1 - p
}

// Pos packages the (row, column) of a cell in the board.
// It is also what a move is: the target cell the player moves to.
type Pos [2]int8

// NoMove is the sentinel position returned when there are no legal moves.
var NoMove = Pos{-1, -1}

// Row of the position.
func (pos Pos) Row() int8 {
	return pos[0]
}

// Col (column) of the position.
func (pos Pos) Col() int8 {
	return pos[1]
}

// IsNoMove returns whether pos is the NoMove sentinel.
func (pos Pos) IsNoMove() bool {
	return pos == NoMove
}

// Add returns the position displaced by delta.
func (pos Pos) Add(delta Pos) Pos {
	return Pos{pos[0] + delta[0], pos[1] + delta[1]}
}

// String returns a text representation of Pos.
func (pos Pos) String() string {
	return fmt.Sprintf("(%d, %d)", pos[0], pos[1])
}

// SortPositions sorts according to row first and then column.
func SortPositions(positions []Pos) {
	sort.Slice(positions, func(i, j int) bool {
		if positions[i][0] != positions[j][0] {
			return positions[i][0] < positions[j][0]
		}
		return positions[i][1] < positions[j][1]
	})
}

// PosStrings converts each position to its string representation.
func PosStrings(poss []Pos) []string {
	return generics.SliceMap(poss, Pos.String)
}

// GameState is the set of capabilities the searchers need from a game. Implementations must be immutable:
// ForecastMove returns a new state and never changes (or aliases the mutable parts of) the receiver.
type GameState interface {
	// NextPlayer returns the player to act.
	NextPlayer() PlayerNum

	// LegalMoves available to player, in a deterministic order.
	LegalMoves(player PlayerNum) []Pos

	// ForecastMove returns the state after NextPlayer moves to move.
	ForecastMove(move Pos) GameState

	// IsLoser returns whether player lost the game.
	IsLoser(player PlayerNum) bool

	// IsWinner returns whether player won the game.
	IsWinner(player PlayerNum) bool

	// Opponent of player.
	Opponent(player PlayerNum) PlayerNum

	// Dimensions of the board.
	Dimensions() (width, height int)

	// EmptyCells returns the set of cells not yet occupied.
	EmptyCells() generics.Set[Pos]

	// Location of player, or NoMove if the player hasn't been placed yet.
	Location(player PlayerNum) Pos
}

// Center returns the center cell for a board of the given dimensions. For even sizes it rounds down.
func Center(width, height int) Pos {
	return Pos{int8((height - 1) / 2), int8((width - 1) / 2)}
}
