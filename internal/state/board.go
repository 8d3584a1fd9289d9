package state

import (
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/isolationGo/internal/generics"
	"slices"
	"strings"
)

// KnightOffsets are the displacements a placed player can move by, in the order moves are enumerated.
var KnightOffsets = [8]Pos{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

// Board is the isolation game board. It implements GameState.
//
// A Board is immutable once built: Act returns a new Board, so boards can be shared freely
// across search branches.
type Board struct {
	width, height int

	// blocked cells, indexed by row*width+col: visited at some point by any of the players.
	blocked []bool

	// locations of the players, NoMove if not placed yet.
	locations [NumPlayers]Pos

	nextPlayer PlayerNum
	moveNumber int
}

// Assert Board is a GameState.
var _ GameState = (*Board)(nil)

// NewBoard creates an empty board of the given dimensions, with PlayerFirst to play.
func NewBoard(width, height int) *Board {
	if width <= 0 || height <= 0 || width > 127 || height > 127 {
		exceptions.Panicf("invalid board dimensions %dx%d", width, height)
	}
	return &Board{
		width:      width,
		height:     height,
		blocked:    make([]bool, width*height),
		locations:  [NumPlayers]Pos{NoMove, NoMove},
		nextPlayer: PlayerFirst,
	}
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	newB := &Board{}
	*newB = *b
	newB.blocked = slices.Clone(b.blocked)
	return newB
}

// Dimensions implements GameState.
func (b *Board) Dimensions() (width, height int) {
	return b.width, b.height
}

// NextPlayer implements GameState.
func (b *Board) NextPlayer() PlayerNum {
	return b.nextPlayer
}

// MoveNumber is the number of moves played so far.
func (b *Board) MoveNumber() int {
	return b.moveNumber
}

// Opponent implements GameState.
func (b *Board) Opponent(player PlayerNum) PlayerNum {
	return player.Opponent()
}

// Location implements GameState.
func (b *Board) Location(player PlayerNum) Pos {
	return b.locations[player]
}

// Center cell of the board.
func (b *Board) Center() Pos {
	return Center(b.width, b.height)
}

// InBounds returns whether pos is inside the board.
func (b *Board) InBounds(pos Pos) bool {
	return pos[0] >= 0 && int(pos[0]) < b.height && pos[1] >= 0 && int(pos[1]) < b.width
}

// IsEmpty returns whether pos is in bounds and was never visited.
func (b *Board) IsEmpty(pos Pos) bool {
	return b.InBounds(pos) && !b.blocked[b.index(pos)]
}

func (b *Board) index(pos Pos) int {
	return int(pos[0])*b.width + int(pos[1])
}

// EmptyCells implements GameState.
func (b *Board) EmptyCells() generics.Set[Pos] {
	cells := generics.MakeSet[Pos](len(b.blocked))
	for pos := range b.emptyCellsSeq {
		cells.Insert(pos)
	}
	return cells
}

// emptyCellsSeq iterates over the empty cells, in row-major order.
func (b *Board) emptyCellsSeq(yield func(Pos) bool) {
	for row := range b.height {
		for col := range b.width {
			pos := Pos{int8(row), int8(col)}
			if !b.blocked[b.index(pos)] && !yield(pos) {
				return
			}
		}
	}
}

// LegalMoves implements GameState.
//
// A player not yet placed can move to any empty cell (in row-major order). Otherwise,
// it moves as a chess knight, in the order given by KnightOffsets.
func (b *Board) LegalMoves(player PlayerNum) []Pos {
	loc := b.locations[player]
	if loc.IsNoMove() {
		moves := make([]Pos, 0, len(b.blocked))
		for pos := range b.emptyCellsSeq {
			moves = append(moves, pos)
		}
		return moves
	}
	moves := make([]Pos, 0, len(KnightOffsets))
	for _, delta := range KnightOffsets {
		target := loc.Add(delta)
		if b.IsEmpty(target) {
			moves = append(moves, target)
		}
	}
	return moves
}

// NumLegalMoves is a faster version of len(b.LegalMoves(player)).
func (b *Board) NumLegalMoves(player PlayerNum) int {
	loc := b.locations[player]
	if loc.IsNoMove() {
		count := 0
		for _, blocked := range b.blocked {
			if !blocked {
				count++
			}
		}
		return count
	}
	count := 0
	for _, delta := range KnightOffsets {
		if b.IsEmpty(loc.Add(delta)) {
			count++
		}
	}
	return count
}

// IsValid returns whether the move is legal for the next player.
func (b *Board) IsValid(move Pos) bool {
	if !b.IsEmpty(move) {
		return false
	}
	loc := b.locations[b.nextPlayer]
	if loc.IsNoMove() {
		return true
	}
	for _, delta := range KnightOffsets {
		if loc.Add(delta) == move {
			return true
		}
	}
	return false
}

// Act returns a new Board with the next player moved to move. The receiver is not changed.
//
// It panics if the move is not valid.
func (b *Board) Act(move Pos) *Board {
	if !b.IsValid(move) {
		exceptions.Panicf("invalid move %s for player %s at %s on board:\n%s",
			move, b.nextPlayer, b.locations[b.nextPlayer], b)
	}
	newB := b.Clone()
	newB.blocked[newB.index(move)] = true
	newB.locations[b.nextPlayer] = move
	newB.nextPlayer = b.nextPlayer.Opponent()
	newB.moveNumber++
	return newB
}

// ForecastMove implements GameState, it is the same as Act.
func (b *Board) ForecastMove(move Pos) GameState {
	return b.Act(move)
}

// IsLoser implements GameState: player lost if it's its turn and it has no moves.
func (b *Board) IsLoser(player PlayerNum) bool {
	return player == b.nextPlayer && b.NumLegalMoves(player) == 0
}

// IsWinner implements GameState: player won if it's the opponent turn and it has no moves.
func (b *Board) IsWinner(player PlayerNum) bool {
	opponent := player.Opponent()
	return opponent == b.nextPlayer && b.NumLegalMoves(opponent) == 0
}

// IsFinished returns whether the next player has no moves left.
func (b *Board) IsFinished() bool {
	return b.NumLegalMoves(b.nextPlayer) == 0
}

// Winner returns the winner, or PlayerInvalid if the game is not finished.
func (b *Board) Winner() PlayerNum {
	if !b.IsFinished() {
		return PlayerInvalid
	}
	return b.nextPlayer.Opponent()
}

// String renders the board in ASCII: "." for empty cells, "#" for blocked ones and
// "1"/"2" for the current location of each player.
func (b *Board) String() string {
	var sb strings.Builder
	for row := range b.height {
		for col := range b.width {
			pos := Pos{int8(row), int8(col)}
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b.CellString(pos))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// CellString returns the one character representation of the cell used by String.
func (b *Board) CellString(pos Pos) string {
	switch {
	case pos == b.locations[PlayerFirst]:
		return "1"
	case pos == b.locations[PlayerSecond]:
		return "2"
	case b.blocked[b.index(pos)]:
		return "#"
	default:
		return "."
	}
}

// SetCell is used to build arbitrary positions (e.g. in tests). Players are placed with SetLocation.
// It should only be used while setting up a board, before it is shared.
func (b *Board) SetCell(pos Pos, blocked bool) {
	if !b.InBounds(pos) {
		exceptions.Panicf("SetCell(%s) out of bounds on %dx%d board", pos, b.width, b.height)
	}
	b.blocked[b.index(pos)] = blocked
}

// SetLocation places player at pos, blocking the cell. Like SetCell, it is only meant for setting
// up a board.
func (b *Board) SetLocation(player PlayerNum, pos Pos) {
	b.SetCell(pos, true)
	b.locations[player] = pos
}

// SetNextPlayer sets the player to move. Like SetCell, it is only meant for setting up a board.
func (b *Board) SetNextPlayer(player PlayerNum) {
	b.nextPlayer = player
}
