// Package statetest provides helper functions to create tests using isolation boards.
package statetest

import (
	"fmt"
	"github.com/gomlx/exceptions"
	. "github.com/janpfeifer/isolationGo/internal/state"
	"github.com/janpfeifer/isolationGo/internal/ui/cli"
	"strings"
)

// BuildBoard from an ASCII layout, one string per row, using the same notation as Board.String:
// "." for an empty cell, "#" for a blocked (visited) cell and "1" or "2" for the location of
// the first or second player. Spaces are ignored.
func BuildBoard(layout []string, nextPlayer PlayerNum) *Board {
	rows := make([]string, len(layout))
	for ii, row := range layout {
		rows[ii] = strings.ReplaceAll(row, " ", "")
	}
	height := len(rows)
	if height == 0 {
		exceptions.Panicf("BuildBoard: empty layout")
	}
	width := len(rows[0])
	b := NewBoard(width, height)
	for rowIdx, row := range rows {
		if len(row) != width {
			exceptions.Panicf("BuildBoard: row %d has %d cells, wanted %d", rowIdx, len(row), width)
		}
		for colIdx, c := range row {
			pos := Pos{int8(rowIdx), int8(colIdx)}
			switch c {
			case '.':
			case '#':
				b.SetCell(pos, true)
			case '1':
				b.SetLocation(PlayerFirst, pos)
			case '2':
				b.SetLocation(PlayerSecond, pos)
			default:
				exceptions.Panicf("BuildBoard: unknown cell %q at %s", c, pos)
			}
		}
	}
	b.SetNextPlayer(nextPlayer)
	return b
}

// PrintBoard prints the board, for debugging tests.
func PrintBoard(b *Board) {
	ui := cli.New(false, false)
	ui.PrintBoard(b)
	fmt.Printf("Next player: %s\n", b.NextPlayer())
}
