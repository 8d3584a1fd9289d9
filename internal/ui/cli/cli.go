// Package cli implements a command-line UI for the game.
package cli

import (
	"bufio"
	"fmt"
	"github.com/charmbracelet/lipgloss"
	. "github.com/janpfeifer/isolationGo/internal/state"
	"github.com/pkg/errors"
	"golang.org/x/term"
	"io"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// CharsPerColumn is the width of each cell when printing the board.
const CharsPerColumn = 4

var ansiFilter = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// displayWidth of s removes its color/control sequences and returns the length of what is left.
func displayWidth(s string) int {
	return len(ansiFilter.ReplaceAllString(s, ""))
}

// terminalWidth returns the width of the terminal, or 0 if the output is not a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func (ui *UI) printCentered(block string) {
	lines := strings.Split(strings.TrimRight(block, "\n"), "\n")
	blockWidth := 0
	for _, line := range lines {
		blockWidth = max(blockWidth, displayWidth(line))
	}
	indent := max((terminalWidth(ui.out)-blockWidth)/2, 0)
	for _, line := range lines {
		if len(line) == 0 {
			_, _ = fmt.Fprintln(ui.out)
			continue
		}
		_, _ = fmt.Fprintf(ui.out, "%s%s\n", strings.Repeat(" ", indent), line)
	}
}

// UI prints boards and reads the moves of human players.
type UI struct {
	color, clearScreen bool
	reader             *bufio.Reader
	out                io.Writer

	emptyStyle, blockedStyle, movesStyle, headerStyle lipgloss.Style
	playerStyles                                      [NumPlayers]lipgloss.Style
}

var (
	moveParser = regexp.MustCompile(`^\s*(-?\d+)[\s,]+(-?\d+)\s*$`)

	// ErrParsing is returned by ReadMove after too many invalid inputs.
	ErrParsing = errors.New("failed to read move 3 times")
)

// New creates a UI reading from stdin and writing to stdout.
// If color is false, no ANSI colors/control sequences are used.
func New(color bool, clearScreen bool) *UI {
	return NewWithIO(color, clearScreen, os.Stdin, os.Stdout)
}

// NewWithIO creates a UI reading from in and writing to out.
func NewWithIO(color bool, clearScreen bool, in io.Reader, out io.Writer) *UI {
	ui := &UI{
		color:       color,
		clearScreen: clearScreen,
		reader:      bufio.NewReader(in),
		out:         out,
	}
	cell := lipgloss.NewStyle().Width(CharsPerColumn).Align(lipgloss.Center)
	ui.emptyStyle = cell
	ui.blockedStyle = cell
	ui.movesStyle = cell
	ui.headerStyle = cell
	ui.playerStyles = [NumPlayers]lipgloss.Style{cell, cell}
	if color {
		ui.blockedStyle = cell.Background(lipgloss.Color("240")).Foreground(lipgloss.Color("250"))
		ui.movesStyle = cell.Foreground(lipgloss.Color("13")).Bold(true)
		ui.headerStyle = cell.Foreground(lipgloss.Color("244")).Italic(true)
		ui.playerStyles[PlayerFirst] = cell.Background(lipgloss.Color("1")).Foreground(lipgloss.Color("0")).Bold(true)
		ui.playerStyles[PlayerSecond] = cell.Background(lipgloss.Color("2")).Foreground(lipgloss.Color("0")).Bold(true)
	}
	return ui
}

// PlayerString returns the name of the player, colored if color is enabled.
func (ui *UI) PlayerString(player PlayerNum) string {
	name := fmt.Sprintf("%s Player", player)
	if !ui.color {
		return name
	}
	return ui.playerStyles[player].UnsetWidth().Padding(0, 1).Render(name)
}

// PrintPlayer prints the player to move.
func (ui *UI) PrintPlayer(board *Board) {
	_, _ = fmt.Fprint(ui.out, ui.PlayerString(board.NextPlayer()))
}

// PrintBoard prints the board, without highlighting moves.
func (ui *UI) PrintBoard(board *Board) {
	ui.printCentered(ui.RenderBoard(board, nil))
}

// Print the board, optionally with the legal moves of the next player highlighted.
func (ui *UI) Print(board *Board, includeLegalMoves bool) {
	if ui.clearScreen {
		_, _ = fmt.Fprint(ui.out, "\033c")
	}
	var moves []Pos
	if includeLegalMoves {
		moves = board.LegalMoves(board.NextPlayer())
	}
	ui.printCentered(ui.RenderBoard(board, moves))
	_, _ = fmt.Fprintln(ui.out)
	_, _ = fmt.Fprintf(ui.out, "Move #%d, next: %s\n", board.MoveNumber(), ui.PlayerString(board.NextPlayer()))
}

// RenderBoard returns the board as a string, with row and column numbers.
// Cells in highlight are marked with a "*".
func (ui *UI) RenderBoard(board *Board, highlight []Pos) string {
	width, height := board.Dimensions()
	var sb strings.Builder
	sb.WriteString(ui.headerStyle.Render(""))
	for col := range width {
		sb.WriteString(ui.headerStyle.Render(strconv.Itoa(col)))
	}
	sb.WriteByte('\n')
	for row := range height {
		sb.WriteString(ui.headerStyle.Render(strconv.Itoa(row)))
		for col := range width {
			pos := Pos{int8(row), int8(col)}
			sb.WriteString(ui.renderCell(board, pos, slices.Contains(highlight, pos)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (ui *UI) renderCell(board *Board, pos Pos, highlight bool) string {
	for _, player := range []PlayerNum{PlayerFirst, PlayerSecond} {
		if board.Location(player) == pos {
			return ui.playerStyles[player].Render(strconv.Itoa(int(player) + 1))
		}
	}
	if highlight {
		return ui.movesStyle.Render("*")
	}
	if board.IsEmpty(pos) {
		return ui.emptyStyle.Render(".")
	}
	return ui.blockedStyle.Render("#")
}

// PrintWinner of a finished board.
func (ui *UI) PrintWinner(board *Board) {
	winner := board.Winner()
	_, _ = fmt.Fprintln(ui.out)
	if winner == PlayerInvalid {
		ui.printCentered("*** Match not finished ***")
	} else {
		msg := fmt.Sprintf("*** %s WINS!! Congratulations! ***", strings.ToUpper(winner.String()+" player"))
		if ui.color {
			msg = ui.playerStyles[winner].UnsetWidth().Padding(1, 2).Render(msg)
		}
		ui.printCentered(msg)
	}
	_, _ = fmt.Fprintln(ui.out)
}

// ParseMove parses a "row col" (or "row,col") text.
func ParseMove(text string) (move Pos, err error) {
	matches := moveParser.FindStringSubmatch(text)
	if len(matches) != 3 {
		return NoMove, errors.Errorf("failed to parse move %q, please use \"<row> <col>\"", text)
	}
	for ii := range 2 {
		i64, err := strconv.ParseInt(matches[1+ii], 10, 8)
		if err != nil {
			return NoMove, errors.Wrapf(err, "failed to parse coordinate %q in %q", matches[1+ii], text)
		}
		move[ii] = int8(i64)
	}
	return move, nil
}

// ReadMove reads the move of a human player for the next player of the board.
// It gives the user 3 tries, and then returns ErrParsing.
func (ui *UI) ReadMove(board *Board) (move Pos, err error) {
	for range 3 {
		_, _ = fmt.Fprint(ui.out, "    ")
		ui.PrintPlayer(board)
		_, _ = fmt.Fprint(ui.out, " move > ")
		var text string
		text, err = ui.reader.ReadString('\n')
		if err != nil && (err != io.EOF || text == "") {
			return NoMove, err
		}
		move, err = ParseMove(strings.TrimSpace(text))
		if err != nil {
			_, _ = fmt.Fprintf(ui.out, "    * %s\n", err)
			continue
		}
		if !board.IsValid(move) {
			_, _ = fmt.Fprintf(ui.out, "    * Moving to %s is not valid.\n", move)
			continue
		}
		return move, nil
	}
	return NoMove, ErrParsing
}
