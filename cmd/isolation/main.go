// isolation plays a match in the terminal: human vs AI, human vs human (-hotseat) or
// AI vs AI (-watch).
package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/isolationGo/internal/match"
	"github.com/janpfeifer/isolationGo/internal/players"
	"github.com/janpfeifer/isolationGo/internal/searchers"
	. "github.com/janpfeifer/isolationGo/internal/state"
	"github.com/janpfeifer/isolationGo/internal/ui/cli"
	"github.com/janpfeifer/isolationGo/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
	"math/rand/v2"
	"strings"
	"time"
)

var (
	flagHotseat   = flag.Bool("hotseat", false, "Hotseat match: human vs human")
	flagWatch     = flag.Bool("watch", false, "Watch mode: AI vs AI playing")
	flagFirst     = flag.String("first", "", "Who plays first: human or ai. Default is random.")
	flagAIConfig  = flag.String("config", players.DefaultPlayerConfig, "AI configuration against which to play")
	flagAIConfig2 = flag.String("config2", players.DefaultPlayerConfig, "Second AI configuration, if playing AI vs AI with --watch")
	flagTimeLimit = flag.Duration("time_limit", match.DefaultTimeLimit, "Time limit for each AI move.")
	flagWidth     = flag.Int("width", DefaultWidth, "Width of the board.")
	flagHeight    = flag.Int("height", DefaultHeight, "Height of the board.")
	flagNoColor   = flag.Bool("no_color", false, "Disable colors in the terminal.")

	globalCtx = context.Background()
	ui        *cli.UI
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if *flagTimeLimit <= 0 {
		klog.Fatalf("Invalid --time_limit=%s", *flagTimeLimit)
	}

	// Capture Control+C
	var cancel func()
	globalCtx, cancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(cancel, 3*time.Second)
	defer cancel()

	ui = cli.New(!*flagNoColor, false)
	matchPlayers := createPlayers()
	opts := match.Options{
		Width:  *flagWidth,
		Height: *flagHeight,
		// Humans take their time: AI players keep their own clock, see aiPlayer.
		TimeLimit: -1,
		OnMove: func(board *Board, move Pos) {
			fmt.Printf("  %s moved to %s\n\n", ui.PlayerString(board.NextPlayer().Opponent()), move)
		},
	}
	result, err := match.Play(globalCtx, matchPlayers, opts)
	if err != nil {
		klog.Exitf("Match interrupted: %v", err)
	}
	ui.Print(result.Final, false)
	if !result.Reason.IsForfeit() {
		ui.PrintWinner(result.Final)
		return
	}
	fmt.Printf("\n%s forfeits (%s), %s wins.\n",
		ui.PlayerString(result.Winner.Opponent()), result.Reason, ui.PlayerString(result.Winner))
}

// createPlayers returns the players for the match, where index 0 moves first.
func createPlayers() (matchPlayers [NumPlayers]players.Player) {
	if *flagHotseat && *flagWatch {
		klog.Fatalf("--hotseat and --watch cannot be used together")
	}
	matchPlayers = [NumPlayers]players.Player{&humanPlayer{}, &humanPlayer{}}
	if *flagHotseat {
		// Both players are human, nothing else to do.
		return
	}

	var aiPlayerNum PlayerNum
	if *flagWatch {
		aiPlayerNum = PlayerFirst
	} else {
		switch strings.ToLower(*flagFirst) {
		case "human":
			aiPlayerNum = PlayerSecond
		case "ai":
			aiPlayerNum = PlayerFirst
		case "":
			aiPlayerNum = PlayerNum(rand.IntN(NumPlayers))
		default:
			exceptions.Panicf("invalid --first=%q, only valid values are \"human\" or \"ai\"", *flagFirst)
		}
	}
	matchPlayers[aiPlayerNum] = newAIPlayer(*flagAIConfig)
	if *flagWatch {
		matchPlayers[aiPlayerNum.Opponent()] = newAIPlayer(*flagAIConfig2)
	}
	return
}

// aiPlayer wraps an AI with its own clock, and shows a spinning symbol while it thinks.
type aiPlayer struct {
	players.Player
}

func newAIPlayer(config string) *aiPlayer {
	player := must.M1(players.New(config))
	klog.V(1).Infof("Created AI %q: %s", config, player)
	return &aiPlayer{Player: player}
}

func (p *aiPlayer) Play(board GameState, legalMoves []Pos, _ searchers.TimeLeftFn) Pos {
	if *flagWatch {
		ui.Print(board.(*Board), false)
	}
	fmt.Printf("  AI (%s) thinking:", p.Player)
	s := spinning.New(globalCtx)
	move := p.Player.Play(board, legalMoves, searchers.NewDeadline(*flagTimeLimit))
	s.Done()
	fmt.Println()
	if searcherPlayer, ok := p.Player.(*players.SearcherPlayer); ok {
		depth, score := searcherPlayer.LastSearch()
		klog.V(1).Infof("AI searched depth %d, score %g", depth, score)
	}
	return move
}

// humanPlayer reads its moves from the terminal.
type humanPlayer struct{}

func (p *humanPlayer) Play(board GameState, _ []Pos, _ searchers.TimeLeftFn) Pos {
	b := board.(*Board)
	ui.Print(b, true)
	move, err := ui.ReadMove(b)
	if err != nil {
		klog.Errorf("Failed to read move: %v", err)
		return NoMove
	}
	return move
}

func (p *humanPlayer) String() string {
	return "human"
}
