// compare plays a series of matches between two AI configurations and prints the results.
package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/janpfeifer/isolationGo/internal/match"
	"github.com/janpfeifer/isolationGo/internal/profilers"
	. "github.com/janpfeifer/isolationGo/internal/state"
	"github.com/janpfeifer/isolationGo/internal/ui/cli"
	"github.com/janpfeifer/isolationGo/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"strconv"
	"sync"
	"time"
)

var (
	flagPlayer1Config = flag.String("ai1", "", "1st player configuration.")
	flagPlayer2Config = flag.String("ai2", "", "2nd player configuration.")
	flagNumMatches    = flag.Int("num_matches", 100, "Number of matches to play.")
	flagParallelism   = flag.Int("parallelism", 0, "If > 0 ignore GOMAXPROCS and play "+
		"these many matches simultaneously.")
	flagTimeLimit      = flag.Duration("time_limit", match.DefaultTimeLimit, "Time limit for each move.")
	flagRandomOpenings = flag.Int("random_openings", 2, "Number of random moves at the start of each match.")
	flagSeed           = flag.Uint64("seed", 0, "Seed for the random openings. If 0, a random seed is used.")
	flagWidth          = flag.Int("width", DefaultWidth, "Width of the board.")
	flagHeight         = flag.Int("height", DefaultHeight, "Height of the board.")
	flagPrintSteps     = flag.Bool("print_steps", false, "Print board at each step. "+
		"Very verbose, and you probably want to set -parallelism=1.")
)

// Globals
var (
	// globalCtx used everywhere. It is cancelled when the program is about to exit either by
	// an interrupt (ctrl+C) or by reaching the end.
	globalCtx = context.Background()

	stepUI   = cli.New(true, false)
	muStepUI sync.Mutex
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if *flagPlayer1Config == "" || *flagPlayer2Config == "" {
		klog.Fatal("You must configure both players to compare with flags -ai1 and -ai2")
	}

	// Capture Control+C
	var globalCancel func()
	globalCtx, globalCancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(globalCancel, 5*time.Second)
	defer globalCancel()

	profiler := must.M1(profilers.Setup())
	defer profiler.Stop()

	opts := match.Options{
		Width:          *flagWidth,
		Height:         *flagHeight,
		TimeLimit:      *flagTimeLimit,
		RandomOpenings: *flagRandomOpenings,
		Seed:           *flagSeed,
		Progress: func(summary match.Summary) {
			fmt.Printf("\r%s\033[0K", &summary)
		},
	}
	if *flagPrintSteps {
		opts.OnMove = printStep
	}
	configs := [2]string{*flagPlayer1Config, *flagPlayer2Config}
	summary, err := match.RunMatches(globalCtx, configs, opts, *flagNumMatches, *flagParallelism)
	fmt.Println()
	if errors.Is(err, context.Canceled) {
		fmt.Printf("Interrupted: %s\n", err)
		err = nil
	}
	must.M(err)
	fmt.Println()
	fmt.Println(summaryTable(summary))
}

func printStep(board *Board, move Pos) {
	muStepUI.Lock()
	defer muStepUI.Unlock()
	fmt.Printf("Move #%d: %s to %s\n", board.MoveNumber(), board.NextPlayer().Opponent(), move)
	stepUI.PrintBoard(board)
	fmt.Println("------------------")
}

// summaryTable renders the summary as a table, one row per AI configuration.
func summaryTable(summary *match.Summary) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("244"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("AI", "Config", "Wins", "As 1st", "As 2nd", "Win rate", "Timeouts", "Illegal", "Panics")
	for idx, config := range summary.Configs {
		forfeits := summary.Forfeits[idx]
		t.Row(
			fmt.Sprintf("AI-%d", idx+1), config,
			strconv.Itoa(summary.Wins(idx)),
			strconv.Itoa(summary.WinsAs1st[idx]), strconv.Itoa(summary.WinsAs2nd[idx]),
			fmt.Sprintf("%.1f%%", 100*summary.WinRate(idx)),
			strconv.Itoa(forfeits[match.ReasonTimeout]),
			strconv.Itoa(forfeits[match.ReasonIllegalMove]),
			strconv.Itoa(forfeits[match.ReasonPanic]))
	}
	return fmt.Sprintf("%s\nPlayed %d of %d matches in %s.",
		t.Render(), summary.Played, summary.Total, summary.Elapsed.Round(time.Millisecond))
}
