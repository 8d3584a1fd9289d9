package match

import (
	"context"
	"fmt"
	"github.com/janpfeifer/isolationGo/internal/players"
	. "github.com/janpfeifer/isolationGo/internal/state"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Summary of a series of matches between two player configurations, indexed by the
// configuration (not by who moved first).
type Summary struct {
	Configs       [2]string
	Played, Total int

	WinsAs1st, WinsAs2nd [2]int

	// Forfeits lost by each configuration, per reason. Forfeits[idx][ReasonNoMoves] counts the
	// normal losses.
	Forfeits [2][NumReasons]int

	Elapsed time.Duration
}

// Wins of the configuration idx.
func (s *Summary) Wins(idx int) int {
	return s.WinsAs1st[idx] + s.WinsAs2nd[idx]
}

// WinRate of the configuration idx, over the matches played.
func (s *Summary) WinRate(idx int) float64 {
	if s.Played == 0 {
		return 0
	}
	return float64(s.Wins(idx)) / float64(s.Played)
}

// String implements fmt.Stringer.
func (s *Summary) String() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("Played %d of %d: ", s.Played, s.Total))
	for idx := range 2 {
		parts = append(parts,
			fmt.Sprintf("AI-%d: %d Wins (1st: %d, 2nd: %d, %.1f%%) / ",
				idx+1, s.Wins(idx), s.WinsAs1st[idx], s.WinsAs2nd[idx], 100*s.WinRate(idx)))
	}
	var forfeits []string
	for idx := range 2 {
		for reason := ReasonTimeout; reason < NumReasons; reason++ {
			if count := s.Forfeits[idx][reason]; count > 0 {
				forfeits = append(forfeits, fmt.Sprintf("AI-%d %s: %d", idx+1, reason, count))
			}
		}
	}
	if len(forfeits) > 0 {
		parts = append(parts, "forfeits: "+strings.Join(forfeits, ", ")+" / ")
	}
	parts = append(parts, s.Elapsed.Round(time.Millisecond).String())
	return strings.Join(parts, "")
}

func (s *Summary) record(result *Result, isSwapped bool) {
	winnerIdx := int(result.Winner)
	if isSwapped {
		winnerIdx = 1 - winnerIdx
	}
	if result.Winner == PlayerFirst {
		s.WinsAs1st[winnerIdx]++
	} else {
		s.WinsAs2nd[winnerIdx]++
	}
	s.Forfeits[1-winnerIdx][result.Reason]++
	s.Played++
}

// RunMatches plays numMatches matches between the players created from configs, alternating who
// moves first: in even matches configs[0] moves first.
//
// Players are created fresh for each match, since they hold search state. If parallelism <= 0,
// GOMAXPROCS matches are played simultaneously.
//
// If ctx is cancelled, it returns the partial summary along with the context error.
func RunMatches(ctx context.Context, configs [2]string, opts Options, numMatches, parallelism int) (*Summary, error) {
	// Validate configurations before starting.
	for idx, config := range configs {
		if _, err := players.New(config); err != nil {
			return nil, errors.WithMessagef(err, "invalid configuration for AI-%d", idx+1)
		}
	}
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	summary := &Summary{Configs: configs, Total: numMatches}
	var mu sync.Mutex
	start := time.Now()
	var wg errgroup.Group
	wg.SetLimit(parallelism)
	for matchIdx := range numMatches {
		wg.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			isSwapped := matchIdx%2 == 1
			var matchPlayers [NumPlayers]players.Player
			for idx, config := range configs {
				playerNum := idx
				if isSwapped {
					playerNum = 1 - idx
				}
				player, err := players.New(config)
				if err != nil {
					return err
				}
				matchPlayers[playerNum] = player
			}
			matchOpts := opts
			if opts.Seed != 0 {
				matchOpts.Seed = opts.Seed + uint64(matchIdx)
			}
			klog.V(1).Infof("Starting match %d", matchIdx)
			result, err := Play(ctx, matchPlayers, matchOpts)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			klog.V(1).Infof("Finished match %d: %s", matchIdx, result)

			mu.Lock()
			defer mu.Unlock()
			summary.record(result, isSwapped)
			summary.Elapsed = time.Since(start)
			if opts.Progress != nil {
				opts.Progress(*summary)
			}
			return nil
		})
	}
	err := wg.Wait()
	summary.Elapsed = time.Since(start)
	if err != nil {
		return summary, err
	}
	return summary, ctx.Err()
}
