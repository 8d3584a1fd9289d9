// Package players provides AI players, and a factory to build them from configuration strings.
package players

import (
	"github.com/janpfeifer/isolationGo/internal/ai"
	"github.com/janpfeifer/isolationGo/internal/ai/heuristics"
	"github.com/janpfeifer/isolationGo/internal/generics"
	"github.com/janpfeifer/isolationGo/internal/parameters"
	"github.com/janpfeifer/isolationGo/internal/searchers"
	"github.com/janpfeifer/isolationGo/internal/searchers/alphabeta"
	"github.com/janpfeifer/isolationGo/internal/searchers/minimax"
	. "github.com/janpfeifer/isolationGo/internal/state"
	"github.com/pkg/errors"
	"strings"
)

// Player is anything that is able to play the game.
type Player interface {
	// Play returns the move chosen for board.NextPlayer(), which must be one of legalMoves, or NoMove if
	// legalMoves is empty.
	//
	// timeLeft is polled to know how much time is left for the move: the player must return before it
	// reaches 0.
	Play(board GameState, legalMoves []Pos, timeLeft searchers.TimeLeftFn) Pos

	// String returns a description of the player.
	String() string
}

var (
	// DefaultPlayerConfig is used if no configuration was given to the AI.
	DefaultPlayerConfig = "ratio,minimax,iterative,max_depth=3,threshold=10ms"
)

// New creates a new AI player given the configuration string.
//
// Args:
//
//   - config: a comma-separated list of parameters with optional values associated.
//     If empty, the default is given by DefaultPlayerConfig.
//     E.g.: "center,ab,iterative=false,max_depth=5"
//
// Parameters:
//
//   - random (bool): a player that plays random moves. It takes no other parameters.
//   - ratio, own or center (bool): the scorer (evaluation function) to use, see package heuristics.
//     Default is "ratio".
//   - minimax or ab (bool): the search algorithm. Default is "minimax".
//   - max_depth (int): depth of the search when not iterative. Default is 3.
//   - iterative (bool): if to use iterative deepening. Default is true.
//   - max_plies (int): maximum depth for iterative deepening, if 0 it uses half of the board cells.
//   - threshold (time.Duration): time left at which the search is aborted, default 10ms.
func New(config string) (Player, error) {
	if config == "" {
		config = DefaultPlayerConfig
	}
	params := parameters.NewFromConfigString(config)

	isRandom, err := parameters.PopParamOr(params, "random", false)
	if err != nil {
		return nil, err
	}
	if isRandom {
		if len(params) > 0 {
			return nil, errors.Errorf("random player takes no parameters, got \"%s\"",
				strings.Join(generics.KeysSlice(params), "\", \""))
		}
		return NewRandomPlayer(), nil
	}

	// Find scorer.
	var scorer ai.ValueScorer
	for _, name := range ai.ScorerNames() {
		selected, err := parameters.PopParamOr(params, name, false)
		if err != nil {
			return nil, err
		}
		if !selected {
			continue
		}
		if scorer != nil {
			return nil, errors.Errorf("multiple scorers defined in parameters %q", config)
		}
		scorer, err = ai.ScorerByName(name)
		if err != nil {
			return nil, err
		}
	}
	if scorer == nil {
		scorer, err = ai.ScorerByName(heuristics.Default)
		if err != nil {
			return nil, err
		}
	}

	threshold, err := parameters.PopParamOr(params, "threshold", searchers.DefaultTimeThreshold)
	if err != nil {
		return nil, err
	}
	if threshold < 0 {
		return nil, errors.Errorf("negative threshold (%s given) not possible", threshold)
	}

	// Find searcher.
	useAB, err := parameters.PopParamOr(params, "ab", false)
	if err != nil {
		return nil, err
	}
	useMinimax, err := parameters.PopParamOr(params, "minimax", false)
	if err != nil {
		return nil, err
	}
	if useAB && useMinimax {
		return nil, errors.Errorf("multiple searchers defined in parameters %q", config)
	}
	var searcher searchers.Searcher
	if useAB {
		searcher = alphabeta.New(scorer).WithTimeThreshold(threshold)
	} else {
		searcher = minimax.New(scorer).WithTimeThreshold(threshold)
	}

	player := NewSearcherPlayer(searcher)
	maxDepth, err := parameters.PopParamOr(params, "max_depth", player.maxDepth)
	if err != nil {
		return nil, err
	}
	if maxDepth <= 0 {
		return nil, errors.Errorf("max_depth must be > 0, got %d", maxDepth)
	}
	iterative, err := parameters.PopParamOr(params, "iterative", player.iterative)
	if err != nil {
		return nil, err
	}
	maxPlies, err := parameters.PopParamOr(params, "max_plies", player.maxPlies)
	if err != nil {
		return nil, err
	}
	player.WithMaxDepth(maxDepth).WithIterative(iterative).WithMaxPlies(maxPlies)

	// Check that all parameters were processed.
	if len(params) > 0 {
		return nil, errors.Errorf("unknown AI parameters \"%s\" passed", strings.Join(generics.KeysSlice(params), "\", \""))
	}
	return player, nil
}
