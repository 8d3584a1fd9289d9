// Package ai (Artificial Intelligence) defines the interface the evaluation functions (scorers) of
// isolation boards have to implement, and a registry of the available ones.
package ai

import (
	"github.com/chewxy/math32"
	"github.com/janpfeifer/isolationGo/internal/generics"
	. "github.com/janpfeifer/isolationGo/internal/state"
	"github.com/pkg/errors"
	"strings"
	"sync"
)

var (
	// WinScore is returned for a board the player already won. The search relies on it being larger
	// than any heuristic value.
	WinScore = math32.Inf(1)

	// LossScore is returned for a board the player already lost.
	LossScore = math32.Inf(-1)
)

// ValueScorer (aka. evaluation function) returns a score (value) of the board from the perspective
// of the given player: larger is better for the player.
//
// Implementations must return LossScore if the player lost, WinScore if the player won, and a finite
// value otherwise. They must not change the board.
type ValueScorer interface {
	Score(board GameState, player PlayerNum) float32
	String() string
}

// IsProven returns whether the score is a proven win or loss, as opposed to a heuristic estimate.
func IsProven(score float32) bool {
	return math32.IsInf(score, 0)
}

// EndGameScore returns whether the game is over for player, and if so the corresponding
// LossScore or WinScore. If isEnd is false, the score should be ignored.
func EndGameScore(board GameState, player PlayerNum) (isEnd bool, score float32) {
	if board.IsLoser(player) {
		return true, LossScore
	}
	if board.IsWinner(player) {
		return true, WinScore
	}
	return false, 0
}

// ScorerFunc adapts a function to a ValueScorer.
// The function is only called for boards where the game is not yet over for player,
// ScorerFunc takes care of returning LossScore/WinScore.
type ScorerFunc struct {
	Name string
	Fn   func(board GameState, player PlayerNum) float32
}

// Assert ScorerFunc is a ValueScorer.
var _ ValueScorer = ScorerFunc{}

// Score implements ValueScorer.
func (s ScorerFunc) Score(board GameState, player PlayerNum) float32 {
	if isEnd, score := EndGameScore(board, player); isEnd {
		return score
	}
	return s.Fn(board, player)
}

// String implements ValueScorer.
func (s ScorerFunc) String() string {
	return s.Name
}

var (
	muRegistry       sync.Mutex
	registeredScores = make(map[string]ValueScorer)
)

// RegisterScorer makes a scorer available by name, typically from an init() function.
// Registering twice the same name panics.
func RegisterScorer(name string, scorer ValueScorer) {
	muRegistry.Lock()
	defer muRegistry.Unlock()
	if _, found := registeredScores[name]; found {
		panic(errors.Errorf("ai.RegisterScorer(%q): scorer already registered", name))
	}
	registeredScores[name] = scorer
}

// ScorerByName returns the registered scorer with the given name.
func ScorerByName(name string) (ValueScorer, error) {
	muRegistry.Lock()
	defer muRegistry.Unlock()
	scorer, found := registeredScores[name]
	if !found {
		return nil, errors.Errorf("unknown scorer %q, registered scorers are: %q",
			name, strings.Join(generics.KeysSlice(registeredScores), ", "))
	}
	return scorer, nil
}

// ScorerNames returns the sorted names of the registered scorers.
func ScorerNames() []string {
	muRegistry.Lock()
	defer muRegistry.Unlock()
	return generics.KeysSlice(registeredScores)
}
