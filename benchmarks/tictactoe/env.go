package tictactoe

import (
	"errors"
	"fmt"

	erand "golang.org/x/exp/rand"

	"github.com/zeu5/policy-iteration/core"
)

// GameState is a board seen by the circle player.
type GameState struct {
	Board Board
}

var _ core.State = &GameState{}

func (g *GameState) ID() int64 {
	return g.Board.ID()
}

func (g *GameState) Actions() []string {
	if g.Board.Over() {
		return []string{}
	}
	return g.Board.Actions()
}

func (g *GameState) Terminal() bool {
	return g.Board.Over()
}

func (g *GameState) String() string {
	return g.Board.String()
}

// Environment plays circle moves against a random cross opponent. Rewards
// are 1 for a circle win, -1 for a cross win and 0 otherwise.
type Environment struct {
	seed uint64
	rand *erand.Rand
	cur  *GameState
}

var _ core.Environment = &Environment{}

func NewEnvironment(seed uint64) *Environment {
	return &Environment{
		seed: seed,
		rand: erand.New(erand.NewSource(seed)),
	}
}

func (e *Environment) Reset() (core.State, error) {
	e.cur = &GameState{}
	return e.cur, nil
}

func (e *Environment) Step(action string, _ *core.StepContext) (core.State, float64, error) {
	if e.cur == nil {
		return nil, 0, errors.New("step before reset")
	}
	if e.cur.Terminal() {
		return nil, 0, fmt.Errorf("%w: game is over", ErrIllegalMove)
	}
	board, err := e.cur.Board.Apply(action, Circle)
	if err != nil {
		return nil, 0, err
	}
	if board.HasWon(Circle) {
		e.cur = &GameState{Board: board}
		return e.cur, 1, nil
	}
	replies := board.Actions()
	if len(replies) == 0 {
		e.cur = &GameState{Board: board}
		return e.cur, 0, nil
	}
	board, err = board.Apply(replies[e.rand.Intn(len(replies))], Cross)
	if err != nil {
		return nil, 0, err
	}
	e.cur = &GameState{Board: board}
	if board.HasWon(Cross) {
		return e.cur, -1, nil
	}
	return e.cur, 0, nil
}
