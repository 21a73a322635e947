package core

import (
	"errors"
	"fmt"

	erand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// ModelEnvironment plays episodes directly on a SystemModel. Each step
// samples the destination of the chosen action from its outcome
// distribution.
type ModelEnvironment struct {
	system *SystemModel
	start  int64
	rand   erand.Source
	cur    *StateModel
}

var _ Environment = &ModelEnvironment{}

func NewModelEnvironment(system *SystemModel, start int64, seed uint64) (*ModelEnvironment, error) {
	if _, ok := system.State(start); !ok {
		return nil, fmt.Errorf("%w: start state %d", ErrUnknownState, start)
	}
	return &ModelEnvironment{
		system: system,
		start:  start,
		rand:   erand.NewSource(seed),
	}, nil
}

type modelState struct {
	model *StateModel
}

var _ State = &modelState{}

func (s *modelState) ID() int64 {
	return s.model.ID()
}

func (s *modelState) Actions() []string {
	return s.model.Actions()
}

func (s *modelState) Terminal() bool {
	return !s.model.HasActions()
}

func (m *ModelEnvironment) Reset() (State, error) {
	m.cur, _ = m.system.State(m.start)
	return &modelState{model: m.cur}, nil
}

func (m *ModelEnvironment) Step(action string, _ *StepContext) (State, float64, error) {
	if m.cur == nil {
		return nil, 0, errors.New("step before reset")
	}
	probs, ok := m.cur.outcomes[action]
	if !ok {
		return nil, 0, fmt.Errorf("%w: state %d has no action %q", ErrUnknownAction, m.cur.ID(), action)
	}

	destinations := make([]int64, 0, len(probs))
	weights := make([]float64, 0, len(probs))
	for _, to := range m.cur.destinations {
		if p, ok := probs[to]; ok && p > 0 {
			destinations = append(destinations, to)
			weights = append(weights, p)
		}
	}
	if len(destinations) == 0 {
		return nil, 0, fmt.Errorf("state %d action %q has no reachable outcome", m.cur.ID(), action)
	}
	i, ok := sampleuv.NewWeighted(weights, m.rand).Take()
	if !ok {
		return nil, 0, fmt.Errorf("state %d action %q: sampling failed", m.cur.ID(), action)
	}

	to := destinations[i]
	reward := m.cur.rewards[action][to]
	m.cur, _ = m.system.State(to)
	return &modelState{model: m.cur}, reward, nil
}
