package core

import (
	"maps"
	"slices"
)

// SystemModel maps every state id to its StateModel. It is built once from a
// sequence of transition specs and never modified afterwards, so any number
// of agents may share it.
type SystemModel struct {
	states map[int64]*StateModel
	ids    []int64
	index  map[int64]int

	specs []TransitionSpec
}

// Build creates the model for specs. Both endpoints of every spec become
// states; a state that never appears as From has no actions.
//
// Build accepts any input. Probabilities that do not sum to 1 per
// (From, Action), or repeated (From, Action, To) triples, silently produce
// meaningless values later on. Run ValidateSpecs first to reject them.
func Build(specs []TransitionSpec) *SystemModel {
	s := &SystemModel{
		states: make(map[int64]*StateModel),
		specs:  slices.Clone(specs),
	}

	for _, spec := range s.specs {
		s.getOrCreate(spec.From).insert(spec.To, spec.Action, spec.Probability, spec.Reward)
		s.getOrCreate(spec.To)
	}

	for _, state := range s.states {
		state.computeCaches()
	}

	s.ids = slices.Sorted(maps.Keys(s.states))
	s.index = make(map[int64]int, len(s.ids))
	for i, id := range s.ids {
		s.index[id] = i
	}
	return s
}

func (s *SystemModel) getOrCreate(id int64) *StateModel {
	state, ok := s.states[id]
	if !ok {
		state = newStateModel(id)
		s.states[id] = state
	}
	return state
}

// State looks up a state. The second result is false for ids that were never built.
func (s *SystemModel) State(id int64) (*StateModel, bool) {
	state, ok := s.states[id]
	return state, ok
}

// States returns all states in ascending id order.
func (s *SystemModel) States() []*StateModel {
	out := make([]*StateModel, len(s.ids))
	for i, id := range s.ids {
		out[i] = s.states[id]
	}
	return out
}

// IDs returns all state ids in ascending order.
func (s *SystemModel) IDs() []int64 {
	return slices.Clone(s.ids)
}

func (s *SystemModel) Len() int {
	return len(s.ids)
}

// Specs returns the transitions the model was built from.
func (s *SystemModel) Specs() []TransitionSpec {
	return slices.Clone(s.specs)
}

// NumActions counts (state, action) pairs over the whole model.
func (s *SystemModel) NumActions() int {
	n := 0
	for _, state := range s.states {
		n += len(state.actions)
	}
	return n
}
