package core

import (
	"maps"
	"slices"
)

// StateModel holds the decisions available in one state: for every action
// the distribution over destinations and the reward of each destination.
// The expected reward per action and the destination-major transpose of the
// outcome table are derived once when the model is built.
type StateModel struct {
	id int64

	outcomes map[string]map[int64]float64
	rewards  map[string]map[int64]float64

	actions        []string
	destinations   []int64
	expectedReward map[string]float64
	inbound        map[int64]map[string]float64
}

func newStateModel(id int64) *StateModel {
	return &StateModel{
		id:             id,
		outcomes:       make(map[string]map[int64]float64),
		rewards:        make(map[string]map[int64]float64),
		actions:        make([]string, 0),
		destinations:   make([]int64, 0),
		expectedReward: make(map[string]float64),
		inbound:        make(map[int64]map[string]float64),
	}
}

// insert sets the outcome and reward of (action, to), overwriting any
// earlier edge with the same pair.
func (s *StateModel) insert(to int64, action string, prob, reward float64) {
	if _, ok := s.outcomes[action]; !ok {
		s.outcomes[action] = make(map[int64]float64)
		s.rewards[action] = make(map[int64]float64)
	}
	s.outcomes[action][to] = prob
	s.rewards[action][to] = reward
}

func (s *StateModel) computeCaches() {
	s.actions = slices.Sorted(maps.Keys(s.outcomes))

	s.expectedReward = make(map[string]float64, len(s.actions))
	for _, action := range s.actions {
		expected := float64(0)
		probs := s.outcomes[action]
		for _, to := range slices.Sorted(maps.Keys(probs)) {
			expected += probs[to] * s.rewards[action][to]
		}
		s.expectedReward[action] = expected
	}

	s.inbound = make(map[int64]map[string]float64)
	for action, probs := range s.outcomes {
		for to, prob := range probs {
			if _, ok := s.inbound[to]; !ok {
				s.inbound[to] = make(map[string]float64, len(s.actions))
			}
			s.inbound[to][action] = prob
		}
	}
	// every action appears for every destination, with 0 when it has no edge there
	for _, byAction := range s.inbound {
		for _, action := range s.actions {
			if _, ok := byAction[action]; !ok {
				byAction[action] = 0
			}
		}
	}
	s.destinations = slices.Sorted(maps.Keys(s.inbound))
}

func (s *StateModel) ID() int64 {
	return s.id
}

// Actions returns the labels of the available actions in ascending order.
func (s *StateModel) Actions() []string {
	return slices.Clone(s.actions)
}

// HasActions is false for terminal states and states only seen as destinations.
func (s *StateModel) HasActions() bool {
	return len(s.actions) > 0
}

func (s *StateModel) HasAction(action string) bool {
	_, ok := s.outcomes[action]
	return ok
}

// Destinations returns every state reachable in one step, in ascending order.
func (s *StateModel) Destinations() []int64 {
	return slices.Clone(s.destinations)
}

// Outcomes returns the destination distribution of action.
func (s *StateModel) Outcomes(action string) (map[int64]float64, bool) {
	probs, ok := s.outcomes[action]
	if !ok {
		return nil, false
	}
	return maps.Clone(probs), true
}

// Rewards returns the reward collected at each destination of action.
func (s *StateModel) Rewards(action string) (map[int64]float64, bool) {
	rewards, ok := s.rewards[action]
	if !ok {
		return nil, false
	}
	return maps.Clone(rewards), true
}

// ExpectedReward is the immediate reward of action marginalised over its outcomes.
func (s *StateModel) ExpectedReward(action string) (float64, bool) {
	r, ok := s.expectedReward[action]
	return r, ok
}

func (s *StateModel) ExpectedRewards() map[string]float64 {
	return maps.Clone(s.expectedReward)
}

// InboundTransitions returns, for every destination, the probability of
// reaching it under each action of the state.
func (s *StateModel) InboundTransitions() map[int64]map[string]float64 {
	out := make(map[int64]map[string]float64, len(s.inbound))
	for to, byAction := range s.inbound {
		out[to] = maps.Clone(byAction)
	}
	return out
}

// uniformPolicy spreads probability evenly over the actions of the state.
func (s *StateModel) uniformPolicy() map[string]float64 {
	policy := make(map[string]float64, len(s.actions))
	for _, action := range s.actions {
		policy[action] = 1 / float64(len(s.actions))
	}
	return policy
}

// deterministicPolicy puts probability 1 on best and 0 on every other action.
func (s *StateModel) deterministicPolicy(best string) map[string]float64 {
	policy := make(map[string]float64, len(s.actions))
	for _, action := range s.actions {
		if action == best {
			policy[action] = 1
		} else {
			policy[action] = 0
		}
	}
	return policy
}
