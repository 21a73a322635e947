package core

import (
	"fmt"
	"log/slog"
	"maps"
	"math"
	"slices"

	"github.com/zeu5/policy-iteration/logging"
	"github.com/zeu5/policy-iteration/util"
	"gonum.org/v1/gonum/floats"
)

// Sweep cap of the evaluation that follows every greedy policy update.
const improvementEvalSweeps = 100

// PolicyTable maps a state to the probability of each of its actions.
// Actionless states map to an empty distribution.
type PolicyTable map[int64]map[string]float64

// ValueTable maps a state to its expected discounted return.
type ValueTable map[int64]float64

// Agent runs policy iteration over a SystemModel. It owns its policy and
// value tables and only reads the model.
//
// Policy and values are stored in the model's ascending id order, so every
// loop over states and every tie between actions resolves the same way on
// every run.
type Agent struct {
	system *SystemModel
	policy []map[string]float64
	values []float64

	logger   *slog.Logger
	observer Observer
}

type AgentOption func(*Agent)

func WithLogger(logger *slog.Logger) AgentOption {
	return func(a *Agent) {
		a.logger = logger
	}
}

func WithObserver(o Observer) AgentOption {
	return func(a *Agent) {
		a.observer = o
	}
}

// InitRandom creates an agent with a uniform policy over every state's
// actions and all values set to 0.
func InitRandom(system *SystemModel, opts ...AgentOption) *Agent {
	a := &Agent{
		system:   system,
		policy:   make([]map[string]float64, system.Len()),
		values:   make([]float64, system.Len()),
		logger:   logging.NewNop(),
		observer: noOpObserver{},
	}
	for _, opt := range opts {
		opt(a)
	}
	for i, state := range system.States() {
		a.policy[i] = state.uniformPolicy()
	}
	return a
}

func (a *Agent) System() *SystemModel {
	return a.system
}

// Policy returns a copy of the current policy.
func (a *Agent) Policy() PolicyTable {
	out := make(PolicyTable, len(a.policy))
	for i, id := range a.system.ids {
		out[id] = maps.Clone(a.policy[i])
	}
	return out
}

// Values returns a copy of the current value table.
func (a *Agent) Values() ValueTable {
	out := make(ValueTable, len(a.values))
	for i, id := range a.system.ids {
		out[id] = a.values[i]
	}
	return out
}

// Value returns the current value estimate of one state.
func (a *Agent) Value(id int64) (float64, bool) {
	i, ok := a.system.index[id]
	if !ok {
		return 0, false
	}
	return a.values[i], true
}

// ActionProbabilities returns the current policy of one state.
func (a *Agent) ActionProbabilities(id int64) (map[string]float64, bool) {
	i, ok := a.system.index[id]
	if !ok {
		return nil, false
	}
	return maps.Clone(a.policy[i]), true
}

// SetPolicy replaces the policy of every state present in policy. States
// not mentioned keep their current policy. Unknown states or actions are
// rejected and leave the agent unchanged.
func (a *Agent) SetPolicy(policy PolicyTable) error {
	for id, probs := range policy {
		state, ok := a.system.State(id)
		if !ok {
			return fmt.Errorf("%w: %d", ErrUnknownState, id)
		}
		for action := range probs {
			if !state.HasAction(action) {
				return fmt.Errorf("%w: state %d has no action %q", ErrUnknownAction, id, action)
			}
		}
	}
	for id, probs := range policy {
		a.policy[a.system.index[id]] = maps.Clone(probs)
	}
	return nil
}

type weightedEdge struct {
	to   int
	prob float64
}

// Evaluate estimates the value of the current policy by synchronous sweeps
// of the Bellman expectation update. Every sweep reads only the previous
// sweep's table. It stops when the largest change of a sweep is below
// tolerance or after maxSweeps sweeps (at least one) and keeps the last table.
func (a *Agent) Evaluate(discount, tolerance float64, maxSweeps int) EvalResult {
	states := a.system.States()
	n := len(states)

	staticReward := make([]float64, n)
	transitions := make([][]weightedEdge, n)
	for i, state := range states {
		staticReward[i] = util.MatchMulSum(a.policy[i], state.expectedReward)
		row := make([]weightedEdge, 0, len(state.destinations))
		for _, to := range state.destinations {
			prob := util.MatchMulSum(a.policy[i], state.inbound[to])
			if prob == 0 {
				continue
			}
			row = append(row, weightedEdge{to: a.system.index[to], prob: prob})
		}
		transitions[i] = row
	}

	if maxSweeps < 1 {
		maxSweeps = 1
	}
	prev := slices.Clone(a.values)
	next := make([]float64, n)
	result := EvalResult{Reason: StopLimit}
	for result.Sweeps < maxSweeps {
		for i := range next {
			future := float64(0)
			for _, e := range transitions[i] {
				future += e.prob * prev[e.to]
			}
			next[i] = staticReward[i] + discount*future
		}
		result.Sweeps++
		result.MaxDelta = maxChange(next, prev)
		prev, next = next, prev
		if result.MaxDelta < tolerance {
			result.Reason = StopTolerance
			break
		}
	}
	a.values = prev

	a.logger.Debug("policy evaluated",
		"sweeps", result.Sweeps,
		"max_delta", result.MaxDelta,
		"stop", result.Reason.String(),
	)
	a.observer.ObserveEvaluation(result)
	return result
}

// GreedyAction returns the action maximising immediate expected reward plus
// the discounted value of the outcomes under the current value table. Ties
// go to the smallest label. It returns false for unknown and actionless states.
func (a *Agent) GreedyAction(id int64, discount float64) (string, bool) {
	state, ok := a.system.State(id)
	if !ok {
		return "", false
	}
	action, _, ok := a.greedyAction(state, discount)
	return action, ok
}

// ActionValues returns the one-step lookahead value of every action of a state.
func (a *Agent) ActionValues(id int64, discount float64) (map[string]float64, bool) {
	state, ok := a.system.State(id)
	if !ok {
		return nil, false
	}
	out := make(map[string]float64, len(state.actions))
	for _, action := range state.actions {
		out[action] = a.actionValue(state, action, discount)
	}
	return out, true
}

func (a *Agent) actionValue(state *StateModel, action string, discount float64) float64 {
	future := float64(0)
	for _, to := range state.destinations {
		future += state.inbound[to][action] * a.values[a.system.index[to]]
	}
	return state.expectedReward[action] + discount*future
}

func (a *Agent) greedyAction(state *StateModel, discount float64) (string, float64, bool) {
	best := ""
	bestVal := math.Inf(-1)
	found := false
	for _, action := range state.actions {
		val := a.actionValue(state, action, discount)
		if !found || val > bestVal {
			best = action
			bestVal = val
			found = true
		}
	}
	return best, bestVal, found
}

// Improve runs deterministic policy iteration. The current policy is first
// evaluated with innerEvalSweeps sweeps. Then, up to outerIterations times
// (at least once), every state switches to its greedy action, the new policy
// is evaluated and the loop stops once the value table moved less than
// tolerance.
func (a *Agent) Improve(discount, tolerance float64, outerIterations, innerEvalSweeps int) ImproveResult {
	result := ImproveResult{
		Reason:  StopLimit,
		History: make([]ImprovementStep, 0),
	}
	result.Initial = a.Evaluate(discount, tolerance, innerEvalSweeps)

	if outerIterations < 1 {
		outerIterations = 1
	}
	states := a.system.States()
	for result.Iterations < outerIterations {
		snapshot := slices.Clone(a.values)

		policy := make([]map[string]float64, len(states))
		changes := 0
		for i, state := range states {
			best, _, ok := a.greedyAction(state, discount)
			if !ok {
				policy[i] = make(map[string]float64)
				continue
			}
			if prev, _ := argmaxAction(a.policy[i]); prev != best || a.policy[i][best] != 1 {
				changes++
			}
			policy[i] = state.deterministicPolicy(best)
		}
		a.policy = policy

		eval := a.Evaluate(discount, tolerance, improvementEvalSweeps)
		result.Iterations++
		step := ImprovementStep{
			Iteration:     result.Iterations,
			MaxDelta:      maxChange(a.values, snapshot),
			PolicyChanges: changes,
			Eval:          eval,
		}
		result.History = append(result.History, step)
		result.MaxDelta = step.MaxDelta

		a.logger.Debug("policy improved",
			"iteration", step.Iteration,
			"max_delta", step.MaxDelta,
			"policy_changes", step.PolicyChanges,
		)
		a.observer.ObserveImprovement(step)

		if step.MaxDelta < tolerance {
			result.Reason = StopTolerance
			break
		}
	}

	a.logger.Info("policy iteration finished",
		"states", len(states),
		"iterations", result.Iterations,
		"max_delta", result.MaxDelta,
		"stop", result.Reason.String(),
	)
	return result
}

// QueryAction returns the most probable action of the current policy for a
// state, the smallest label on ties. It returns false when the state is
// unknown or its policy is empty, meaning there is no decision to make.
func (a *Agent) QueryAction(id int64) (string, bool) {
	i, ok := a.system.index[id]
	if !ok {
		return "", false
	}
	return argmaxAction(a.policy[i])
}

func argmaxAction(policy map[string]float64) (string, bool) {
	best := ""
	bestProb := math.Inf(-1)
	found := false
	for _, action := range slices.Sorted(maps.Keys(policy)) {
		if p := policy[action]; !found || p > bestProb {
			best = action
			bestProb = p
			found = true
		}
	}
	return best, found
}

// maxChange is the largest absolute difference between two value buffers.
func maxChange(a, b []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	return floats.Distance(a, b, math.Inf(1))
}
