package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const epsilon = 0.01

var arms = []string{"Arm_1", "Arm_2", "Arm_3"}

// banditSpecs gives state 0 three arms with rewards 1, 2 and 3, all ending in state 1.
func banditSpecs() []TransitionSpec {
	return []TransitionSpec{
		{From: 0, To: 1, Action: arms[0], Probability: 1, Reward: 1},
		{From: 0, To: 1, Action: arms[1], Probability: 1, Reward: 2},
		{From: 0, To: 1, Action: arms[2], Probability: 1, Reward: 3},
	}
}

// chainedSpecs adds a second bandit in state 1 with the rewards reversed.
func chainedSpecs() []TransitionSpec {
	return append(banditSpecs(),
		TransitionSpec{From: 1, To: 2, Action: arms[0], Probability: 1, Reward: 3},
		TransitionSpec{From: 1, To: 2, Action: arms[1], Probability: 1, Reward: 2},
		TransitionSpec{From: 1, To: 2, Action: arms[2], Probability: 1, Reward: 1},
	)
}

type countingObserver struct {
	evaluations  []EvalResult
	improvements []ImprovementStep
}

func (c *countingObserver) ObserveEvaluation(r EvalResult) {
	c.evaluations = append(c.evaluations, r)
}

func (c *countingObserver) ObserveImprovement(s ImprovementStep) {
	c.improvements = append(c.improvements, s)
}

func TestInitRandomIsUniform(t *testing.T) {
	system := Build([]TransitionSpec{
		{From: 0, To: 1, Action: "First_Action", Probability: 0.9, Reward: 0},
		{From: 0, To: 2, Action: "First_Action", Probability: 0.1, Reward: 10},
		{From: 0, To: 0, Action: "Second_Action", Probability: 0.9, Reward: 0},
		{From: 0, To: 1, Action: "Second_Action", Probability: 0.1, Reward: 0},
		{From: 0, To: 1, Action: "Third_Action", Probability: 1, Reward: 1},
		{From: 1, To: 2, Action: "First_Action", Probability: 1, Reward: 5},
		{From: 1, To: 0, Action: "Second_Action", Probability: 0.5, Reward: 0},
		{From: 1, To: 2, Action: "Second_Action", Probability: 0.5, Reward: 0},
	})
	agent := InitRandom(system)

	assert.Equal(t, PolicyTable{
		0: {"First_Action": 1. / 3, "Second_Action": 1. / 3, "Third_Action": 1. / 3},
		1: {"First_Action": 1. / 2, "Second_Action": 1. / 2},
		2: {},
	}, agent.Policy())
	assert.Equal(t, ValueTable{0: 0, 1: 0, 2: 0}, agent.Values())
	assert.Same(t, system, agent.System())
}

func TestEvaluateSingleAction(t *testing.T) {
	agent := InitRandom(Build([]TransitionSpec{
		{From: 0, To: 1, Action: "go", Probability: 1, Reward: 5},
	}))

	result := agent.Evaluate(1, epsilon, 10)

	assert.True(t, result.Converged())
	values := agent.Values()
	assert.InDelta(t, 5, values[0], epsilon)
	assert.InDelta(t, 0, values[1], epsilon)
}

func TestEvaluateBanditMean(t *testing.T) {
	agent := InitRandom(Build(banditSpecs()))

	agent.Evaluate(1, epsilon, 10)

	value, ok := agent.Value(0)
	require.True(t, ok)
	assert.InDelta(t, 2, value, 2*epsilon)
	value, _ = agent.Value(1)
	assert.InDelta(t, 0, value, 2*epsilon)

	require.NoError(t, agent.SetPolicy(PolicyTable{
		0: {"Arm_1": 0, "Arm_2": 0, "Arm_3": 1},
		1: {},
	}))
	agent.Evaluate(1, epsilon, 10)

	value, _ = agent.Value(0)
	assert.InDelta(t, 3, value, 2*epsilon)
}

func TestEvaluateChainedBandits(t *testing.T) {
	agent := InitRandom(Build(chainedSpecs()))

	agent.Evaluate(1, epsilon, 10)
	values := agent.Values()
	assert.InDelta(t, 4, values[0], 2*epsilon)
	assert.InDelta(t, 2, values[1], 2*epsilon)

	require.NoError(t, agent.SetPolicy(PolicyTable{
		0: {"Arm_1": 0, "Arm_2": 0, "Arm_3": 1},
		1: {"Arm_1": 1, "Arm_2": 0, "Arm_3": 0},
	}))
	agent.Evaluate(1, epsilon, 10)

	values = agent.Values()
	assert.InDelta(t, 6, values[0], 2*epsilon)
	assert.InDelta(t, 3, values[1], 2*epsilon)
}

func TestEvaluateIsSynchronous(t *testing.T) {
	// 2 -> 1 -> 0, ids visited in ascending order. An in-place sweep would
	// already see the new value of 1 when updating 2.
	agent := InitRandom(Build([]TransitionSpec{
		{From: 2, To: 1, Action: "step", Probability: 1, Reward: 1},
		{From: 1, To: 0, Action: "step", Probability: 1, Reward: 1},
	}))

	result := agent.Evaluate(1, epsilon, 1)

	assert.Equal(t, 1, result.Sweeps)
	assert.Equal(t, StopLimit, result.Reason)
	assert.Equal(t, ValueTable{0: 0, 1: 1, 2: 1}, agent.Values())

	agent.Evaluate(1, epsilon, 1)
	assert.Equal(t, ValueTable{0: 0, 1: 1, 2: 2}, agent.Values())
}

func TestEvaluateDiscountedLoop(t *testing.T) {
	specs := []TransitionSpec{
		{From: 0, To: 0, Action: "stay", Probability: 1, Reward: 1},
	}

	capped := InitRandom(Build(specs))
	result := capped.Evaluate(0.5, 1e-9, 3)
	assert.Equal(t, 3, result.Sweeps)
	assert.Equal(t, StopLimit, result.Reason)
	assert.False(t, result.Converged())
	value, _ := capped.Value(0)
	assert.InDelta(t, 1.75, value, 1e-12)
	assert.InDelta(t, 0.25, result.MaxDelta, 1e-12)

	converged := InitRandom(Build(specs))
	result = converged.Evaluate(0.5, 1e-9, 1000)
	assert.Equal(t, StopTolerance, result.Reason)
	value, _ = converged.Value(0)
	assert.InDelta(t, 2, value, 1e-8)
}

func TestEvaluateRunsAtLeastOneSweep(t *testing.T) {
	agent := InitRandom(Build(banditSpecs()))

	result := agent.Evaluate(1, epsilon, 0)

	assert.Equal(t, 1, result.Sweeps)
	value, _ := agent.Value(0)
	assert.InDelta(t, 2, value, 1e-12)
}

func TestEvaluateIdempotentAfterConvergence(t *testing.T) {
	agent := InitRandom(Build([]TransitionSpec{
		{From: 0, To: 1, Action: "a", Probability: 0.5, Reward: 1},
		{From: 0, To: 0, Action: "a", Probability: 0.5, Reward: 0},
		{From: 0, To: 1, Action: "b", Probability: 1, Reward: 0.5},
		{From: 1, To: 0, Action: "back", Probability: 1, Reward: 0},
	}))
	agent.Evaluate(0.9, 1e-6, 10000)
	before := agent.Values()

	agent.Evaluate(0.9, 1e-6, 10000)

	for id, v := range agent.Values() {
		assert.InDelta(t, before[id], v, 1e-6)
	}
}

func TestImproveBanditPicksBestArm(t *testing.T) {
	agent := InitRandom(Build(banditSpecs()))

	result := agent.Improve(1, epsilon, 100, 100)

	assert.True(t, result.Converged())
	value, _ := agent.Value(0)
	assert.InDelta(t, 3, value, 2*epsilon)
	assert.Equal(t, PolicyTable{
		0: {"Arm_1": 0, "Arm_2": 0, "Arm_3": 1},
		1: {},
	}, agent.Policy())

	action, ok := agent.QueryAction(0)
	require.True(t, ok)
	assert.Equal(t, "Arm_3", action)
}

func TestImproveChainedBandits(t *testing.T) {
	agent := InitRandom(Build(chainedSpecs()))

	result := agent.Improve(1, epsilon, 100, 100)

	assert.True(t, result.Converged())
	values := agent.Values()
	assert.InDelta(t, 6, values[0], 2*epsilon)
	assert.InDelta(t, 3, values[1], 2*epsilon)
	assert.InDelta(t, 0, values[2], 2*epsilon)

	action, _ := agent.QueryAction(0)
	assert.Equal(t, "Arm_3", action)
	action, _ = agent.QueryAction(1)
	assert.Equal(t, "Arm_1", action)
}

func TestImproveStochasticChoice(t *testing.T) {
	// "risky" pays 10 with probability 0.1 and otherwise returns to 0;
	// "safe" ends with reward 0. Undiscounted, retrying forever is best.
	agent := InitRandom(Build([]TransitionSpec{
		{From: 0, To: 1, Action: "safe", Probability: 1, Reward: 0},
		{From: 0, To: 0, Action: "risky", Probability: 0.9, Reward: 0},
		{From: 0, To: 1, Action: "risky", Probability: 0.1, Reward: 10},
	}))

	agent.Improve(0.9, 1e-6, 50, 1000)

	action, ok := agent.QueryAction(0)
	require.True(t, ok)
	assert.Equal(t, "risky", action)
	// v = 1 + 0.9*0.9*v
	value, _ := agent.Value(0)
	assert.InDelta(t, 1/(1-0.81), value, 1e-3)
}

func TestImproveReportsHistory(t *testing.T) {
	observer := &countingObserver{}
	agent := InitRandom(Build(chainedSpecs()), WithObserver(observer))

	result := agent.Improve(1, epsilon, 100, 100)

	require.NotEmpty(t, result.History)
	assert.Equal(t, result.Iterations, len(result.History))
	assert.Equal(t, result.Deltas()[len(result.History)-1], result.MaxDelta)
	assert.Equal(t, 2, result.History[0].PolicyChanges)
	assert.Zero(t, result.History[len(result.History)-1].PolicyChanges)

	assert.Len(t, observer.improvements, result.Iterations)
	// the initial evaluation plus one per improvement step
	assert.Len(t, observer.evaluations, result.Iterations+1)
}

func TestImproveStopsAtIterationCap(t *testing.T) {
	agent := InitRandom(Build([]TransitionSpec{
		{From: 0, To: 0, Action: "stay", Probability: 1, Reward: 1},
	}))

	result := agent.Improve(0.99, 1e-12, 2, 1)

	assert.Equal(t, 2, result.Iterations)
	assert.Equal(t, StopLimit, result.Reason)
	assert.False(t, result.Converged())
}

func TestTerminalStatesHaveNoAction(t *testing.T) {
	agent := InitRandom(Build(chainedSpecs()))
	agent.Improve(1, epsilon, 100, 100)

	probs, ok := agent.ActionProbabilities(2)
	require.True(t, ok)
	assert.Empty(t, probs)

	_, ok = agent.QueryAction(2)
	assert.False(t, ok)
	_, ok = agent.GreedyAction(2, 1)
	assert.False(t, ok)
}

func TestUnknownStateLookups(t *testing.T) {
	agent := InitRandom(Build(banditSpecs()))

	_, ok := agent.QueryAction(99)
	assert.False(t, ok)
	_, ok = agent.GreedyAction(99, 1)
	assert.False(t, ok)
	_, ok = agent.Value(99)
	assert.False(t, ok)
	_, ok = agent.ActionValues(99, 1)
	assert.False(t, ok)
}

func TestTiesBreakToSmallestLabel(t *testing.T) {
	agent := InitRandom(Build([]TransitionSpec{
		{From: 0, To: 1, Action: "b", Probability: 1, Reward: 1},
		{From: 0, To: 1, Action: "a", Probability: 1, Reward: 1},
		{From: 0, To: 1, Action: "c", Probability: 1, Reward: 1},
	}))

	action, ok := agent.QueryAction(0)
	require.True(t, ok)
	assert.Equal(t, "a", action)

	action, ok = agent.GreedyAction(0, 1)
	require.True(t, ok)
	assert.Equal(t, "a", action)

	agent.Improve(1, epsilon, 10, 10)
	action, _ = agent.QueryAction(0)
	assert.Equal(t, "a", action)
}

func TestGreedyActionUsesCurrentValues(t *testing.T) {
	// "near" pays 1 now, "far" pays nothing now but leads to a state worth 5
	agent := InitRandom(Build([]TransitionSpec{
		{From: 0, To: 1, Action: "near", Probability: 1, Reward: 1},
		{From: 0, To: 2, Action: "far", Probability: 1, Reward: 0},
		{From: 2, To: 1, Action: "collect", Probability: 1, Reward: 5},
	}))

	action, _ := agent.GreedyAction(0, 1)
	assert.Equal(t, "near", action)

	agent.Evaluate(1, epsilon, 10)
	action, _ = agent.GreedyAction(0, 1)
	assert.Equal(t, "far", action)

	values, ok := agent.ActionValues(0, 0.5)
	require.True(t, ok)
	assert.InDelta(t, 1, values["near"], 1e-12)
	assert.InDelta(t, 2.5, values["far"], 1e-12)
}

func TestSetPolicyRejectsUnknownEntries(t *testing.T) {
	agent := InitRandom(Build(banditSpecs()))
	before := agent.Policy()

	err := agent.SetPolicy(PolicyTable{42: {"Arm_1": 1}})
	assert.ErrorIs(t, err, ErrUnknownState)

	err = agent.SetPolicy(PolicyTable{
		0: {"Arm_1": 1},
		1: {"Arm_1": 1},
	})
	assert.ErrorIs(t, err, ErrUnknownAction)
	assert.Equal(t, before, agent.Policy())
}

func TestAgentsShareSystem(t *testing.T) {
	system := Build(banditSpecs())
	first := InitRandom(system)
	second := InitRandom(system)

	first.Improve(1, epsilon, 10, 10)

	assert.Equal(t, 1./3, second.Policy()[0]["Arm_3"])
	value, _ := second.Value(0)
	assert.Zero(t, value)
}
