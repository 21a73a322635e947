package policies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeu5/policy-iteration/core"
)

type fixedState struct {
	id      int64
	actions []string
}

func (s fixedState) ID() int64         { return s.id }
func (s fixedState) Actions() []string { return s.actions }
func (s fixedState) Terminal() bool    { return len(s.actions) == 0 }

var arms = []string{"Arm_1", "Arm_2", "Arm_3"}

func trainedAgent(t *testing.T) *core.Agent {
	t.Helper()
	agent := core.InitRandom(core.Build([]core.TransitionSpec{
		{From: 0, To: 1, Action: arms[0], Probability: 1, Reward: 1},
		{From: 0, To: 1, Action: arms[1], Probability: 1, Reward: 2},
		{From: 0, To: 1, Action: arms[2], Probability: 1, Reward: 3},
	}))
	agent.Improve(1, 0.01, 10, 10)
	return agent
}

func TestGreedyPolicyPlaysBestAction(t *testing.T) {
	policy := NewGreedyPolicy(trainedAgent(t))

	action, ok := policy.PickAction(nil, fixedState{id: 0, actions: arms}, arms)
	require.True(t, ok)
	assert.Equal(t, "Arm_3", action)

	_, ok = policy.PickAction(nil, fixedState{id: 0}, arms[:2])
	assert.False(t, ok, "best action not offered")

	_, ok = policy.PickAction(nil, fixedState{id: 1}, nil)
	assert.False(t, ok, "terminal state")
}

func TestSampledPolicyFollowsDistribution(t *testing.T) {
	agent := core.InitRandom(core.Build([]core.TransitionSpec{
		{From: 0, To: 1, Action: "left", Probability: 1},
		{From: 0, To: 1, Action: "right", Probability: 1},
	}))
	require.NoError(t, agent.SetPolicy(core.PolicyTable{0: {"left": 0.2, "right": 0.8}}))
	policy := NewSampledPolicy(agent, 3)
	actions := []string{"left", "right"}

	counts := map[string]int{}
	trials := 5000
	for i := 0; i < trials; i++ {
		action, ok := policy.PickAction(nil, fixedState{id: 0, actions: actions}, actions)
		require.True(t, ok)
		counts[action]++
	}
	assert.InDelta(t, 0.8, float64(counts["right"])/float64(trials), 0.05)
}

func TestSampledPolicyRestrictsToOfferedActions(t *testing.T) {
	policy := NewSampledPolicy(trainedAgent(t), 1)

	for i := 0; i < 20; i++ {
		action, ok := policy.PickAction(nil, fixedState{id: 0}, []string{"Arm_3"})
		require.True(t, ok)
		assert.Equal(t, "Arm_3", action)
	}
	_, ok := policy.PickAction(nil, fixedState{id: 0}, []string{"Arm_1"})
	assert.False(t, ok, "no weight on the offered actions")
	_, ok = policy.PickAction(nil, fixedState{id: 9}, arms)
	assert.False(t, ok, "unknown state")
}

func TestSampledPolicyResetRepeatsDraws(t *testing.T) {
	agent := core.InitRandom(core.Build([]core.TransitionSpec{
		{From: 0, To: 1, Action: "a", Probability: 1},
		{From: 0, To: 1, Action: "b", Probability: 1},
	}))
	policy := NewSampledPolicy(agent, 42)
	actions := []string{"a", "b"}

	draw := func() []string {
		out := make([]string, 0, 10)
		for i := 0; i < 10; i++ {
			a, _ := policy.PickAction(nil, fixedState{id: 0}, actions)
			out = append(out, a)
		}
		return out
	}
	first := draw()
	policy.Reset()
	assert.Equal(t, first, draw())
}

func TestRandomPolicy(t *testing.T) {
	policy := NewRandomPolicy(5)

	_, ok := policy.PickAction(nil, fixedState{}, nil)
	assert.False(t, ok)

	seen := map[string]bool{}
	first := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		action, ok := policy.PickAction(nil, fixedState{}, arms)
		require.True(t, ok)
		assert.Contains(t, arms, action)
		seen[action] = true
		first = append(first, action)
	}
	assert.Len(t, seen, 3)

	policy.Reset()
	for i := 0; i < 30; i++ {
		action, _ := policy.PickAction(nil, fixedState{}, arms)
		assert.Equal(t, first[i], action)
	}
}
