package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeu5/policy-iteration/core"
)

func banditAgent(m *Metrics) *core.Agent {
	return core.InitRandom(core.Build([]core.TransitionSpec{
		{From: 0, To: 1, Action: "Arm_1", Probability: 1, Reward: 1},
		{From: 0, To: 1, Action: "Arm_2", Probability: 1, Reward: 2},
		{From: 0, To: 1, Action: "Arm_3", Probability: 1, Reward: 3},
	}), core.WithObserver(m))
}

func TestMetricsObserveSolver(t *testing.T) {
	m := New()
	agent := banditAgent(m)

	result := agent.Improve(1, 0.01, 10, 10)

	evaluations := testutil.ToFloat64(m.evaluations.WithLabelValues("tolerance")) +
		testutil.ToFloat64(m.evaluations.WithLabelValues("limit"))
	// one initial evaluation plus one per iteration
	assert.Equal(t, float64(result.Iterations+1), evaluations)
	assert.Equal(t, float64(result.Iterations), testutil.ToFloat64(m.improvements))
	// only state 0 has a decision to change
	assert.Equal(t, 1.0, testutil.ToFloat64(m.policyChanges))
	assert.GreaterOrEqual(t, testutil.ToFloat64(m.sweeps), evaluations)
	assert.Less(t, testutil.ToFloat64(m.lastDelta), 0.01)
}

func TestMetricsRegistriesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.ObserveImprovement(core.ImprovementStep{Iteration: 1, MaxDelta: 0.5, PolicyChanges: 3})

	assert.Equal(t, 3.0, testutil.ToFloat64(a.policyChanges))
	assert.Zero(t, testutil.ToFloat64(b.policyChanges))
}

func TestWriteToTextfile(t *testing.T) {
	m := New()
	m.ObserveEvaluation(core.EvalResult{Sweeps: 4, MaxDelta: 0.25, Reason: core.StopLimit})
	m.ObserveImprovement(core.ImprovementStep{Iteration: 1, MaxDelta: 0.5})
	m.ObserveImprovement(core.ImprovementStep{Iteration: 2, MaxDelta: 0})

	file := filepath.Join(t.TempDir(), "solver.prom")
	require.NoError(t, m.WriteToTextfile(file))

	bs, err := os.ReadFile(file)
	require.NoError(t, err)
	out := string(bs)
	assert.Contains(t, out, `polyiter_evaluations_total{reason="limit"} 1`)
	assert.Contains(t, out, "polyiter_evaluation_sweeps_total 4")
	assert.Contains(t, out, "polyiter_evaluation_last_delta 0.25")
	assert.Contains(t, out, "polyiter_improvement_delta_count 2")
}
