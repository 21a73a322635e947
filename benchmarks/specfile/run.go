package specfile

import (
	"io"
	"log/slog"

	"github.com/zeu5/policy-iteration/analysis"
	"github.com/zeu5/policy-iteration/benchmarks/common"
	"github.com/zeu5/policy-iteration/core"
	"github.com/zeu5/policy-iteration/policies"
)

// PrepareComparison plays the trained agent greedily, the untrained uniform
// policy sampled and a random baseline on simulations of the agent's own
// model, starting from start.
func PrepareComparison(flags *common.Flags, agent *core.Agent, start int64, out io.Writer, logger *slog.Logger) (*core.Comparison, error) {
	seed := uint64(flags.Seed)
	envs := make([]*core.ModelEnvironment, 3)
	for i := range envs {
		env, err := core.NewModelEnvironment(agent.System(), start, seed)
		if err != nil {
			return nil, err
		}
		envs[i] = env
	}

	cmp := core.NewComparison()
	if flags.Debug {
		debug, err := analysis.NewPrintDebugAnalyzer(flags.SavePath, flags.Episodes-10, logger)
		if err != nil {
			return nil, err
		}
		cmp.AddAnalysis("Debug", debug, analysis.NewNoOpComparator())
	}
	cmp.AddAnalysis("Outcomes", analysis.NewOutcomeAnalyzer(), analysis.NewOutcomeComparator(flags.SavePath, out))

	cmp.AddExperiment(&core.Experiment{
		Name:        "Greedy",
		Environment: envs[0],
		Policy:      policies.NewGreedyPolicy(agent),
	})
	cmp.AddExperiment(&core.Experiment{
		Name:        "Sampled",
		Environment: envs[1],
		Policy:      policies.NewSampledPolicy(common.Uniform(flags, agent.System(), logger), seed),
	})
	cmp.AddExperiment(&core.Experiment{
		Name:        "Random",
		Environment: envs[2],
		Policy:      policies.NewRandomPolicy(flags.Seed),
	})
	return cmp, nil
}
