package tictactoe

import (
	"io"
	"log/slog"

	"github.com/zeu5/policy-iteration/analysis"
	"github.com/zeu5/policy-iteration/benchmarks/common"
	"github.com/zeu5/policy-iteration/core"
	"github.com/zeu5/policy-iteration/policies"
)

// PrepareComparison plays the trained agent greedily, the untrained uniform
// policy sampled and a random baseline against the random opponent.
func PrepareComparison(flags *common.Flags, agent *core.Agent, out io.Writer, logger *slog.Logger) (*core.Comparison, error) {
	cmp := core.NewComparison()
	seed := uint64(flags.Seed)

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
		Environment: NewEnvironment(seed),
		Policy:      policies.NewGreedyPolicy(agent),
	})
	cmp.AddExperiment(&core.Experiment{
		Name:        "Sampled",
		Environment: NewEnvironment(seed),
		Policy:      policies.NewSampledPolicy(common.Uniform(flags, agent.System(), logger), seed),
	})
	cmp.AddExperiment(&core.Experiment{
		Name:        "Random",
		Environment: NewEnvironment(seed),
		Policy:      policies.NewRandomPolicy(flags.Seed),
	})
	return cmp, nil
}
