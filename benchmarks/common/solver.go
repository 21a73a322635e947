package common

import (
	"fmt"
	"log/slog"

	"github.com/zeu5/policy-iteration/analysis"
	"github.com/zeu5/policy-iteration/core"
	"github.com/zeu5/policy-iteration/logging"
	"github.com/zeu5/policy-iteration/metrics"
)

// ProbabilityTolerance bounds how far the outcome probabilities of an action
// may sum away from 1 before validation rejects them.
const ProbabilityTolerance = 1e-6

// Solve validates the transitions when asked, builds the model and runs
// policy iteration on it. Metrics and the convergence chart are written when
// their files are configured.
func Solve(flags *Flags, name string, specs []core.TransitionSpec, logger *slog.Logger) (*core.Agent, core.ImproveResult, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if flags.Validate {
		if err := core.ValidateSpecs(specs, ProbabilityTolerance); err != nil {
			return nil, core.ImproveResult{}, fmt.Errorf("invalid transitions for %s: %w", name, err)
		}
	}

	system := core.Build(specs)
	logger.Info("model built",
		"name", name,
		"states", system.Len(),
		"actions", system.NumActions(),
		"transitions", len(specs),
	)

	m := metrics.New()
	agent := core.InitRandom(system, core.WithLogger(logger), core.WithObserver(m))
	result := agent.Improve(flags.Discount, flags.Tolerance, flags.PolicyIterations, flags.EvalSweeps)
	if !result.Converged() {
		logger.Warn("policy iteration stopped before converging",
			"name", name,
			"iterations", result.Iterations,
			"max_delta", result.MaxDelta,
		)
	}

	if flags.MetricsFile != "" {
		if err := m.WriteToTextfile(flags.MetricsFile); err != nil {
			return agent, result, fmt.Errorf("writing metrics: %w", err)
		}
	}
	if flags.PlotFile != "" {
		if err := analysis.PlotConvergence(flags.PlotFile, analysis.Series{Name: name, Values: result.Deltas()}); err != nil {
			return agent, result, fmt.Errorf("plotting convergence: %w", err)
		}
	}
	return agent, result, nil
}

// Uniform returns an agent with the uniform policy over system, evaluated
// once, as the untrained baseline next to a solved agent.
func Uniform(flags *Flags, system *core.SystemModel, logger *slog.Logger) *core.Agent {
	if logger == nil {
		logger = logging.NewNop()
	}
	agent := core.InitRandom(system, core.WithLogger(logger))
	agent.Evaluate(flags.Discount, flags.Tolerance, flags.EvalSweeps)
	return agent
}
