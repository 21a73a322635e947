package cmd

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/zeu5/policy-iteration/benchmarks/common"
	"github.com/zeu5/policy-iteration/logging"
)

var (
	flags    *common.Flags = common.DefaultFlags()
	logger   *slog.Logger  = logging.NewNop()
	savePath string

	discount         float64
	tolerance        float64
	policyIterations int
	evalSweeps       int
	validate         bool

	numRuns                int
	episodes               int
	horizon                int
	maxConsecutiveErrors   int
	maxConsecutiveTimeouts int
	episodeTimeout         int

	seed        int64
	logLevel    string
	metricsFile string
	plotFile    string
	debug       bool
)

func AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&savePath, "save-path", flags.SavePath, "Path to save results")
	cmd.PersistentFlags().Float64Var(&discount, "discount", flags.Discount, "Discount factor in [0, 1]")
	cmd.PersistentFlags().Float64Var(&tolerance, "tolerance", flags.Tolerance, "Convergence tolerance on the largest value change")
	cmd.PersistentFlags().IntVar(&policyIterations, "policy-iterations", flags.PolicyIterations, "Maximum number of policy improvement iterations")
	cmd.PersistentFlags().IntVar(&evalSweeps, "eval-sweeps", flags.EvalSweeps, "Maximum number of sweeps of the initial policy evaluation")
	cmd.PersistentFlags().BoolVar(&validate, "validate", flags.Validate, "Reject malformed transitions before solving")

	cmd.PersistentFlags().IntVar(&numRuns, "num-runs", flags.NumRuns, "Number of runs")
	cmd.PersistentFlags().IntVar(&episodes, "episodes", flags.Episodes, "Number of episodes")
	cmd.PersistentFlags().IntVar(&horizon, "horizon", flags.Horizon, "Horizon")
	cmd.PersistentFlags().IntVar(&maxConsecutiveErrors, "max-consecutive-errors", flags.MaxConsecutiveErrors, "Maximum number of consecutive errors")
	cmd.PersistentFlags().IntVar(&maxConsecutiveTimeouts, "max-consecutive-timeouts", flags.MaxConsecutiveTimeouts, "Maximum number of consecutive timeouts")
	cmd.PersistentFlags().IntVar(&episodeTimeout, "episode-timeout", int(flags.EpisodeTimeout.Seconds()), "Episode timeout in seconds, 0 disables it")

	cmd.PersistentFlags().Int64Var(&seed, "seed", flags.Seed, "Seed for the opponent and sampled policies")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", flags.LogLevel, "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", flags.MetricsFile, "Write solver metrics in the prometheus text format to this file")
	cmd.PersistentFlags().StringVar(&plotFile, "plot-file", flags.PlotFile, "Write an html convergence chart to this file")
	cmd.PersistentFlags().BoolVar(&debug, "debug", flags.Debug, "Save the traces of the last episodes")
}

func UpdateFlags() {
	flags.SavePath = savePath
	flags.Discount = discount
	flags.Tolerance = tolerance
	flags.PolicyIterations = policyIterations
	flags.EvalSweeps = evalSweeps
	flags.Validate = validate

	flags.NumRuns = numRuns
	flags.Episodes = episodes
	flags.Horizon = horizon
	flags.MaxConsecutiveErrors = maxConsecutiveErrors
	flags.MaxConsecutiveTimeouts = maxConsecutiveTimeouts
	flags.EpisodeTimeout = time.Duration(episodeTimeout) * time.Second

	flags.Seed = seed
	flags.LogLevel = logLevel
	flags.MetricsFile = metricsFile
	flags.PlotFile = plotFile
	flags.Debug = debug
}
