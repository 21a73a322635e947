package common

import (
	"path"
	"time"

	"github.com/zeu5/policy-iteration/core"
	"github.com/zeu5/policy-iteration/util"
)

type Flags struct {
	SolverFlags
	SavePath string
	RunFlags
	Seed        int64
	LogLevel    string
	MetricsFile string
	PlotFile    string
	Debug       bool
}

type SolverFlags struct {
	Discount         float64
	Tolerance        float64
	PolicyIterations int
	EvalSweeps       int
	Validate         bool
}

type RunFlags struct {
	NumRuns                int
	Episodes               int
	Horizon                int
	MaxConsecutiveErrors   int
	MaxConsecutiveTimeouts int
	EpisodeTimeout         time.Duration
}

func DefaultFlags() *Flags {
	return &Flags{
		SolverFlags: SolverFlags{
			Discount:         1,
			Tolerance:        0.01,
			PolicyIterations: 100,
			EvalSweeps:       100,
			Validate:         true,
		},
		SavePath: "results",
		RunFlags: RunFlags{
			NumRuns:                1,
			Episodes:               1000,
			Horizon:                10,
			MaxConsecutiveErrors:   20,
			MaxConsecutiveTimeouts: 20,
			EpisodeTimeout:         10 * time.Second,
		},
		Seed:     1,
		LogLevel: "info",
		Debug:    false,
	}
}

func (f *Flags) RunConfig() *core.RunConfig {
	return &core.RunConfig{
		Episodes:                     f.Episodes,
		Horizon:                      f.Horizon,
		ThresholdConsecutiveErrors:   f.MaxConsecutiveErrors,
		ThresholdConsecutiveTimeouts: f.MaxConsecutiveTimeouts,
		EpisodeTimeout:               f.EpisodeTimeout,
	}
}

func (f *Flags) Record() error {
	return util.SaveJson(path.Join(f.SavePath, "config.json"), f)
}
