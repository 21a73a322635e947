package analysis

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path"

	"github.com/zeu5/policy-iteration/core"
	"github.com/zeu5/policy-iteration/logging"
)

type PrintDebugAnalyzer struct {
	// savePath is the path to save the trace
	savePath string
	// will save the trace to the file only after the episode number exceeds this threshold
	thresholdEpisode int
	logger           *slog.Logger
}

var _ core.Analyzer = &PrintDebugAnalyzer{}

// NewPrintDebugAnalyzer creates the traces directory under savePath. Traces
// that cannot be written later are reported on logger.
func NewPrintDebugAnalyzer(savePath string, threshold int, logger *slog.Logger) (*PrintDebugAnalyzer, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	tracesPath := path.Join(savePath, "traces")
	if err := os.MkdirAll(tracesPath, 0755); err != nil {
		return nil, fmt.Errorf("creating traces directory: %w", err)
	}
	return &PrintDebugAnalyzer{
		savePath:         tracesPath,
		thresholdEpisode: threshold,
		logger:           logger,
	}, nil
}

func (a *PrintDebugAnalyzer) Analyze(ctx *core.EpisodeContext, trace *core.Trace) {
	if ctx.Episode < a.thresholdEpisode {
		return
	}
	buf := new(bytes.Buffer)
	buf.WriteString(traceToString(trace))

	fileName := fmt.Sprintf("%d_trace_%d.txt", ctx.Run, ctx.Episode)
	if ctx.Experiment != "" {
		fileName = fmt.Sprintf("%d_%s_trace_%d.txt", ctx.Run, ctx.Experiment, ctx.Episode)
	}
	file := path.Join(a.savePath, fileName)
	if err := os.WriteFile(file, buf.Bytes(), 0644); err != nil {
		a.logger.Warn("saving trace failed", "file", file, "error", err)
	}
}

func traceToString(trace *core.Trace) string {
	out := ""
	for i := 0; i < trace.Len(); i++ {
		out += fmt.Sprintf("Step %d\n%s\n", i, stepToString(trace.Step(i)))
	}
	out += fmt.Sprintf("Return: %g\n", trace.Return())
	return out
}

func stepToString(step *core.Step) string {
	return fmt.Sprintf(
		"State: %s\nAction: %s\nReward: %g\nNext State: %s\n",
		stateToString(step.State),
		step.Action,
		step.Reward,
		stateToString(step.NextState),
	)
}

func stateToString(state core.State) string {
	if state == nil {
		return "none"
	}
	if s, ok := state.(fmt.Stringer); ok {
		return fmt.Sprintf("%d\n%s", state.ID(), s.String())
	}
	return fmt.Sprintf("%d", state.ID())
}

func (a *PrintDebugAnalyzer) DataSet() core.DataSet {
	return nil
}

func (a *PrintDebugAnalyzer) Reset() {
	// do nothing
}
