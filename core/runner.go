package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
)

var (
	ErrTooManyTimeouts = errors.New("too many timeouts")
	ErrTooManyErrors   = errors.New("too many errors")
)

type experimentRunContext struct {
	run       int
	ctx       context.Context
	analyzers map[string]Analyzer

	writer io.Writer

	*RunConfig
}

type ExperimentResult struct {
	CompletedEpisodes int
	TotalEpisodes     int
	ErrorEpisodes     int
	TimeoutEpisodes   int
	TotalTimeSteps    int

	Error    error
	Datasets map[string]DataSet
}

func (r *ExperimentResult) IsError() bool {
	return r.Error != nil
}

// playEpisode runs one episode to a terminal state or the horizon.
func (e *Experiment) playEpisode(eCtx *EpisodeContext) {
	state, err := e.Environment.Reset()
	if err != nil {
		eCtx.Error(err)
		return
	}
	e.Policy.ResetEpisode(eCtx)
	for step := 0; step < eCtx.Horizon; step++ {
		select {
		case <-eCtx.Context.Done():
			if errors.Is(eCtx.Context.Err(), context.DeadlineExceeded) {
				eCtx.Timeout()
			} else {
				eCtx.Error(eCtx.Context.Err())
			}
			return
		default:
		}
		if state.Terminal() {
			break
		}

		sCtx := &StepContext{Step: step, EpisodeContext: eCtx}
		action, ok := e.Policy.PickAction(sCtx, state, state.Actions())
		if !ok {
			eCtx.Error(fmt.Errorf("%w: state %d", ErrNoAction, state.ID()))
			return
		}
		nextState, reward, err := e.Environment.Step(action, sCtx)
		if err != nil {
			eCtx.Error(err)
			return
		}
		eCtx.Trace.AddStep(&Step{
			State:     state,
			Action:    action,
			Reward:    reward,
			NextState: nextState,
		})
		state = nextState
	}
	if errors.Is(eCtx.Context.Err(), context.DeadlineExceeded) {
		eCtx.Timeout()
		return
	}
	eCtx.Finish()
}

func (e *Experiment) run(ctx *experimentRunContext) *ExperimentResult {
	result := &ExperimentResult{
		Datasets: make(map[string]DataSet),
	}
	e.Policy.Reset()

	consecutiveErrors := 0
	consecutiveTimeouts := 0
EpisodeLoop:
	for episode := 0; episode < ctx.Episodes; episode++ {
		select {
		case <-ctx.ctx.Done():
			result.Error = errors.New("context cancelled")
			break EpisodeLoop
		default:
		}

		fmt.Fprintf(
			ctx.writer,
			"Experiment: %s, Run %d, Episode %d/%d, Timesteps: %d, Error: %d, Timedout: %d\n",
			e.Name, ctx.run, episode, ctx.Episodes, result.TotalTimeSteps, result.ErrorEpisodes, result.TimeoutEpisodes,
		)
		episodeCtx, cancel := context.WithCancel(ctx.ctx)
		if ctx.EpisodeTimeout > 0 {
			episodeCtx, cancel = context.WithTimeout(ctx.ctx, ctx.EpisodeTimeout)
		}
		eCtx := NewEpisodeContext(episodeCtx)
		eCtx.Experiment = e.Name
		eCtx.Run = ctx.run
		eCtx.Episode = episode
		eCtx.Horizon = ctx.Horizon

		go e.playEpisode(eCtx)

		// the episode goroutine observes a cancelled or expired context
		// between steps and closes the episode
		<-eCtx.Done()
		cancel()
		errorred := eCtx.IsError()
		timedout := eCtx.IsTimeout()
		result.TotalEpisodes++

		if errorred {
			result.ErrorEpisodes++
			if consecutiveErrors++; consecutiveErrors >= ctx.ThresholdConsecutiveErrors {
				result.Error = fmt.Errorf("%w: %w", ErrTooManyErrors, eCtx.Err())
				break EpisodeLoop
			}
		} else {
			consecutiveErrors = 0
		}
		if timedout {
			result.TimeoutEpisodes++
			if consecutiveTimeouts++; consecutiveTimeouts >= ctx.ThresholdConsecutiveTimeouts {
				result.Error = ErrTooManyTimeouts
				break EpisodeLoop
			}
		} else {
			consecutiveTimeouts = 0
		}

		if !errorred && !timedout {
			result.TotalTimeSteps += eCtx.Trace.Len()
			result.CompletedEpisodes++
			for _, a := range ctx.analyzers {
				a.Analyze(eCtx, eCtx.Trace)
			}
		}
	}
	if result.Error != nil {
		fmt.Fprintf(ctx.writer, "Experiment: %s, Run %d, Error: %v\n", e.Name, ctx.run, result.Error)
	}

	for name, a := range ctx.analyzers {
		result.Datasets[name] = a.DataSet()
	}

	e.Policy.Reset()
	return result
}

// Run plays every experiment for the configured number of episodes, runs
// times, and hands the datasets of each analyzer to its comparator after
// every run. Progress lines are written to w.
func (c *Comparison) Run(ctx context.Context, runs int, rConfig *RunConfig, w io.Writer) map[string]*ExperimentResult {
	if w == nil {
		w = io.Discard
	}
	results := make(map[string]*ExperimentResult)
	for run := 0; run < runs; run++ {
		select {
		case <-ctx.Done():
			return results
		default:
		}

		results = make(map[string]*ExperimentResult)
		for _, e := range c.Experiments {
			select {
			case <-ctx.Done():
				return results
			default:
			}
			rCtx := &experimentRunContext{
				run:       run,
				ctx:       ctx,
				analyzers: make(map[string]Analyzer),
				writer:    w,
				RunConfig: rConfig,
			}

			for name, a := range c.Analyzers {
				a.Reset()
				rCtx.analyzers[name] = a
			}

			results[e.Name] = e.run(rCtx)
		}

		// Gather datasets in experiment order to run comparisons
		experimentNames := make([]string, 0, len(c.Experiments))
		for _, e := range c.Experiments {
			experimentNames = append(experimentNames, e.Name)
		}
		analyzerNames := make([]string, 0, len(c.Analyzers))
		for name := range c.Analyzers {
			analyzerNames = append(analyzerNames, name)
		}
		sort.Strings(analyzerNames)

		datasets := make(map[string][]DataSet)
		for _, name := range analyzerNames {
			datasets[name] = make([]DataSet, 0, len(experimentNames))
			for _, eName := range experimentNames {
				result := results[eName]
				if result.IsError() {
					datasets[name] = append(datasets[name], nil)
				} else {
					datasets[name] = append(datasets[name], result.Datasets[name])
				}
			}
		}
		for _, name := range analyzerNames {
			if cmp, ok := c.Comparators[name]; ok {
				cmp.Compare(run, experimentNames, datasets[name])
			}
		}
	}
	return results
}
