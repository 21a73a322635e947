package core

import "context"

// Environment is an episodic process that an agent's policy can be played against.
type Environment interface {
	Reset() (State, error)
	// Step applies action and returns the next state and the reward collected.
	Step(string, *StepContext) (State, float64, error)
}

type State interface {
	ID() int64
	Actions() []string
	Terminal() bool
}

type EpisodeContext struct {
	Context    context.Context
	Experiment string
	Episode    int
	Horizon    int
	Run        int

	Trace *Trace

	err     error
	timeout bool
	doneCh  chan struct{}
}

func NewEpisodeContext(ctx context.Context) *EpisodeContext {
	return &EpisodeContext{
		Context: ctx,
		Trace:   NewTrace(),
		doneCh:  make(chan struct{}),
	}
}

func (e *EpisodeContext) Error(err error) {
	e.err = err
	close(e.doneCh)
}

func (e *EpisodeContext) Timeout() {
	e.timeout = true
	close(e.doneCh)
}

func (e *EpisodeContext) Finish() {
	close(e.doneCh)
}

func (e *EpisodeContext) Err() error {
	return e.err
}

func (e *EpisodeContext) IsError() bool {
	return e.err != nil
}

func (e *EpisodeContext) IsTimeout() bool {
	return e.timeout
}

func (e *EpisodeContext) Done() <-chan struct{} {
	return e.doneCh
}

type StepContext struct {
	Step int
	*EpisodeContext
}
