package core

// StopReason tells which condition ended an iterative loop.
type StopReason int

const (
	// StopTolerance means the largest value change fell below the tolerance.
	StopTolerance StopReason = iota
	// StopLimit means the iteration cap was reached first.
	StopLimit
)

func (r StopReason) String() string {
	switch r {
	case StopTolerance:
		return "tolerance"
	case StopLimit:
		return "limit"
	default:
		return "unknown"
	}
}

// EvalResult summarises one policy evaluation.
type EvalResult struct {
	Sweeps   int
	MaxDelta float64
	Reason   StopReason
}

func (e EvalResult) Converged() bool {
	return e.Reason == StopTolerance
}

// ImprovementStep is one greedy policy update followed by re-evaluation.
type ImprovementStep struct {
	Iteration int
	// Largest change of the value table compared to before the update
	MaxDelta float64
	// Number of states whose greedy action differs from the previous policy
	PolicyChanges int
	Eval          EvalResult
}

// ImproveResult summarises a run of policy iteration.
type ImproveResult struct {
	Initial    EvalResult
	Iterations int
	MaxDelta   float64
	Reason     StopReason
	History    []ImprovementStep
}

func (r ImproveResult) Converged() bool {
	return r.Reason == StopTolerance
}

// Deltas returns the value change of every improvement step in order.
func (r ImproveResult) Deltas() []float64 {
	out := make([]float64, len(r.History))
	for i, step := range r.History {
		out[i] = step.MaxDelta
	}
	return out
}

// Observer receives progress of an agent's evaluation and improvement loops.
type Observer interface {
	ObserveEvaluation(EvalResult)
	ObserveImprovement(ImprovementStep)
}

type noOpObserver struct{}

func (noOpObserver) ObserveEvaluation(EvalResult)       {}
func (noOpObserver) ObserveImprovement(ImprovementStep) {}
