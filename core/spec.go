package core

// TransitionSpec is one stochastic outcome of taking Action in state From:
// with Probability the process moves to To and collects Reward.
//
// Specs sharing (From, Action) describe branching outcomes of one decision
// and are expected to sum to probability 1. Specs are not checked when a
// model is built; use ValidateSpecs for that.
type TransitionSpec struct {
	From        int64   `json:"from"`
	To          int64   `json:"to"`
	Action      string  `json:"action"`
	Probability float64 `json:"probability"`
	Reward      float64 `json:"reward"`
}
