package core

import (
	"fmt"
	"math"
)

type stateAction struct {
	from   int64
	action string
}

type edge struct {
	from   int64
	action string
	to     int64
}

// ValidateSpecs checks the caller contract of Build. It reports negative
// probabilities, probabilities above 1, repeated (From, Action, To) triples
// and (From, Action) pairs whose probabilities do not sum to 1 within
// tolerance. The result is nil or an *AggregateError.
func ValidateSpecs(specs []TransitionSpec, tolerance float64) error {
	errs := make([]error, 0)
	sums := make(map[stateAction]float64)
	order := make([]stateAction, 0)
	seen := make(map[edge]bool)

	for _, spec := range specs {
		to := spec.To
		if spec.Probability < 0 || math.IsNaN(spec.Probability) {
			errs = append(errs, &ValidationError{
				From: spec.From, Action: spec.Action, To: &to,
				Reason: fmt.Sprintf("invalid probability %g", spec.Probability),
			})
		} else if spec.Probability > 1+tolerance {
			errs = append(errs, &ValidationError{
				From: spec.From, Action: spec.Action, To: &to,
				Reason: fmt.Sprintf("probability %g above 1", spec.Probability),
			})
		}
		if math.IsNaN(spec.Reward) || math.IsInf(spec.Reward, 0) {
			errs = append(errs, &ValidationError{
				From: spec.From, Action: spec.Action, To: &to,
				Reason: fmt.Sprintf("invalid reward %g", spec.Reward),
			})
		}

		e := edge{from: spec.From, action: spec.Action, to: spec.To}
		if seen[e] {
			errs = append(errs, &ValidationError{
				From: spec.From, Action: spec.Action, To: &to,
				Reason: "duplicate transition overwrites an earlier one",
			})
		}
		seen[e] = true

		key := stateAction{from: spec.From, action: spec.Action}
		if _, ok := sums[key]; !ok {
			order = append(order, key)
		}
		sums[key] += spec.Probability
	}

	for _, key := range order {
		if math.Abs(sums[key]-1) > tolerance {
			errs = append(errs, &ValidationError{
				From: key.from, Action: key.action,
				Reason: fmt.Sprintf("outcome probabilities sum to %g", sums[key]),
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
