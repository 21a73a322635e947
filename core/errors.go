package core

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownState  = errors.New("unknown state")
	ErrUnknownAction = errors.New("unknown action")
	ErrNoAction      = errors.New("no action available")
)

// ValidationError describes one malformed transition spec, or a malformed
// (state, action) pair when To is nil.
type ValidationError struct {
	From   int64
	Action string
	To     *int64
	Reason string
}

func (e *ValidationError) Error() string {
	if e.To == nil {
		return fmt.Sprintf("state %d, action %q: %s", e.From, e.Action, e.Reason)
	}
	return fmt.Sprintf("state %d, action %q, to %d: %s", e.From, e.Action, *e.To, e.Reason)
}

// AggregateError collects every validation failure of a spec set.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// ValidationErrors returns the individual failures if err is an AggregateError.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
