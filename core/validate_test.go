package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSpecsAcceptsNormalisedSet(t *testing.T) {
	err := ValidateSpecs([]TransitionSpec{
		{From: 0, To: 1, Action: "a", Probability: 1. / 3, Reward: 0},
		{From: 0, To: 2, Action: "a", Probability: 1. / 3, Reward: 0},
		{From: 0, To: 3, Action: "a", Probability: 1. / 3, Reward: 1},
		{From: 0, To: 1, Action: "b", Probability: 1, Reward: 0},
	}, 1e-9)

	assert.NoError(t, err)
}

func TestValidateSpecsReportsEveryProblem(t *testing.T) {
	err := ValidateSpecs([]TransitionSpec{
		{From: 0, To: 1, Action: "a", Probability: -0.5, Reward: 0},
		{From: 0, To: 2, Action: "a", Probability: 1.5, Reward: 0},
		{From: 1, To: 2, Action: "b", Probability: 0.5, Reward: 0},
		{From: 1, To: 2, Action: "b", Probability: 0.5, Reward: 0},
		{From: 2, To: 3, Action: "c", Probability: 0.4, Reward: 0},
	}, 1e-9)
	require.Error(t, err)

	errs := ValidationErrors(err)
	// negative, above one, duplicate, and the sum of (2, c)
	require.Len(t, errs, 4)

	var verr *ValidationError
	require.ErrorAs(t, errs[3], &verr)
	assert.Equal(t, int64(2), verr.From)
	assert.Equal(t, "c", verr.Action)
	assert.Nil(t, verr.To)
	assert.Contains(t, err.Error(), "4 validation errors")
}

func TestValidationErrorsOfOtherError(t *testing.T) {
	assert.Nil(t, ValidationErrors(ErrUnknownState))
}
