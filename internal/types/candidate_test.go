package types

import (
	"testing"

	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateStatusValidate(t *testing.T) {
	for _, s := range CandidatePipelineOrder {
		assert.NoError(t, s.Validate())
	}
	assert.NoError(t, CandidateStatusRejected.Validate())
	assert.NoError(t, CandidateStatusReturned.Validate())

	err := CandidateStatus("deported").Validate()
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestCandidateStatusTransitions(t *testing.T) {
	cases := []struct {
		from    CandidateStatus
		to      CandidateStatus
		allowed bool
	}{
		{CandidateStatusListed, CandidateStatusScreening, true},
		{CandidateStatusListed, CandidateStatusRejected, true},
		{CandidateStatusListed, CandidateStatusTraining, false},
		{CandidateStatusScreening, CandidateStatusRegistered, true},
		{CandidateStatusScreening, CandidateStatusReturned, false},
		{CandidateStatusRegistered, CandidateStatusTraining, true},
		{CandidateStatusTraining, CandidateStatusVisaProcessing, true},
		{CandidateStatusTraining, CandidateStatusDeparted, false},
		{CandidateStatusVisaProcessing, CandidateStatusDeparted, true},
		{CandidateStatusDeparted, CandidateStatusReturned, true},
		{CandidateStatusDeparted, CandidateStatusListed, false},
		{CandidateStatusRejected, CandidateStatusListed, true},
		{CandidateStatusReturned, CandidateStatusScreening, true},
		{CandidateStatusReturned, CandidateStatusDeparted, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestCandidateStatusTransitionTableIsClosed(t *testing.T) {
	// Every status reachable from the table must itself be a valid
	// member of the enum, and every status must have an entry.
	all := append([]CandidateStatus{}, CandidatePipelineOrder...)
	all = append(all, CandidateStatusRejected, CandidateStatusReturned)

	for _, from := range all {
		targets := from.AllowedTransitions()
		require.NotEmpty(t, targets, "status %s has no outgoing transitions", from)
		for _, to := range targets {
			assert.NoError(t, to.Validate())
		}
	}
}

func TestValidateTransitionSkipNamesSkippedStages(t *testing.T) {
	err := CandidateStatusTraining.ValidateTransition(CandidateStatusDeparted)
	require.Error(t, err)
	assert.Contains(t, err.Error(), string(CandidateStatusVisaProcessing))

	err = CandidateStatusListed.ValidateTransition(CandidateStatusTraining)
	require.Error(t, err)
	assert.Contains(t, err.Error(), string(CandidateStatusScreening))
	assert.Contains(t, err.Error(), string(CandidateStatusRegistered))
}

func TestValidateTransitionSameStatus(t *testing.T) {
	err := CandidateStatusTraining.ValidateTransition(CandidateStatusTraining)
	require.Error(t, err)
	assert.True(t, ierr.IsInvalidOperation(err))
}

func TestValidateTransitionInvalidTarget(t *testing.T) {
	err := CandidateStatusListed.ValidateTransition(CandidateStatus("bogus"))
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestSkippedStages(t *testing.T) {
	assert.Equal(t,
		[]CandidateStatus{CandidateStatusVisaProcessing},
		CandidateStatusTraining.SkippedStages(CandidateStatusDeparted))

	assert.Nil(t, CandidateStatusTraining.SkippedStages(CandidateStatusVisaProcessing))
	assert.Nil(t, CandidateStatusDeparted.SkippedStages(CandidateStatusListed))
	assert.Nil(t, CandidateStatusRejected.SkippedStages(CandidateStatusDeparted))
}
