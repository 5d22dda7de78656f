package candidate

import (
	"testing"

	"github.com/pathways-hq/pathways/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrerequisiteIssuesForRegistration(t *testing.T) {
	c := &Candidate{ID: "cand-1", CandidateStatus: types.CandidateStatusScreening}

	issues := c.PrerequisiteIssues(types.CandidateStatusRegistered)
	require.Len(t, issues, 2)
	fields := lo.Map(issues, func(i TransitionIssue, _ int) string { return i.Field })
	assert.Contains(t, fields, "campus_id")
	assert.Contains(t, fields, "trade_id")

	c.CampusID = lo.ToPtr("campus-1")
	c.TradeID = lo.ToPtr("trade-1")
	assert.Empty(t, c.PrerequisiteIssues(types.CandidateStatusRegistered))
}

func TestPrerequisiteIssuesForTraining(t *testing.T) {
	c := &Candidate{ID: "cand-1", CandidateStatus: types.CandidateStatusRegistered}

	issues := c.PrerequisiteIssues(types.CandidateStatusTraining)
	require.Len(t, issues, 1)
	assert.Equal(t, "batch_id", issues[0].Field)

	c.BatchID = lo.ToPtr("batch-1")
	assert.Empty(t, c.PrerequisiteIssues(types.CandidateStatusTraining))
}

func TestPrerequisiteIssuesForVisaProcessing(t *testing.T) {
	c := &Candidate{
		ID:              "cand-1",
		CandidateStatus: types.CandidateStatusTraining,
		OEPID:           lo.ToPtr("oep-1"),
	}

	issues := c.PrerequisiteIssues(types.CandidateStatusVisaProcessing)
	require.Len(t, issues, 1)
	assert.Equal(t, "passport_number", issues[0].Field)
}

func TestPrerequisiteIssuesForDeparture(t *testing.T) {
	c := &Candidate{ID: "cand-1", CandidateStatus: types.CandidateStatusVisaProcessing}

	issues := c.PrerequisiteIssues(types.CandidateStatusDeparted)
	require.Len(t, issues, 1)
	assert.Equal(t, "visa_number", issues[0].Field)

	c.VisaNumber = lo.ToPtr("V-1234")
	assert.Empty(t, c.PrerequisiteIssues(types.CandidateStatusDeparted))
}

func TestPrerequisiteIssuesSideStatesHaveNone(t *testing.T) {
	c := &Candidate{ID: "cand-1", CandidateStatus: types.CandidateStatusListed}
	assert.Empty(t, c.PrerequisiteIssues(types.CandidateStatusRejected))
	assert.Empty(t, c.PrerequisiteIssues(types.CandidateStatusReturned))
	assert.Empty(t, c.PrerequisiteIssues(types.CandidateStatusScreening))
}
