package types

import (
	"fmt"

	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/samber/lo"
)

// CandidateStatus is the lifecycle stage of a candidate in the
// migration pipeline.
type CandidateStatus string

const (
	CandidateStatusListed         CandidateStatus = "listed"
	CandidateStatusScreening      CandidateStatus = "screening"
	CandidateStatusRegistered     CandidateStatus = "registered"
	CandidateStatusTraining       CandidateStatus = "training"
	CandidateStatusVisaProcessing CandidateStatus = "visa_processing"
	CandidateStatusDeparted       CandidateStatus = "departed"
	CandidateStatusRejected       CandidateStatus = "rejected"
	CandidateStatusReturned       CandidateStatus = "returned"
)

// CandidatePipelineOrder lists the forward stages of the pipeline in
// order. Rejected and returned are terminal/side states and are not
// part of the forward progression.
var CandidatePipelineOrder = []CandidateStatus{
	CandidateStatusListed,
	CandidateStatusScreening,
	CandidateStatusRegistered,
	CandidateStatusTraining,
	CandidateStatusVisaProcessing,
	CandidateStatusDeparted,
}

// candidateStatusTransitions is the closed set of allowed status
// transitions. A transition absent from this table is invalid.
var candidateStatusTransitions = map[CandidateStatus][]CandidateStatus{
	CandidateStatusListed:         {CandidateStatusScreening, CandidateStatusRejected},
	CandidateStatusScreening:      {CandidateStatusRegistered, CandidateStatusRejected},
	CandidateStatusRegistered:     {CandidateStatusTraining, CandidateStatusRejected, CandidateStatusReturned},
	CandidateStatusTraining:       {CandidateStatusVisaProcessing, CandidateStatusRejected, CandidateStatusReturned},
	CandidateStatusVisaProcessing: {CandidateStatusDeparted, CandidateStatusRejected, CandidateStatusReturned},
	CandidateStatusDeparted:       {CandidateStatusReturned},
	CandidateStatusRejected:       {CandidateStatusListed},
	CandidateStatusReturned:       {CandidateStatusScreening},
}

func (s CandidateStatus) String() string {
	return string(s)
}

// Validate checks that the status is a member of the closed enum
func (s CandidateStatus) Validate() error {
	allowed := []CandidateStatus{
		CandidateStatusListed,
		CandidateStatusScreening,
		CandidateStatusRegistered,
		CandidateStatusTraining,
		CandidateStatusVisaProcessing,
		CandidateStatusDeparted,
		CandidateStatusRejected,
		CandidateStatusReturned,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid candidate status").
			WithHint(fmt.Sprintf("Candidate status must be one of %v", allowed)).
			WithReportableDetails(map[string]any{
				"status": s,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsTerminalForward reports whether the candidate has completed the
// forward pipeline.
func (s CandidateStatus) IsTerminalForward() bool {
	return s == CandidateStatusDeparted
}

// CanTransitionTo reports whether moving from s to target is allowed
// by the transition table.
func (s CandidateStatus) CanTransitionTo(target CandidateStatus) bool {
	return lo.Contains(candidateStatusTransitions[s], target)
}

// AllowedTransitions returns the set of statuses reachable from s in
// a single step.
func (s CandidateStatus) AllowedTransitions() []CandidateStatus {
	out := make([]CandidateStatus, len(candidateStatusTransitions[s]))
	copy(out, candidateStatusTransitions[s])
	return out
}

// pipelineIndex returns the position of s in the forward pipeline, or
// -1 for the rejected/returned side states.
func (s CandidateStatus) pipelineIndex() int {
	return lo.IndexOf(CandidatePipelineOrder, s)
}

// SkippedStages returns the forward stages strictly between s and
// target when target is further than one step ahead in the pipeline.
// It returns nil when the pair is not a forward skip.
func (s CandidateStatus) SkippedStages(target CandidateStatus) []CandidateStatus {
	from := s.pipelineIndex()
	to := target.pipelineIndex()
	if from < 0 || to < 0 || to <= from+1 {
		return nil
	}
	skipped := make([]CandidateStatus, 0, to-from-1)
	for i := from + 1; i < to; i++ {
		skipped = append(skipped, CandidatePipelineOrder[i])
	}
	return skipped
}

// ValidateTransition validates a candidate status transition against
// the transition table. Forward skips are reported with the stages
// that were skipped so callers can surface an actionable message.
func (s CandidateStatus) ValidateTransition(target CandidateStatus) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if s == target {
		return ierr.NewError("candidate is already in the requested status").
			WithHint(fmt.Sprintf("Candidate is already %s", s)).
			Mark(ierr.ErrInvalidOperation)
	}
	if s.CanTransitionTo(target) {
		return nil
	}
	if skipped := s.SkippedStages(target); len(skipped) > 0 {
		return ierr.NewError("candidate status transition skips pipeline stages").
			WithHint(fmt.Sprintf("Cannot move from %s to %s without passing through %v", s, target, skipped)).
			WithReportableDetails(map[string]any{
				"from":           s,
				"to":             target,
				"skipped_stages": skipped,
			}).
			Mark(ierr.ErrInvalidOperation)
	}
	return ierr.NewError("candidate status transition is not allowed").
		WithHint(fmt.Sprintf("Cannot move from %s to %s; allowed transitions are %v", s, target, s.AllowedTransitions())).
		WithReportableDetails(map[string]any{
			"from":    s,
			"to":      target,
			"allowed": s.AllowedTransitions(),
		}).
		Mark(ierr.ErrInvalidOperation)
}

// CandidateFilter filters candidate queries
type CandidateFilter struct {
	*QueryFilter
	CandidateStatuses []CandidateStatus `json:"candidate_statuses,omitempty" form:"candidate_statuses"`
	CampusID          string            `json:"campus_id,omitempty" form:"campus_id"`
	TradeID           string            `json:"trade_id,omitempty" form:"trade_id"`
	BatchID           string            `json:"batch_id,omitempty" form:"batch_id"`
	OEPID             string            `json:"oep_id,omitempty" form:"oep_id"`
	District          string            `json:"district,omitempty" form:"district"`
	Search            string            `json:"search,omitempty" form:"search"`
}

// NewCandidateFilter creates a filter with default pagination
func NewCandidateFilter() *CandidateFilter {
	return &CandidateFilter{QueryFilter: NewDefaultQueryFilter()}
}

// Validate validates the candidate filter
func (f *CandidateFilter) Validate() error {
	if err := f.QueryFilter.Validate(); err != nil {
		return err
	}
	for _, s := range f.CandidateStatuses {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}
