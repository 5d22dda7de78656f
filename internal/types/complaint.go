package types

import (
	"fmt"

	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/samber/lo"
)

// ComplaintStatus is the workflow state of a complaint
type ComplaintStatus string

const (
	ComplaintStatusOpen       ComplaintStatus = "open"
	ComplaintStatusAssigned   ComplaintStatus = "assigned"
	ComplaintStatusInProgress ComplaintStatus = "in_progress"
	ComplaintStatusResolved   ComplaintStatus = "resolved"
	ComplaintStatusClosed     ComplaintStatus = "closed"
)

func (s ComplaintStatus) String() string {
	return string(s)
}

// Validate checks that the status is a member of the closed enum
func (s ComplaintStatus) Validate() error {
	allowed := []ComplaintStatus{
		ComplaintStatusOpen,
		ComplaintStatusAssigned,
		ComplaintStatusInProgress,
		ComplaintStatusResolved,
		ComplaintStatusClosed,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid complaint status").
			WithHint(fmt.Sprintf("Complaint status must be one of %v", allowed)).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsSettled reports whether the complaint no longer counts against
// its SLA clock.
func (s ComplaintStatus) IsSettled() bool {
	return s == ComplaintStatusResolved || s == ComplaintStatusClosed
}

// ComplaintPriority is the triage priority of a complaint
type ComplaintPriority string

const (
	ComplaintPriorityLow      ComplaintPriority = "low"
	ComplaintPriorityMedium   ComplaintPriority = "medium"
	ComplaintPriorityHigh     ComplaintPriority = "high"
	ComplaintPriorityCritical ComplaintPriority = "critical"
)

func (p ComplaintPriority) String() string {
	return string(p)
}

// Validate checks that the priority is a member of the closed enum
func (p ComplaintPriority) Validate() error {
	allowed := []ComplaintPriority{
		ComplaintPriorityLow,
		ComplaintPriorityMedium,
		ComplaintPriorityHigh,
		ComplaintPriorityCritical,
	}
	if !lo.Contains(allowed, p) {
		return ierr.NewError("invalid complaint priority").
			WithHint(fmt.Sprintf("Complaint priority must be one of %v", allowed)).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// DefaultComplaintSLAHours applies when a complaint carries no
// explicit SLA of its own.
const DefaultComplaintSLAHours = 72

// ComplaintFilter filters complaint queries
type ComplaintFilter struct {
	*QueryFilter
	ComplaintStatuses []ComplaintStatus   `json:"complaint_statuses,omitempty" form:"complaint_statuses"`
	Priorities        []ComplaintPriority `json:"priorities,omitempty" form:"priorities"`
	CandidateID       string              `json:"candidate_id,omitempty" form:"candidate_id"`
	AssigneeID        string              `json:"assignee_id,omitempty" form:"assignee_id"`
	OverdueOnly       bool                `json:"overdue_only,omitempty" form:"overdue_only"`
}

// NewComplaintFilter creates a filter with default pagination
func NewComplaintFilter() *ComplaintFilter {
	return &ComplaintFilter{QueryFilter: NewDefaultQueryFilter()}
}

// Validate validates the complaint filter
func (f *ComplaintFilter) Validate() error {
	if err := f.QueryFilter.Validate(); err != nil {
		return err
	}
	for _, s := range f.ComplaintStatuses {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	for _, p := range f.Priorities {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}
