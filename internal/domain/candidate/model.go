package candidate

import (
	"time"

	"github.com/pathways-hq/pathways/internal/types"
)

// Candidate represents a person moving through the migration pipeline
type Candidate struct {
	ID              string                `db:"id" json:"id"`
	FullName        string                `db:"full_name" json:"full_name"`
	CNIC            string                `db:"cnic" json:"cnic"`
	PassportNumber  *string               `db:"passport_number" json:"passport_number,omitempty"`
	Phone           string                `db:"phone" json:"phone"`
	Email           *string               `db:"email" json:"email,omitempty"`
	Gender          string                `db:"gender" json:"gender"`
	DateOfBirth     *time.Time            `db:"date_of_birth" json:"date_of_birth,omitempty"`
	District        string                `db:"district" json:"district"`
	CandidateStatus types.CandidateStatus `db:"candidate_status" json:"candidate_status"`
	CampusID        *string               `db:"campus_id" json:"campus_id,omitempty"`
	TradeID         *string               `db:"trade_id" json:"trade_id,omitempty"`
	BatchID         *string               `db:"batch_id" json:"batch_id,omitempty"`
	OEPID           *string               `db:"oep_id" json:"oep_id,omitempty"`
	EmployerID      *string               `db:"employer_id" json:"employer_id,omitempty"`
	VisaNumber      *string               `db:"visa_number" json:"visa_number,omitempty"`
	Remarks         *string               `db:"remarks" json:"remarks,omitempty"`
	types.BaseModel
}

// StatusTransition records one move through the pipeline for audit
type StatusTransition struct {
	ID          string                `db:"id" json:"id"`
	CandidateID string                `db:"candidate_id" json:"candidate_id"`
	FromStatus  types.CandidateStatus `db:"from_status" json:"from_status"`
	ToStatus    types.CandidateStatus `db:"to_status" json:"to_status"`
	Reason      *string               `db:"reason" json:"reason,omitempty"`
	types.BaseModel
}

// TransitionIssue names a prerequisite the candidate is missing for a
// requested status transition.
type TransitionIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// PrerequisiteIssues returns the unmet data prerequisites for moving
// the candidate into target. The transition table itself is enforced
// separately by the status type.
func (c *Candidate) PrerequisiteIssues(target types.CandidateStatus) []TransitionIssue {
	var issues []TransitionIssue
	switch target {
	case types.CandidateStatusRegistered:
		if c.CampusID == nil || *c.CampusID == "" {
			issues = append(issues, TransitionIssue{Field: "campus_id", Message: "candidate must be assigned to a campus before registration"})
		}
		if c.TradeID == nil || *c.TradeID == "" {
			issues = append(issues, TransitionIssue{Field: "trade_id", Message: "candidate must have a trade before registration"})
		}
	case types.CandidateStatusTraining:
		if c.BatchID == nil || *c.BatchID == "" {
			issues = append(issues, TransitionIssue{Field: "batch_id", Message: "candidate must be assigned to a training batch"})
		}
	case types.CandidateStatusVisaProcessing:
		if c.OEPID == nil || *c.OEPID == "" {
			issues = append(issues, TransitionIssue{Field: "oep_id", Message: "candidate must be assigned to an overseas employment promoter"})
		}
		if c.PassportNumber == nil || *c.PassportNumber == "" {
			issues = append(issues, TransitionIssue{Field: "passport_number", Message: "candidate must have a passport number for visa processing"})
		}
	case types.CandidateStatusDeparted:
		if c.VisaNumber == nil || *c.VisaNumber == "" {
			issues = append(issues, TransitionIssue{Field: "visa_number", Message: "candidate must have a visa number before departure"})
		}
	}
	return issues
}
