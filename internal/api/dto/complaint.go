package dto

import (
	"context"
	"time"

	"github.com/pathways-hq/pathways/internal/validator"
	"github.com/pathways-hq/pathways/internal/domain/complaint"
	"github.com/pathways-hq/pathways/internal/types"
)

type CreateComplaintRequest struct {
	CandidateID *string                 `json:"candidate_id"`
	Subject     string                  `json:"subject" validate:"required,max=255"`
	Description string                  `json:"description" validate:"required"`
	Category    string                  `json:"category" validate:"required,max=100"`
	Priority    types.ComplaintPriority `json:"priority" validate:"required"`
	// SLADays overrides the global default when positive
	SLADays int `json:"sla_days" validate:"omitempty,min=0,max=365"`
}

type UpdateComplaintRequest struct {
	Subject     *string                  `json:"subject" validate:"omitempty,max=255"`
	Description *string                  `json:"description"`
	Category    *string                  `json:"category" validate:"omitempty,max=100"`
	Priority    *types.ComplaintPriority `json:"priority"`
	SLADays     *int                     `json:"sla_days" validate:"omitempty,min=0,max=365"`
}

type AssignComplaintRequest struct {
	AssigneeID string `json:"assignee_id" validate:"required"`
}

type ResolveComplaintRequest struct {
	Resolution string `json:"resolution" validate:"required"`
	// Close marks the complaint closed instead of resolved
	Close bool `json:"close"`
}

type ComplaintResponse struct {
	*complaint.Complaint
	SLADeadline time.Time `json:"sla_deadline"`
	Overdue     bool      `json:"overdue"`
}

// ListComplaintsResponse represents the response for listing complaints
type ListComplaintsResponse = types.ListResponse[*ComplaintResponse]

// SLAScanResponse summarizes an SLA scan over unsettled complaints
type SLAScanResponse struct {
	Scanned           int      `json:"scanned"`
	Overdue           int      `json:"overdue"`
	OverdueReferences []string `json:"overdue_references,omitempty"`
}

func (r *CreateComplaintRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.Priority.Validate()
}

// ToComplaint builds the complaint with a fresh short reference. A
// zero SLADays leaves the complaint on the global default deadline.
func (r *CreateComplaintRequest) ToComplaint(ctx context.Context) *complaint.Complaint {
	c := &complaint.Complaint{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_COMPLAINT),
		Reference:       types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_COMPLAINT),
		CandidateID:     r.CandidateID,
		Subject:         r.Subject,
		Description:     r.Description,
		Category:        r.Category,
		Priority:        r.Priority,
		ComplaintStatus: types.ComplaintStatusOpen,
		SLADays:         r.SLADays,
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}
	return c
}

func (r *UpdateComplaintRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Priority != nil {
		return r.Priority.Validate()
	}
	return nil
}

func (r *AssignComplaintRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *ResolveComplaintRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// NewComplaintResponse builds the response with the derived SLA fields
func NewComplaintResponse(c *complaint.Complaint, now time.Time) *ComplaintResponse {
	return &ComplaintResponse{
		Complaint:   c,
		SLADeadline: c.SLADeadline(),
		Overdue:     c.IsOverdue(now),
	}
}
