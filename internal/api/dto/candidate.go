package dto

import (
	"context"
	"time"

	"github.com/pathways-hq/pathways/internal/validator"
	"github.com/pathways-hq/pathways/internal/domain/candidate"
	"github.com/pathways-hq/pathways/internal/types"
)

type CreateCandidateRequest struct {
	FullName       string     `json:"full_name" validate:"required,max=255"`
	CNIC           string     `json:"cnic" validate:"required,max=20"`
	PassportNumber *string    `json:"passport_number" validate:"omitempty,max=20"`
	Phone          string     `json:"phone" validate:"required,max=20"`
	Email          *string    `json:"email" validate:"omitempty,email"`
	Gender         string     `json:"gender" validate:"required,oneof=male female other"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	District       string     `json:"district" validate:"required,max=100"`
	CampusID       *string    `json:"campus_id"`
	TradeID        *string    `json:"trade_id"`
	OEPID          *string    `json:"oep_id"`
	Remarks        *string    `json:"remarks"`
}

type UpdateCandidateRequest struct {
	FullName       *string    `json:"full_name" validate:"omitempty,max=255"`
	PassportNumber *string    `json:"passport_number" validate:"omitempty,max=20"`
	Phone          *string    `json:"phone" validate:"omitempty,max=20"`
	Email          *string    `json:"email" validate:"omitempty,email"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	District       *string    `json:"district" validate:"omitempty,max=100"`
	CampusID       *string    `json:"campus_id"`
	TradeID        *string    `json:"trade_id"`
	BatchID        *string    `json:"batch_id"`
	OEPID          *string    `json:"oep_id"`
	EmployerID     *string    `json:"employer_id"`
	VisaNumber     *string    `json:"visa_number" validate:"omitempty,max=50"`
	Remarks        *string    `json:"remarks"`
}

// TransitionCandidateRequest moves a candidate to a new pipeline status
type TransitionCandidateRequest struct {
	ToStatus types.CandidateStatus `json:"to_status" validate:"required"`
	Reason   *string               `json:"reason" validate:"omitempty,max=500"`

	// Departure details, required only when transitioning to departed
	DepartureDate      *time.Time `json:"departure_date"`
	DestinationCity    string     `json:"destination_city"`
	DestinationCountry string     `json:"destination_country"`
}

type CandidateResponse struct {
	*candidate.Candidate
	AllowedTransitions []types.CandidateStatus `json:"allowed_transitions,omitempty"`
}

// ListCandidatesResponse represents the response for listing candidates
type ListCandidatesResponse = types.ListResponse[*CandidateResponse]

type StatusTransitionResponse struct {
	*candidate.StatusTransition
}

// PipelineStageSummary is one stage's slice of the pipeline summary
type PipelineStageSummary struct {
	Status     types.CandidateStatus `json:"status"`
	Count      int                   `json:"count"`
	Bottleneck bool                  `json:"bottleneck"`
}

// PipelineSummaryResponse aggregates candidate counts per pipeline stage
type PipelineSummaryResponse struct {
	Total    int                    `json:"total"`
	Stages   []PipelineStageSummary `json:"stages"`
	Rejected int                    `json:"rejected"`
	Returned int                    `json:"returned"`
}

func (r *CreateCandidateRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateCandidateRequest) ToCandidate(ctx context.Context) *candidate.Candidate {
	return &candidate.Candidate{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CANDIDATE),
		FullName:        r.FullName,
		CNIC:            r.CNIC,
		PassportNumber:  r.PassportNumber,
		Phone:           r.Phone,
		Email:           r.Email,
		Gender:          r.Gender,
		DateOfBirth:     r.DateOfBirth,
		District:        r.District,
		CandidateStatus: types.CandidateStatusListed,
		CampusID:        r.CampusID,
		TradeID:         r.TradeID,
		OEPID:           r.OEPID,
		Remarks:         r.Remarks,
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdateCandidateRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *TransitionCandidateRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.ToStatus.Validate()
}
