package dto

import (
	"context"
	"time"

	"github.com/pathways-hq/pathways/internal/validator"
	"github.com/pathways-hq/pathways/internal/domain/refdata"
	"github.com/pathways-hq/pathways/internal/types"
)

// Campus

type CreateCampusRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	City     string `json:"city" validate:"required,max=100"`
	District string `json:"district" validate:"required,max=100"`
	Address  string `json:"address" validate:"omitempty,max=500"`
}

type UpdateCampusRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=255"`
	City     *string `json:"city" validate:"omitempty,max=100"`
	District *string `json:"district" validate:"omitempty,max=100"`
	Address  *string `json:"address" validate:"omitempty,max=500"`
}

type CampusResponse struct {
	*refdata.Campus
}

type ListCampusesResponse = types.ListResponse[*CampusResponse]

func (r *CreateCampusRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateCampusRequest) ToCampus(ctx context.Context) *refdata.Campus {
	return &refdata.Campus{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CAMPUS),
		Name:      r.Name,
		City:      r.City,
		District:  r.District,
		Address:   r.Address,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdateCampusRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Trade

type CreateTradeRequest struct {
	Name          string `json:"name" validate:"required,max=255"`
	Code          string `json:"code" validate:"required,max=20"`
	DurationWeeks int    `json:"duration_weeks" validate:"required,min=1,max=104"`
}

type UpdateTradeRequest struct {
	Name          *string `json:"name" validate:"omitempty,max=255"`
	Code          *string `json:"code" validate:"omitempty,max=20"`
	DurationWeeks *int    `json:"duration_weeks" validate:"omitempty,min=1,max=104"`
}

type TradeResponse struct {
	*refdata.Trade
}

type ListTradesResponse = types.ListResponse[*TradeResponse]

func (r *CreateTradeRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateTradeRequest) ToTrade(ctx context.Context) *refdata.Trade {
	return &refdata.Trade{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TRADE),
		Name:          r.Name,
		Code:          r.Code,
		DurationWeeks: r.DurationWeeks,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdateTradeRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Batch

type CreateBatchRequest struct {
	Name         string     `json:"name" validate:"required,max=255"`
	CampusID     string     `json:"campus_id" validate:"required"`
	TradeID      string     `json:"trade_id" validate:"required"`
	InstructorID *string    `json:"instructor_id"`
	Capacity     int        `json:"capacity" validate:"required,min=1,max=500"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
}

type UpdateBatchRequest struct {
	Name         *string            `json:"name" validate:"omitempty,max=255"`
	InstructorID *string            `json:"instructor_id"`
	Capacity     *int               `json:"capacity" validate:"omitempty,min=1,max=500"`
	StartDate    *time.Time         `json:"start_date"`
	EndDate      *time.Time         `json:"end_date"`
	BatchStatus  *types.BatchStatus `json:"batch_status"`
}

type BatchResponse struct {
	*refdata.Batch
	EnrolledCount int `json:"enrolled_count"`
}

type ListBatchesResponse = types.ListResponse[*BatchResponse]

func (r *CreateBatchRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateBatchRequest) ToBatch(ctx context.Context) *refdata.Batch {
	return &refdata.Batch{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_BATCH),
		Name:         r.Name,
		CampusID:     r.CampusID,
		TradeID:      r.TradeID,
		InstructorID: r.InstructorID,
		Capacity:     r.Capacity,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		BatchStatus:  types.BatchStatusPlanned,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdateBatchRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// OEP

type CreateOEPRequest struct {
	Name          string `json:"name" validate:"required,max=255"`
	LicenseNumber string `json:"license_number" validate:"required,max=50"`
	ContactPerson string `json:"contact_person" validate:"omitempty,max=255"`
	Phone         string `json:"phone" validate:"omitempty,max=20"`
	Email         string `json:"email" validate:"omitempty,email"`
}

type UpdateOEPRequest struct {
	Name          *string `json:"name" validate:"omitempty,max=255"`
	LicenseNumber *string `json:"license_number" validate:"omitempty,max=50"`
	ContactPerson *string `json:"contact_person" validate:"omitempty,max=255"`
	Phone         *string `json:"phone" validate:"omitempty,max=20"`
	Email         *string `json:"email" validate:"omitempty,email"`
}

type OEPResponse struct {
	*refdata.OEP
}

type ListOEPsResponse = types.ListResponse[*OEPResponse]

func (r *CreateOEPRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateOEPRequest) ToOEP(ctx context.Context) *refdata.OEP {
	return &refdata.OEP{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_OEP),
		Name:          r.Name,
		LicenseNumber: r.LicenseNumber,
		ContactPerson: r.ContactPerson,
		Phone:         r.Phone,
		Email:         r.Email,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdateOEPRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Instructor

type CreateInstructorRequest struct {
	Name     string  `json:"name" validate:"required,max=255"`
	CNIC     string  `json:"cnic" validate:"required,max=20"`
	Phone    string  `json:"phone" validate:"omitempty,max=20"`
	CampusID *string `json:"campus_id"`
	TradeID  *string `json:"trade_id"`
}

type UpdateInstructorRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=255"`
	Phone    *string `json:"phone" validate:"omitempty,max=20"`
	CampusID *string `json:"campus_id"`
	TradeID  *string `json:"trade_id"`
}

type InstructorResponse struct {
	*refdata.Instructor
}

type ListInstructorsResponse = types.ListResponse[*InstructorResponse]

func (r *CreateInstructorRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateInstructorRequest) ToInstructor(ctx context.Context) *refdata.Instructor {
	return &refdata.Instructor{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INSTRUCTOR),
		Name:      r.Name,
		CNIC:      r.CNIC,
		Phone:     r.Phone,
		CampusID:  r.CampusID,
		TradeID:   r.TradeID,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdateInstructorRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Employer

type CreateEmployerRequest struct {
	Name          string `json:"name" validate:"required,max=255"`
	Country       string `json:"country" validate:"required,max=100"`
	City          string `json:"city" validate:"omitempty,max=100"`
	ContactPerson string `json:"contact_person" validate:"omitempty,max=255"`
	Phone         string `json:"phone" validate:"omitempty,max=20"`
}

type UpdateEmployerRequest struct {
	Name          *string `json:"name" validate:"omitempty,max=255"`
	Country       *string `json:"country" validate:"omitempty,max=100"`
	City          *string `json:"city" validate:"omitempty,max=100"`
	ContactPerson *string `json:"contact_person" validate:"omitempty,max=255"`
	Phone         *string `json:"phone" validate:"omitempty,max=20"`
}

type EmployerResponse struct {
	*refdata.Employer
}

type ListEmployersResponse = types.ListResponse[*EmployerResponse]

func (r *CreateEmployerRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateEmployerRequest) ToEmployer(ctx context.Context) *refdata.Employer {
	return &refdata.Employer{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_EMPLOYER),
		Name:          r.Name,
		Country:       r.Country,
		City:          r.City,
		ContactPerson: r.ContactPerson,
		Phone:         r.Phone,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdateEmployerRequest) Validate() error {
	return validator.ValidateRequest(r)
}
