package refdata

import (
	"time"

	"github.com/pathways-hq/pathways/internal/types"
)

// Campus is a training campus location
type Campus struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	City     string `db:"city" json:"city"`
	District string `db:"district" json:"district"`
	Address  string `db:"address" json:"address"`
	types.BaseModel
}

// Trade is a vocational trade offered for training
type Trade struct {
	ID            string `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	Code          string `db:"code" json:"code"`
	DurationWeeks int    `db:"duration_weeks" json:"duration_weeks"`
	types.BaseModel
}

// Batch is a scheduled training batch at a campus for one trade
type Batch struct {
	ID           string            `db:"id" json:"id"`
	Name         string            `db:"name" json:"name"`
	CampusID     string            `db:"campus_id" json:"campus_id"`
	TradeID      string            `db:"trade_id" json:"trade_id"`
	InstructorID *string           `db:"instructor_id" json:"instructor_id,omitempty"`
	Capacity     int               `db:"capacity" json:"capacity"`
	StartDate    *time.Time        `db:"start_date" json:"start_date,omitempty"`
	EndDate      *time.Time        `db:"end_date" json:"end_date,omitempty"`
	BatchStatus  types.BatchStatus `db:"batch_status" json:"batch_status"`
	types.BaseModel
}

// OEP is a licensed overseas employment promoter
type OEP struct {
	ID            string `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	LicenseNumber string `db:"license_number" json:"license_number"`
	ContactPerson string `db:"contact_person" json:"contact_person"`
	Phone         string `db:"phone" json:"phone"`
	Email         string `db:"email" json:"email"`
	types.BaseModel
}

// Instructor teaches training batches at a campus
type Instructor struct {
	ID       string  `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	CNIC     string  `db:"cnic" json:"cnic"`
	Phone    string  `db:"phone" json:"phone"`
	CampusID *string `db:"campus_id" json:"campus_id,omitempty"`
	TradeID  *string `db:"trade_id" json:"trade_id,omitempty"`
	types.BaseModel
}

// Employer is an overseas employer candidates depart to
type Employer struct {
	ID            string `db:"id" json:"id"`
	Name          string `db:"name" json:"name"`
	Country       string `db:"country" json:"country"`
	City          string `db:"city" json:"city"`
	ContactPerson string `db:"contact_person" json:"contact_person"`
	Phone         string `db:"phone" json:"phone"`
	types.BaseModel
}
