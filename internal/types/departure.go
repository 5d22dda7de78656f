package types

import (
	"time"

	ierr "github.com/pathways-hq/pathways/internal/errors"
)

// ComplianceStatus is the categorical compliance state of a departed
// candidate within the post-departure monitoring window.
type ComplianceStatus string

const (
	// ComplianceStatusPending means no checklist item is met yet and
	// the monitoring window has not elapsed.
	ComplianceStatusPending ComplianceStatus = "pending"
	// ComplianceStatusPartial means some but not all checklist items
	// are met.
	ComplianceStatusPartial ComplianceStatus = "partial"
	// ComplianceStatusCompliant means every checklist item is met.
	ComplianceStatusCompliant ComplianceStatus = "compliant"
	// ComplianceStatusNonCompliant means the monitoring window has
	// elapsed with unmet checklist items.
	ComplianceStatusNonCompliant ComplianceStatus = "non_compliant"
)

func (s ComplianceStatus) String() string {
	return string(s)
}

// ComplianceWindowDays is the post-departure monitoring window after
// which unmet checklist items make a departure non compliant.
const ComplianceWindowDays = 90

// Compliance checklist item codes
const (
	ComplianceItemIqama        = "iqama_obtained"
	ComplianceItemAbsher       = "absher_registered"
	ComplianceItemSalary       = "first_salary_confirmed"
	ComplianceItemNinetyDayRpt = "ninety_day_report"
)

// DepartureFilter filters departure queries
type DepartureFilter struct {
	*QueryFilter
	CandidateID        string             `json:"candidate_id,omitempty" form:"candidate_id"`
	EmployerID         string             `json:"employer_id,omitempty" form:"employer_id"`
	ComplianceStatuses []ComplianceStatus `json:"compliance_statuses,omitempty" form:"compliance_statuses"`
	DepartedAfter      *time.Time         `json:"departed_after,omitempty" form:"departed_after"`
	DepartedBefore     *time.Time         `json:"departed_before,omitempty" form:"departed_before"`
}

// NewDepartureFilter creates a filter with default pagination
func NewDepartureFilter() *DepartureFilter {
	return &DepartureFilter{QueryFilter: NewDefaultQueryFilter()}
}

// Validate validates the departure filter
func (f *DepartureFilter) Validate() error {
	if err := f.QueryFilter.Validate(); err != nil {
		return err
	}
	if f.DepartedAfter != nil && f.DepartedBefore != nil && f.DepartedAfter.After(*f.DepartedBefore) {
		return ierr.NewError("departed_after must be before departed_before").
			WithHint("Departure date range is inverted").
			Mark(ierr.ErrValidation)
	}
	return nil
}
