package departure

import (
	"time"

	"github.com/pathways-hq/pathways/internal/types"
)

// Departure represents a candidate's departure and the post-departure
// monitoring record attached to it.
type Departure struct {
	ID                 string                 `db:"id" json:"id"`
	CandidateID        string                 `db:"candidate_id" json:"candidate_id"`
	EmployerID         *string                `db:"employer_id" json:"employer_id,omitempty"`
	DepartureDate      time.Time              `db:"departure_date" json:"departure_date"`
	DestinationCity    string                 `db:"destination_city" json:"destination_city"`
	DestinationCountry string                 `db:"destination_country" json:"destination_country"`
	ComplianceStatus   types.ComplianceStatus `db:"compliance_status" json:"compliance_status"`
	CompliancePct      int                    `db:"compliance_pct" json:"compliance_pct"`
	FailingItems       string                 `db:"failing_items" json:"failing_items,omitempty"`
	LastCheckedAt      *time.Time             `db:"last_checked_at" json:"last_checked_at,omitempty"`
	types.BaseModel
}

// ChecklistItem is one post-departure compliance requirement
type ChecklistItem struct {
	ID          string     `db:"id" json:"id"`
	DepartureID string     `db:"departure_id" json:"departure_id"`
	Code        string     `db:"code" json:"code"`
	Label       string     `db:"label" json:"label"`
	Weight      int        `db:"weight" json:"weight"`
	Met         bool       `db:"met" json:"met"`
	MetAt       *time.Time `db:"met_at" json:"met_at,omitempty"`
	types.BaseModel
}

// DefaultChecklistItems returns the standard post-departure checklist
// for a new departure. All items carry equal weight.
func DefaultChecklistItems(departureID string) []*ChecklistItem {
	defs := []struct {
		code  string
		label string
	}{
		{types.ComplianceItemIqama, "Iqama obtained"},
		{types.ComplianceItemAbsher, "Absher registration completed"},
		{types.ComplianceItemSalary, "First salary confirmed"},
		{types.ComplianceItemNinetyDayRpt, "90-day status report submitted"},
	}
	items := make([]*ChecklistItem, 0, len(defs))
	for _, d := range defs {
		items = append(items, &ChecklistItem{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_DEPARTURE),
			DepartureID: departureID,
			Code:        d.code,
			Label:       d.label,
			Weight:      1,
		})
	}
	return items
}
