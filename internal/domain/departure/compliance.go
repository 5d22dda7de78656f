package departure

import (
	"math"
	"time"

	"github.com/pathways-hq/pathways/internal/types"
)

// ComplianceResult is the outcome of evaluating a departure's
// checklist at a point in time.
type ComplianceResult struct {
	Status             types.ComplianceStatus `json:"status"`
	Percentage         int                    `json:"percentage"`
	DaysSinceDeparture int                    `json:"days_since_departure"`
	MetCount           int                    `json:"met_count"`
	TotalCount         int                    `json:"total_count"`
	FailingLabels      []string               `json:"failing_labels,omitempty"`
}

// EvaluateCompliance scores a departure's checklist as of the given
// time. The percentage is weight-proportional and rounded to the
// nearest integer, with the guarantee that 100 is reached only when
// every item is met. The status is categorical: compliant when all
// items are met, non_compliant when the monitoring window has elapsed
// with unmet items, partial when some items are met, pending
// otherwise.
func EvaluateCompliance(dep *Departure, items []*ChecklistItem, asOf time.Time) *ComplianceResult {
	days := int(asOf.Sub(dep.DepartureDate).Hours() / 24)

	result := &ComplianceResult{
		DaysSinceDeparture: days,
		TotalCount:         len(items),
	}

	totalWeight := 0
	metWeight := 0
	for _, item := range items {
		w := item.Weight
		if w <= 0 {
			w = 1
		}
		totalWeight += w
		if item.Met {
			metWeight += w
			result.MetCount++
		} else {
			result.FailingLabels = append(result.FailingLabels, item.Label)
		}
	}

	allMet := len(items) > 0 && result.MetCount == len(items)

	if totalWeight > 0 {
		result.Percentage = int(math.Round(float64(metWeight) * 100 / float64(totalWeight)))
	}
	// Rounding must never report full compliance with unmet items
	if !allMet && result.Percentage >= 100 {
		result.Percentage = 99
	}

	switch {
	case allMet:
		result.Status = types.ComplianceStatusCompliant
	case days >= types.ComplianceWindowDays:
		result.Status = types.ComplianceStatusNonCompliant
	case result.MetCount > 0:
		result.Status = types.ComplianceStatusPartial
	default:
		result.Status = types.ComplianceStatusPending
	}

	return result
}
