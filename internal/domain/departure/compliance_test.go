package departure

import (
	"testing"
	"time"

	"github.com/pathways-hq/pathways/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func departureOn(departed time.Time) *Departure {
	return &Departure{
		ID:            "dep-1",
		CandidateID:   "cand-1",
		DepartureDate: departed,
	}
}

func checklistWithMet(met ...string) []*ChecklistItem {
	items := DefaultChecklistItems("dep-1")
	for _, item := range items {
		for _, code := range met {
			if item.Code == code {
				item.Met = true
			}
		}
	}
	return items
}

func TestEvaluateComplianceAllMetIsCompliant(t *testing.T) {
	now := time.Now().UTC()
	dep := departureOn(now.AddDate(0, 0, -95))
	items := checklistWithMet(
		types.ComplianceItemIqama,
		types.ComplianceItemAbsher,
		types.ComplianceItemSalary,
		types.ComplianceItemNinetyDayRpt,
	)

	result := EvaluateCompliance(dep, items, now)
	assert.Equal(t, types.ComplianceStatusCompliant, result.Status)
	assert.Equal(t, 100, result.Percentage)
	assert.Equal(t, 4, result.MetCount)
	assert.Empty(t, result.FailingLabels)
}

func TestEvaluateComplianceHalfMetAfterWindow(t *testing.T) {
	now := time.Now().UTC()
	dep := departureOn(now.AddDate(0, 0, -95))
	items := checklistWithMet(types.ComplianceItemIqama, types.ComplianceItemAbsher)

	result := EvaluateCompliance(dep, items, now)
	assert.Equal(t, types.ComplianceStatusNonCompliant, result.Status)
	assert.Equal(t, 50, result.Percentage)
	assert.Equal(t, 95, result.DaysSinceDeparture)
	assert.Len(t, result.FailingLabels, 2)
}

func TestEvaluateComplianceNothingMetWithinWindow(t *testing.T) {
	now := time.Now().UTC()
	dep := departureOn(now.AddDate(0, 0, -40))
	items := checklistWithMet()

	result := EvaluateCompliance(dep, items, now)
	assert.Equal(t, types.ComplianceStatusPending, result.Status)
	assert.Equal(t, 0, result.Percentage)
}

func TestEvaluateCompliancePartialWithinWindow(t *testing.T) {
	now := time.Now().UTC()
	dep := departureOn(now.AddDate(0, 0, -40))
	items := checklistWithMet(types.ComplianceItemIqama)

	result := EvaluateCompliance(dep, items, now)
	assert.Equal(t, types.ComplianceStatusPartial, result.Status)
	assert.Equal(t, 25, result.Percentage)
}

func TestEvaluateComplianceExactWindowBoundary(t *testing.T) {
	now := time.Now().UTC()
	dep := departureOn(now.AddDate(0, 0, -types.ComplianceWindowDays))
	items := checklistWithMet(types.ComplianceItemIqama)

	result := EvaluateCompliance(dep, items, now)
	assert.Equal(t, types.ComplianceStatusNonCompliant, result.Status)
}

func TestEvaluateComplianceRoundingNeverReportsFalseFull(t *testing.T) {
	now := time.Now().UTC()
	dep := departureOn(now.AddDate(0, 0, -10))

	// 199 of 200 weight met rounds to 100; the cap keeps it at 99
	items := []*ChecklistItem{
		{ID: "a", DepartureID: "dep-1", Code: "heavy", Label: "Heavy", Weight: 199, Met: true},
		{ID: "b", DepartureID: "dep-1", Code: "light", Label: "Light", Weight: 1},
	}

	result := EvaluateCompliance(dep, items, now)
	assert.Equal(t, 99, result.Percentage)
	assert.Equal(t, types.ComplianceStatusPartial, result.Status)
}

func TestEvaluateComplianceZeroWeightCountsAsOne(t *testing.T) {
	now := time.Now().UTC()
	dep := departureOn(now.AddDate(0, 0, -10))
	items := []*ChecklistItem{
		{ID: "a", DepartureID: "dep-1", Code: "x", Label: "X", Weight: 0, Met: true},
		{ID: "b", DepartureID: "dep-1", Code: "y", Label: "Y", Weight: 0},
	}

	result := EvaluateCompliance(dep, items, now)
	assert.Equal(t, 50, result.Percentage)
}

func TestEvaluateCompliancePercentageIsMonotonic(t *testing.T) {
	now := time.Now().UTC()
	dep := departureOn(now.AddDate(0, 0, -40))

	sets := map[string][]*ChecklistItem{
		"equal weights": DefaultChecklistItems("dep-1"),
		"uneven weights": {
			{ID: "a", DepartureID: "dep-1", Code: "a", Label: "A", Weight: 1},
			{ID: "b", DepartureID: "dep-1", Code: "b", Label: "B", Weight: 2},
			{ID: "c", DepartureID: "dep-1", Code: "c", Label: "C", Weight: 5},
			{ID: "d", DepartureID: "dep-1", Code: "d", Label: "D", Weight: 199},
		},
	}

	for name, items := range sets {
		t.Run(name, func(t *testing.T) {
			prev := EvaluateCompliance(dep, items, now).Percentage
			assert.Equal(t, 0, prev)

			// Marking items met one by one must never lower the score,
			// and 100 is reached only on the final item
			for i, item := range items {
				item.Met = true
				result := EvaluateCompliance(dep, items, now)
				assert.GreaterOrEqual(t, result.Percentage, prev,
					"percentage dropped after meeting item %s", item.Code)
				if i < len(items)-1 {
					assert.LessOrEqual(t, result.Percentage, 99)
				} else {
					assert.Equal(t, 100, result.Percentage)
				}
				prev = result.Percentage
			}
		})
	}
}

func TestDefaultChecklistItems(t *testing.T) {
	items := DefaultChecklistItems("dep-9")
	require.Len(t, items, 4)

	codes := map[string]bool{}
	for _, item := range items {
		assert.Equal(t, "dep-9", item.DepartureID)
		assert.Equal(t, 1, item.Weight)
		assert.False(t, item.Met)
		assert.NotEmpty(t, item.ID)
		codes[item.Code] = true
	}
	assert.True(t, codes[types.ComplianceItemSalary])
	assert.True(t, codes[types.ComplianceItemNinetyDayRpt])
}
