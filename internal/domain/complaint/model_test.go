package complaint

import (
	"testing"
	"time"

	"github.com/pathways-hq/pathways/internal/types"
	"github.com/stretchr/testify/assert"
)

func complaintCreatedAt(created time.Time, slaDays int, status types.ComplaintStatus) *Complaint {
	c := &Complaint{
		ID:              "comp-1",
		Reference:       "CMP-TEST",
		Subject:         "Unpaid wages",
		SLADays:         slaDays,
		ComplaintStatus: status,
	}
	c.CreatedAt = created
	return c
}

func TestSLADeadlineUsesPerRecordDays(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := complaintCreatedAt(created, 3, types.ComplaintStatusOpen)
	assert.Equal(t, created.AddDate(0, 0, 3), c.SLADeadline())
}

func TestSLADeadlineFallsBackToDefault(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := complaintCreatedAt(created, 0, types.ComplaintStatusOpen)
	assert.Equal(t, created.Add(72*time.Hour), c.SLADeadline())
}

func TestIsOverdue(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	// Four days into a three-day SLA, still in progress
	c := complaintCreatedAt(created, 3, types.ComplaintStatusInProgress)
	assert.True(t, c.IsOverdue(created.AddDate(0, 0, 4)))

	// One day in, not yet breached
	assert.False(t, c.IsOverdue(created.AddDate(0, 0, 1)))

	// The deadline instant itself counts as overdue
	assert.True(t, c.IsOverdue(created.AddDate(0, 0, 3)))
}

func TestIsOverdueSettledComplaintsNeverOverdue(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	way := created.AddDate(0, 1, 0)

	resolved := complaintCreatedAt(created, 1, types.ComplaintStatusResolved)
	assert.False(t, resolved.IsOverdue(way))

	closed := complaintCreatedAt(created, 1, types.ComplaintStatusClosed)
	assert.False(t, closed.IsOverdue(way))
}
