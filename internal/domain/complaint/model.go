package complaint

import (
	"time"

	"github.com/pathways-hq/pathways/internal/types"
)

// Complaint represents a grievance filed by or about a candidate
type Complaint struct {
	ID              string                  `db:"id" json:"id"`
	Reference       string                  `db:"reference" json:"reference"`
	CandidateID     *string                 `db:"candidate_id" json:"candidate_id,omitempty"`
	Subject         string                  `db:"subject" json:"subject"`
	Description     string                  `db:"description" json:"description"`
	Category        string                  `db:"category" json:"category"`
	Priority        types.ComplaintPriority `db:"priority" json:"priority"`
	ComplaintStatus types.ComplaintStatus   `db:"complaint_status" json:"complaint_status"`
	SLADays         int                     `db:"sla_days" json:"sla_days"`
	AssigneeID      *string                 `db:"assignee_id" json:"assignee_id,omitempty"`
	Resolution      *string                 `db:"resolution" json:"resolution,omitempty"`
	ResolvedAt      *time.Time              `db:"resolved_at" json:"resolved_at,omitempty"`
	types.BaseModel
}

// SLADeadline returns the moment the complaint becomes overdue. The
// per-record SLA in days is the source of truth; a complaint with no
// SLA of its own falls back to the global 72-hour default.
func (c *Complaint) SLADeadline() time.Time {
	if c.SLADays > 0 {
		return c.CreatedAt.AddDate(0, 0, c.SLADays)
	}
	return c.CreatedAt.Add(types.DefaultComplaintSLAHours * time.Hour)
}

// IsOverdue reports whether the complaint has breached its SLA as of
// the given time. Resolved and closed complaints are never overdue.
func (c *Complaint) IsOverdue(now time.Time) bool {
	if c.ComplaintStatus.IsSettled() {
		return false
	}
	return !now.Before(c.SLADeadline())
}
