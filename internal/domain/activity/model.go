package activity

import (
	"encoding/json"
	"time"

	"github.com/pathways-hq/pathways/internal/types"
)

// Activity is a persisted record of a user or system action, written
// by the activity consumer from published events.
type Activity struct {
	ID         string          `db:"id" json:"id"`
	EntityType string          `db:"entity_type" json:"entity_type"`
	EntityID   string          `db:"entity_id" json:"entity_id"`
	Action     string          `db:"action" json:"action"`
	ActorID    string          `db:"actor_id" json:"actor_id"`
	Detail     json.RawMessage `db:"detail" json:"detail,omitempty"`
	OccurredAt time.Time       `db:"occurred_at" json:"occurred_at"`
	types.BaseModel
}

// FromEvent converts a published activity event into its persisted
// form.
func FromEvent(e *types.ActivityEvent) (*Activity, error) {
	var detail json.RawMessage
	if e.Detail != nil {
		raw, err := json.Marshal(e.Detail)
		if err != nil {
			return nil, err
		}
		detail = raw
	}
	now := time.Now().UTC()
	return &Activity{
		ID:         e.ID,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Action:     e.Action,
		ActorID:    e.ActorID,
		Detail:     detail,
		OccurredAt: e.OccurredAt,
		BaseModel: types.BaseModel{
			Status:    types.StatusPublished,
			CreatedAt: now,
			UpdatedAt: now,
			CreatedBy: e.ActorID,
			UpdatedBy: e.ActorID,
		},
	}, nil
}
