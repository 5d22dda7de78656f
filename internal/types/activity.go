package types

import "time"

// ActivityEventTopic is the pubsub topic activity events are
// published on.
const ActivityEventTopic = "activity.events"

// Activity action verbs
const (
	ActivityActionCreated           = "created"
	ActivityActionUpdated           = "updated"
	ActivityActionDeleted           = "deleted"
	ActivityActionStatusChanged     = "status_changed"
	ActivityActionDeparted          = "departed"
	ActivityActionSalaryConfirmed   = "salary_confirmed"
	ActivityActionComplianceChecked = "compliance_checked"
	ActivityActionAssigned          = "assigned"
	ActivityActionResolved          = "resolved"
	ActivityActionAlertRaised       = "alert_raised"
	ActivityActionAlertResolved     = "alert_resolved"
	ActivityActionUploaded          = "uploaded"
	ActivityActionExported          = "exported"
)

// ActivityEvent is the wire form of a recorded user or system action.
// Events are published to the activity topic and persisted by the
// activity consumer.
type ActivityEvent struct {
	ID         string         `json:"id"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Action     string         `json:"action"`
	ActorID    string         `json:"actor_id"`
	Detail     map[string]any `json:"detail,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// NewActivityEvent builds an event with a generated ID and the
// current UTC timestamp.
func NewActivityEvent(entityType, entityID, action, actorID string, detail map[string]any) *ActivityEvent {
	return &ActivityEvent{
		ID:         GenerateUUIDWithPrefix(UUID_PREFIX_ACTIVITY),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		ActorID:    actorID,
		Detail:     detail,
		OccurredAt: time.Now().UTC(),
	}
}

// ActivityFilter filters activity queries
type ActivityFilter struct {
	*QueryFilter
	EntityType string `json:"entity_type,omitempty" form:"entity_type"`
	EntityID   string `json:"entity_id,omitempty" form:"entity_id"`
	ActorID    string `json:"actor_id,omitempty" form:"actor_id"`
	Action     string `json:"action,omitempty" form:"action"`
}

// NewActivityFilter creates a filter with default pagination
func NewActivityFilter() *ActivityFilter {
	return &ActivityFilter{QueryFilter: NewDefaultQueryFilter()}
}

// Validate validates the activity filter
func (f *ActivityFilter) Validate() error {
	return f.QueryFilter.Validate()
}
