package types

// Status is a type for the lifecycle status of a persisted row. It is
// orthogonal to the candidate pipeline status: a row is published until it is
// archived or soft-deleted.
// Any changes to this type should be reflected in the database schema by running migrations
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)
