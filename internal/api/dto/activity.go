package dto

import (
	"github.com/pathways-hq/pathways/internal/domain/activity"
	"github.com/pathways-hq/pathways/internal/types"
)

type ActivityResponse struct {
	*activity.Activity
}

// ListActivitiesResponse represents the response for listing activities
type ListActivitiesResponse = types.ListResponse[*ActivityResponse]

// ActivityCleanupResponse reports the outcome of an activity retention run
type ActivityCleanupResponse struct {
	Deleted int  `json:"deleted"`
	DryRun  bool `json:"dry_run"`
}
