package service

import (
	"context"
	"time"

	"github.com/pathways-hq/pathways/internal/api/dto"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/types"
)

// ActivityService reads the persisted activity log and enforces its
// retention window.
type ActivityService interface {
	ListActivities(ctx context.Context, filter *types.ActivityFilter) (*dto.ListActivitiesResponse, error)
	Cleanup(ctx context.Context, olderThanDays int, dryRun bool) (*dto.ActivityCleanupResponse, error)
}

type activityService struct {
	ServiceParams
}

func NewActivityService(params ServiceParams) ActivityService {
	return &activityService{ServiceParams: params}
}

func (s *activityService) ListActivities(ctx context.Context, filter *types.ActivityFilter) (*dto.ListActivitiesResponse, error) {
	if filter == nil {
		filter = types.NewActivityFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	activities, err := s.ActivityRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.ActivityRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.ActivityResponse, len(activities))
	for i, a := range activities {
		items[i] = &dto.ActivityResponse{Activity: a}
	}

	resp := types.NewListResponse(items, total, filter.GetLimit(), filter.GetOffset())
	return &resp, nil
}

// Cleanup hard deletes activity rows older than the retention window.
func (s *activityService) Cleanup(ctx context.Context, olderThanDays int, dryRun bool) (*dto.ActivityCleanupResponse, error) {
	if olderThanDays <= 0 {
		return nil, ierr.NewError("retention window must be positive").
			WithHint("Provide a positive number of days").
			Mark(ierr.ErrValidation)
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -olderThanDays)

	if dryRun {
		filter := &types.ActivityFilter{QueryFilter: types.NewNoLimitQueryFilter()}
		activities, err := s.ActivityRepo.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		count := 0
		for _, a := range activities {
			if a.OccurredAt.Before(cutoff) {
				count++
			}
		}
		return &dto.ActivityCleanupResponse{Deleted: count, DryRun: true}, nil
	}

	deleted, err := s.ActivityRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("activity cleanup complete",
		"deleted", deleted,
		"older_than_days", olderThanDays,
	)

	return &dto.ActivityCleanupResponse{Deleted: deleted}, nil
}
