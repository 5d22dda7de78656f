package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pathways-hq/pathways/internal/domain/activity"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/logger"
	"github.com/pathways-hq/pathways/internal/postgres"
	"github.com/pathways-hq/pathways/internal/types"
)

type activityRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewActivityRepository(db *postgres.DB, logger *logger.Logger) activity.Repository {
	return &activityRepository{db: db, logger: logger}
}

func (r *activityRepository) Create(ctx context.Context, a *activity.Activity) error {
	query := `
		INSERT INTO activities (
			id, entity_type, entity_id, action, actor_id, detail, occurred_at,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :entity_type, :entity_id, :action, :actor_id, :detail, :occurred_at,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.NamedExecContext(ctx, query, a); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to record activity").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *activityRepository) Get(ctx context.Context, id string) (*activity.Activity, error) {
	var a activity.Activity
	rows, err := r.db.NamedQueryContext(ctx, "SELECT * FROM activities WHERE id = :id", map[string]interface{}{
		"id": id,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get activity").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("activity not found").
			WithHintf("Activity %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	if err := rows.StructScan(&a); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan activity").
			Mark(ierr.ErrDatabase)
	}
	return &a, nil
}

func (r *activityRepository) List(ctx context.Context, filter *types.ActivityFilter) ([]*activity.Activity, error) {
	where, params := r.buildFilter(filter)
	query := fmt.Sprintf(
		"SELECT * FROM activities WHERE %s ORDER BY occurred_at %s",
		where, sanitizeOrder(filter.GetOrder()),
	)
	if !filter.IsUnlimited() {
		query += " LIMIT :limit OFFSET :offset"
		params["limit"] = filter.GetLimit()
		params["offset"] = filter.GetOffset()
	}

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list activities").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var activities []*activity.Activity
	for rows.Next() {
		var a activity.Activity
		if err := rows.StructScan(&a); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan activity").
				Mark(ierr.ErrDatabase)
		}
		activities = append(activities, &a)
	}
	return activities, nil
}

func (r *activityRepository) Count(ctx context.Context, filter *types.ActivityFilter) (int, error) {
	where, params := r.buildFilter(filter)
	query := fmt.Sprintf("SELECT COUNT(*) FROM activities WHERE %s", where)

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count activities").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, ierr.WithError(err).
				WithHint("Failed to scan activity count").
				Mark(ierr.ErrDatabase)
		}
	}
	return count, nil
}

func (r *activityRepository) buildFilter(filter *types.ActivityFilter) (string, map[string]interface{}) {
	clauses := []string{"1=1"}
	params := map[string]interface{}{}

	if filter.EntityType != "" {
		clauses = append(clauses, "entity_type = :entity_type")
		params["entity_type"] = filter.EntityType
	}
	if filter.EntityID != "" {
		clauses = append(clauses, "entity_id = :entity_id")
		params["entity_id"] = filter.EntityID
	}
	if filter.ActorID != "" {
		clauses = append(clauses, "actor_id = :actor_id")
		params["actor_id"] = filter.ActorID
	}
	if filter.Action != "" {
		clauses = append(clauses, "action = :action")
		params["action"] = filter.Action
	}

	return strings.Join(clauses, " AND "), params
}

func (r *activityRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	query := `DELETE FROM activities WHERE occurred_at < :cutoff`

	r.logger.Debugw("cleaning up activities", "cutoff", cutoff)

	result, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"cutoff": cutoff,
	})
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to delete old activities").
			Mark(ierr.ErrDatabase)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return int(affected), nil
}
