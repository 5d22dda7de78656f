package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pathways-hq/pathways/internal/domain/complaint"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/logger"
	"github.com/pathways-hq/pathways/internal/postgres"
	"github.com/pathways-hq/pathways/internal/types"
)

type complaintRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewComplaintRepository(db *postgres.DB, logger *logger.Logger) complaint.Repository {
	return &complaintRepository{db: db, logger: logger}
}

func (r *complaintRepository) Create(ctx context.Context, c *complaint.Complaint) error {
	query := `
		INSERT INTO complaints (
			id, reference, candidate_id, subject, description, category, priority,
			complaint_status, sla_days, assignee_id, resolution, resolved_at,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :reference, :candidate_id, :subject, :description, :category, :priority,
			:complaint_status, :sla_days, :assignee_id, :resolution, :resolved_at,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating complaint",
		"complaint_id", c.ID,
		"reference", c.Reference,
	)

	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A complaint with this reference already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create complaint").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *complaintRepository) Get(ctx context.Context, id string) (*complaint.Complaint, error) {
	return r.getBy(ctx, "id", id)
}

func (r *complaintRepository) GetByReference(ctx context.Context, reference string) (*complaint.Complaint, error) {
	return r.getBy(ctx, "reference", reference)
}

func (r *complaintRepository) getBy(ctx context.Context, column, value string) (*complaint.Complaint, error) {
	var c complaint.Complaint
	query := fmt.Sprintf("SELECT * FROM complaints WHERE %s = :value AND status != :deleted", column)
	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"value":   value,
		"deleted": types.StatusDeleted,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get complaint").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("complaint not found").
			WithHintf("Complaint with %s %s was not found", column, value).
			Mark(ierr.ErrNotFound)
	}

	if err := rows.StructScan(&c); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan complaint").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *complaintRepository) Update(ctx context.Context, c *complaint.Complaint) error {
	query := `
		UPDATE complaints SET
			subject = :subject,
			description = :description,
			category = :category,
			priority = :priority,
			complaint_status = :complaint_status,
			sla_days = :sla_days,
			assignee_id = :assignee_id,
			resolution = :resolution,
			resolved_at = :resolved_at,
			status = :status,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	r.logger.Debugw("updating complaint",
		"complaint_id", c.ID,
		"complaint_status", c.ComplaintStatus,
	)

	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update complaint").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *complaintRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE complaints SET
			status = :status,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	r.logger.Debugw("deleting complaint", "complaint_id", id)

	if _, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":         id,
		"status":     types.StatusDeleted,
		"updated_by": types.GetUserID(ctx),
		"updated_at": time.Now().UTC(),
	}); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete complaint").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *complaintRepository) List(ctx context.Context, filter *types.ComplaintFilter) ([]*complaint.Complaint, error) {
	where, params := r.buildFilter(filter)
	query := fmt.Sprintf(
		"SELECT * FROM complaints WHERE %s ORDER BY %s %s",
		where, sanitizeSort(filter.GetSort()), sanitizeOrder(filter.GetOrder()),
	)
	if !filter.IsUnlimited() {
		query += " LIMIT :limit OFFSET :offset"
		params["limit"] = filter.GetLimit()
		params["offset"] = filter.GetOffset()
	}

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list complaints").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var complaints []*complaint.Complaint
	for rows.Next() {
		var c complaint.Complaint
		if err := rows.StructScan(&c); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan complaint").
				Mark(ierr.ErrDatabase)
		}
		complaints = append(complaints, &c)
	}
	return complaints, nil
}

func (r *complaintRepository) Count(ctx context.Context, filter *types.ComplaintFilter) (int, error) {
	where, params := r.buildFilter(filter)
	query := fmt.Sprintf("SELECT COUNT(*) FROM complaints WHERE %s", where)

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count complaints").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, ierr.WithError(err).
				WithHint("Failed to scan complaint count").
				Mark(ierr.ErrDatabase)
		}
	}
	return count, nil
}

func (r *complaintRepository) buildFilter(filter *types.ComplaintFilter) (string, map[string]interface{}) {
	clauses := []string{"status = :base_status"}
	params := map[string]interface{}{
		"base_status": filter.GetStatus(),
	}

	if len(filter.ComplaintStatuses) > 0 {
		placeholders := make([]string, len(filter.ComplaintStatuses))
		for i, s := range filter.ComplaintStatuses {
			key := fmt.Sprintf("complaint_status_%d", i)
			placeholders[i] = ":" + key
			params[key] = s
		}
		clauses = append(clauses, fmt.Sprintf("complaint_status IN (%s)", strings.Join(placeholders, ", ")))
	}
	if len(filter.Priorities) > 0 {
		placeholders := make([]string, len(filter.Priorities))
		for i, p := range filter.Priorities {
			key := fmt.Sprintf("priority_%d", i)
			placeholders[i] = ":" + key
			params[key] = p
		}
		clauses = append(clauses, fmt.Sprintf("priority IN (%s)", strings.Join(placeholders, ", ")))
	}
	if filter.CandidateID != "" {
		clauses = append(clauses, "candidate_id = :candidate_id")
		params["candidate_id"] = filter.CandidateID
	}
	if filter.AssigneeID != "" {
		clauses = append(clauses, "assignee_id = :assignee_id")
		params["assignee_id"] = filter.AssigneeID
	}

	return strings.Join(clauses, " AND "), params
}

func (r *complaintRepository) ListUnsettled(ctx context.Context) ([]*complaint.Complaint, error) {
	query := `
		SELECT * FROM complaints
		WHERE status = :status
		AND complaint_status NOT IN (:resolved, :closed)
		ORDER BY created_at ASC`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"status":   types.StatusPublished,
		"resolved": types.ComplaintStatusResolved,
		"closed":   types.ComplaintStatusClosed,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list unsettled complaints").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var complaints []*complaint.Complaint
	for rows.Next() {
		var c complaint.Complaint
		if err := rows.StructScan(&c); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan complaint").
				Mark(ierr.ErrDatabase)
		}
		complaints = append(complaints, &c)
	}
	return complaints, nil
}

func (r *complaintRepository) CountOverdue(ctx context.Context, now time.Time) (int, error) {
	// The per-record SLA is the deadline source of truth; records with
	// sla_days = 0 fall back to the global 72-hour default.
	query := `
		SELECT COUNT(*) FROM complaints
		WHERE status = :status
		AND complaint_status NOT IN (:resolved, :closed)
		AND (
			(sla_days > 0 AND created_at + (sla_days * INTERVAL '1 day') <= :now)
			OR (sla_days = 0 AND created_at + INTERVAL '72 hours' <= :now)
		)`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"status":   types.StatusPublished,
		"resolved": types.ComplaintStatusResolved,
		"closed":   types.ComplaintStatusClosed,
		"now":      now,
	})
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count overdue complaints").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, ierr.WithError(err).
				WithHint("Failed to scan overdue count").
				Mark(ierr.ErrDatabase)
		}
	}
	return count, nil
}
