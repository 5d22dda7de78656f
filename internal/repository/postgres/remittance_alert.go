package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/pathways-hq/pathways/internal/domain/remittance"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/logger"
	"github.com/pathways-hq/pathways/internal/postgres"
	"github.com/pathways-hq/pathways/internal/types"
)

type remittanceAlertRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewRemittanceAlertRepository(db *postgres.DB, logger *logger.Logger) remittance.AlertRepository {
	return &remittanceAlertRepository{db: db, logger: logger}
}

func (r *remittanceAlertRepository) Create(ctx context.Context, a *remittance.Alert) error {
	query := `
		INSERT INTO remittance_alerts (
			id, candidate_id, alert_type, alert_status, severity, message,
			remittance_id, resolved_at,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :candidate_id, :alert_type, :alert_status, :severity, :message,
			:remittance_id, :resolved_at,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating remittance alert",
		"alert_id", a.ID,
		"candidate_id", a.CandidateID,
		"alert_type", a.AlertType,
	)

	if _, err := r.db.NamedExecContext(ctx, query, a); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create remittance alert").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *remittanceAlertRepository) Get(ctx context.Context, id string) (*remittance.Alert, error) {
	var a remittance.Alert
	rows, err := r.db.NamedQueryContext(ctx, "SELECT * FROM remittance_alerts WHERE id = :id AND status != :deleted", map[string]interface{}{
		"id":      id,
		"deleted": types.StatusDeleted,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get remittance alert").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("remittance alert not found").
			WithHintf("Remittance alert %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	if err := rows.StructScan(&a); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan remittance alert").
			Mark(ierr.ErrDatabase)
	}
	return &a, nil
}

func (r *remittanceAlertRepository) Update(ctx context.Context, a *remittance.Alert) error {
	query := `
		UPDATE remittance_alerts SET
			alert_status = :alert_status,
			severity = :severity,
			message = :message,
			remittance_id = :remittance_id,
			resolved_at = :resolved_at,
			status = :status,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	if _, err := r.db.NamedExecContext(ctx, query, a); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update remittance alert").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *remittanceAlertRepository) List(ctx context.Context, filter *types.RemittanceAlertFilter) ([]*remittance.Alert, error) {
	where, params := r.buildFilter(filter)
	query := fmt.Sprintf(
		"SELECT * FROM remittance_alerts WHERE %s ORDER BY %s %s",
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
			WithHint("Failed to list remittance alerts").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var alerts []*remittance.Alert
	for rows.Next() {
		var a remittance.Alert
		if err := rows.StructScan(&a); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan remittance alert").
				Mark(ierr.ErrDatabase)
		}
		alerts = append(alerts, &a)
	}
	return alerts, nil
}

func (r *remittanceAlertRepository) Count(ctx context.Context, filter *types.RemittanceAlertFilter) (int, error) {
	where, params := r.buildFilter(filter)
	query := fmt.Sprintf("SELECT COUNT(*) FROM remittance_alerts WHERE %s", where)

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count remittance alerts").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, ierr.WithError(err).
				WithHint("Failed to scan alert count").
				Mark(ierr.ErrDatabase)
		}
	}
	return count, nil
}

func (r *remittanceAlertRepository) buildFilter(filter *types.RemittanceAlertFilter) (string, map[string]interface{}) {
	clauses := []string{"status = :base_status"}
	params := map[string]interface{}{
		"base_status": filter.GetStatus(),
	}

	if filter.CandidateID != "" {
		clauses = append(clauses, "candidate_id = :candidate_id")
		params["candidate_id"] = filter.CandidateID
	}
	if len(filter.AlertTypes) > 0 {
		placeholders := make([]string, len(filter.AlertTypes))
		for i, t := range filter.AlertTypes {
			key := fmt.Sprintf("alert_type_%d", i)
			placeholders[i] = ":" + key
			params[key] = t
		}
		clauses = append(clauses, fmt.Sprintf("alert_type IN (%s)", strings.Join(placeholders, ", ")))
	}
	if filter.AlertStatus != "" {
		clauses = append(clauses, "alert_status = :alert_status")
		params["alert_status"] = filter.AlertStatus
	}

	return strings.Join(clauses, " AND "), params
}

func (r *remittanceAlertRepository) GetOpenByCandidateAndType(ctx context.Context, candidateID string, alertType types.RemittanceAlertType) (*remittance.Alert, error) {
	var a remittance.Alert
	query := `
		SELECT * FROM remittance_alerts
		WHERE candidate_id = :candidate_id
		AND alert_type = :alert_type
		AND alert_status = :alert_status
		AND status = :status
		LIMIT 1`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"candidate_id": candidateID,
		"alert_type":   alertType,
		"alert_status": types.RemittanceAlertStatusOpen,
		"status":       types.StatusPublished,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get open alert").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("open alert not found").
			WithHintf("No open %s alert for candidate %s", alertType, candidateID).
			Mark(ierr.ErrNotFound)
	}

	if err := rows.StructScan(&a); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan remittance alert").
			Mark(ierr.ErrDatabase)
	}
	return &a, nil
}

func (r *remittanceAlertRepository) ListOpenByCandidate(ctx context.Context, candidateID string) ([]*remittance.Alert, error) {
	query := `
		SELECT * FROM remittance_alerts
		WHERE candidate_id = :candidate_id
		AND alert_status = :alert_status
		AND status = :status
		ORDER BY created_at ASC`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"candidate_id": candidateID,
		"alert_status": types.RemittanceAlertStatusOpen,
		"status":       types.StatusPublished,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list open alerts").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var alerts []*remittance.Alert
	for rows.Next() {
		var a remittance.Alert
		if err := rows.StructScan(&a); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan remittance alert").
				Mark(ierr.ErrDatabase)
		}
		alerts = append(alerts, &a)
	}
	return alerts, nil
}
