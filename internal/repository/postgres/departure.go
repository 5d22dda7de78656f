package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pathways-hq/pathways/internal/domain/departure"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/logger"
	"github.com/pathways-hq/pathways/internal/postgres"
	"github.com/pathways-hq/pathways/internal/types"
)

type departureRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewDepartureRepository(db *postgres.DB, logger *logger.Logger) departure.Repository {
	return &departureRepository{db: db, logger: logger}
}

func (r *departureRepository) Create(ctx context.Context, d *departure.Departure) error {
	query := `
		INSERT INTO departures (
			id, candidate_id, employer_id, departure_date, destination_city, destination_country,
			compliance_status, compliance_pct, failing_items, last_checked_at,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :candidate_id, :employer_id, :departure_date, :destination_city, :destination_country,
			:compliance_status, :compliance_pct, :failing_items, :last_checked_at,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating departure",
		"departure_id", d.ID,
		"candidate_id", d.CandidateID,
	)

	if _, err := r.db.NamedExecContext(ctx, query, d); err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A departure record already exists for this candidate").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create departure").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *departureRepository) Get(ctx context.Context, id string) (*departure.Departure, error) {
	return r.getBy(ctx, "id", id)
}

func (r *departureRepository) GetByCandidateID(ctx context.Context, candidateID string) (*departure.Departure, error) {
	return r.getBy(ctx, "candidate_id", candidateID)
}

func (r *departureRepository) getBy(ctx context.Context, column, value string) (*departure.Departure, error) {
	var d departure.Departure
	query := fmt.Sprintf("SELECT * FROM departures WHERE %s = :value AND status != :deleted", column)
	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"value":   value,
		"deleted": types.StatusDeleted,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get departure").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("departure not found").
			WithHintf("Departure with %s %s was not found", column, value).
			Mark(ierr.ErrNotFound)
	}

	if err := rows.StructScan(&d); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan departure").
			Mark(ierr.ErrDatabase)
	}
	return &d, nil
}

func (r *departureRepository) Update(ctx context.Context, d *departure.Departure) error {
	query := `
		UPDATE departures SET
			employer_id = :employer_id,
			departure_date = :departure_date,
			destination_city = :destination_city,
			destination_country = :destination_country,
			compliance_status = :compliance_status,
			compliance_pct = :compliance_pct,
			failing_items = :failing_items,
			last_checked_at = :last_checked_at,
			status = :status,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	r.logger.Debugw("updating departure",
		"departure_id", d.ID,
		"compliance_status", d.ComplianceStatus,
	)

	if _, err := r.db.NamedExecContext(ctx, query, d); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update departure").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *departureRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE departures SET
			status = :status,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	r.logger.Debugw("deleting departure", "departure_id", id)

	if _, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":         id,
		"status":     types.StatusDeleted,
		"updated_by": types.GetUserID(ctx),
		"updated_at": time.Now().UTC(),
	}); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete departure").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *departureRepository) List(ctx context.Context, filter *types.DepartureFilter) ([]*departure.Departure, error) {
	where, params := r.buildFilter(filter)
	query := fmt.Sprintf(
		"SELECT * FROM departures WHERE %s ORDER BY %s %s",
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
			WithHint("Failed to list departures").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var departures []*departure.Departure
	for rows.Next() {
		var d departure.Departure
		if err := rows.StructScan(&d); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan departure").
				Mark(ierr.ErrDatabase)
		}
		departures = append(departures, &d)
	}
	return departures, nil
}

func (r *departureRepository) Count(ctx context.Context, filter *types.DepartureFilter) (int, error) {
	where, params := r.buildFilter(filter)
	query := fmt.Sprintf("SELECT COUNT(*) FROM departures WHERE %s", where)

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count departures").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, ierr.WithError(err).
				WithHint("Failed to scan departure count").
				Mark(ierr.ErrDatabase)
		}
	}
	return count, nil
}

func (r *departureRepository) buildFilter(filter *types.DepartureFilter) (string, map[string]interface{}) {
	clauses := []string{"status = :base_status"}
	params := map[string]interface{}{
		"base_status": filter.GetStatus(),
	}

	if filter.CandidateID != "" {
		clauses = append(clauses, "candidate_id = :candidate_id")
		params["candidate_id"] = filter.CandidateID
	}
	if filter.EmployerID != "" {
		clauses = append(clauses, "employer_id = :employer_id")
		params["employer_id"] = filter.EmployerID
	}
	if len(filter.ComplianceStatuses) > 0 {
		placeholders := make([]string, len(filter.ComplianceStatuses))
		for i, s := range filter.ComplianceStatuses {
			key := fmt.Sprintf("compliance_status_%d", i)
			placeholders[i] = ":" + key
			params[key] = s
		}
		clauses = append(clauses, fmt.Sprintf("compliance_status IN (%s)", strings.Join(placeholders, ", ")))
	}
	if filter.DepartedAfter != nil {
		clauses = append(clauses, "departure_date >= :departed_after")
		params["departed_after"] = *filter.DepartedAfter
	}
	if filter.DepartedBefore != nil {
		clauses = append(clauses, "departure_date <= :departed_before")
		params["departed_before"] = *filter.DepartedBefore
	}

	return strings.Join(clauses, " AND "), params
}

func (r *departureRepository) CreateChecklistItems(ctx context.Context, items []*departure.ChecklistItem) error {
	query := `
		INSERT INTO departure_checklist_items (
			id, departure_id, code, label, weight, met, met_at,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :departure_id, :code, :label, :weight, :met, :met_at,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	for _, item := range items {
		if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to create checklist item").
				Mark(ierr.ErrDatabase)
		}
	}
	return nil
}

func (r *departureRepository) ListChecklistItems(ctx context.Context, departureID string) ([]*departure.ChecklistItem, error) {
	query := `
		SELECT * FROM departure_checklist_items
		WHERE departure_id = :departure_id AND status = :status
		ORDER BY created_at ASC`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"departure_id": departureID,
		"status":       types.StatusPublished,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list checklist items").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var items []*departure.ChecklistItem
	for rows.Next() {
		var item departure.ChecklistItem
		if err := rows.StructScan(&item); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan checklist item").
				Mark(ierr.ErrDatabase)
		}
		items = append(items, &item)
	}
	return items, nil
}

func (r *departureRepository) UpdateChecklistItem(ctx context.Context, item *departure.ChecklistItem) error {
	query := `
		UPDATE departure_checklist_items SET
			met = :met,
			met_at = :met_at,
			weight = :weight,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update checklist item").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
