package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/domain/remittance"
	"github.com/pathways-hq/pathways/internal/logger"
	"github.com/pathways-hq/pathways/internal/postgres"
	"github.com/pathways-hq/pathways/internal/types"
)

type remittanceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewRemittanceRepository(db *postgres.DB, logger *logger.Logger) remittance.Repository {
	return &remittanceRepository{db: db, logger: logger}
}

func (r *remittanceRepository) Create(ctx context.Context, rem *remittance.Remittance) error {
	query := `
		INSERT INTO remittances (
			id, candidate_id, amount, currency, sent_at, channel, proof_document_id,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :candidate_id, :amount, :currency, :sent_at, :channel, :proof_document_id,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating remittance",
		"remittance_id", rem.ID,
		"candidate_id", rem.CandidateID,
	)

	if _, err := r.db.NamedExecContext(ctx, query, rem); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create remittance").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *remittanceRepository) Get(ctx context.Context, id string) (*remittance.Remittance, error) {
	var rem remittance.Remittance
	rows, err := r.db.NamedQueryContext(ctx, "SELECT * FROM remittances WHERE id = :id AND status != :deleted", map[string]interface{}{
		"id":      id,
		"deleted": types.StatusDeleted,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get remittance").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("remittance not found").
			WithHintf("Remittance %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	if err := rows.StructScan(&rem); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan remittance").
			Mark(ierr.ErrDatabase)
	}
	return &rem, nil
}

func (r *remittanceRepository) Update(ctx context.Context, rem *remittance.Remittance) error {
	query := `
		UPDATE remittances SET
			amount = :amount,
			currency = :currency,
			sent_at = :sent_at,
			channel = :channel,
			proof_document_id = :proof_document_id,
			status = :status,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	if _, err := r.db.NamedExecContext(ctx, query, rem); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update remittance").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *remittanceRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE remittances SET
			status = :status,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	if _, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":         id,
		"status":     types.StatusDeleted,
		"updated_by": types.GetUserID(ctx),
		"updated_at": time.Now().UTC(),
	}); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete remittance").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *remittanceRepository) List(ctx context.Context, filter *types.RemittanceFilter) ([]*remittance.Remittance, error) {
	where, params := r.buildFilter(filter)
	query := fmt.Sprintf(
		"SELECT * FROM remittances WHERE %s ORDER BY %s %s",
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
			WithHint("Failed to list remittances").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var remittances []*remittance.Remittance
	for rows.Next() {
		var rem remittance.Remittance
		if err := rows.StructScan(&rem); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan remittance").
				Mark(ierr.ErrDatabase)
		}
		remittances = append(remittances, &rem)
	}
	return remittances, nil
}

func (r *remittanceRepository) Count(ctx context.Context, filter *types.RemittanceFilter) (int, error) {
	where, params := r.buildFilter(filter)
	query := fmt.Sprintf("SELECT COUNT(*) FROM remittances WHERE %s", where)

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count remittances").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, ierr.WithError(err).
				WithHint("Failed to scan remittance count").
				Mark(ierr.ErrDatabase)
		}
	}
	return count, nil
}

func (r *remittanceRepository) buildFilter(filter *types.RemittanceFilter) (string, map[string]interface{}) {
	clauses := []string{"status = :base_status"}
	params := map[string]interface{}{
		"base_status": filter.GetStatus(),
	}

	if filter.CandidateID != "" {
		clauses = append(clauses, "candidate_id = :candidate_id")
		params["candidate_id"] = filter.CandidateID
	}
	if filter.SentAfter != nil {
		clauses = append(clauses, "sent_at >= :sent_after")
		params["sent_after"] = *filter.SentAfter
	}
	if filter.SentBefore != nil {
		clauses = append(clauses, "sent_at <= :sent_before")
		params["sent_before"] = *filter.SentBefore
	}

	return strings.Join(clauses, " AND "), params
}

func (r *remittanceRepository) ListByCandidate(ctx context.Context, candidateID string) ([]*remittance.Remittance, error) {
	query := `
		SELECT * FROM remittances
		WHERE candidate_id = :candidate_id AND status = :status
		ORDER BY sent_at ASC`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"candidate_id": candidateID,
		"status":       types.StatusPublished,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list remittances for candidate").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var remittances []*remittance.Remittance
	for rows.Next() {
		var rem remittance.Remittance
		if err := rows.StructScan(&rem); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan remittance").
				Mark(ierr.ErrDatabase)
		}
		remittances = append(remittances, &rem)
	}
	return remittances, nil
}
