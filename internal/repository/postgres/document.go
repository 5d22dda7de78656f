package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pathways-hq/pathways/internal/domain/document"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/logger"
	"github.com/pathways-hq/pathways/internal/postgres"
	"github.com/pathways-hq/pathways/internal/types"
)

type documentRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewDocumentRepository(db *postgres.DB, logger *logger.Logger) document.Repository {
	return &documentRepository{db: db, logger: logger}
}

func (r *documentRepository) Create(ctx context.Context, d *document.Document) error {
	query := `
		INSERT INTO documents (
			id, candidate_id, document_type, file_name, content_type, size_bytes,
			storage_key, expires_at,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :candidate_id, :document_type, :file_name, :content_type, :size_bytes,
			:storage_key, :expires_at,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating document",
		"document_id", d.ID,
		"candidate_id", d.CandidateID,
		"document_type", d.DocumentType,
	)

	if _, err := r.db.NamedExecContext(ctx, query, d); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create document").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *documentRepository) Get(ctx context.Context, id string) (*document.Document, error) {
	var d document.Document
	rows, err := r.db.NamedQueryContext(ctx, "SELECT * FROM documents WHERE id = :id AND status != :deleted", map[string]interface{}{
		"id":      id,
		"deleted": types.StatusDeleted,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get document").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("document not found").
			WithHintf("Document %s was not found", id).
			Mark(ierr.ErrNotFound)
	}

	if err := rows.StructScan(&d); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan document").
			Mark(ierr.ErrDatabase)
	}
	return &d, nil
}

func (r *documentRepository) Update(ctx context.Context, d *document.Document) error {
	query := `
		UPDATE documents SET
			document_type = :document_type,
			file_name = :file_name,
			content_type = :content_type,
			size_bytes = :size_bytes,
			storage_key = :storage_key,
			expires_at = :expires_at,
			status = :status,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	if _, err := r.db.NamedExecContext(ctx, query, d); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update document").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *documentRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE documents SET
			status = :status,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	r.logger.Debugw("deleting document", "document_id", id)

	if _, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":         id,
		"status":     types.StatusDeleted,
		"updated_by": types.GetUserID(ctx),
		"updated_at": time.Now().UTC(),
	}); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete document").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *documentRepository) List(ctx context.Context, filter *types.DocumentFilter) ([]*document.Document, error) {
	where, params := r.buildFilter(filter)
	query := fmt.Sprintf(
		"SELECT * FROM documents WHERE %s ORDER BY %s %s",
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
			WithHint("Failed to list documents").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var documents []*document.Document
	for rows.Next() {
		var d document.Document
		if err := rows.StructScan(&d); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan document").
				Mark(ierr.ErrDatabase)
		}
		documents = append(documents, &d)
	}
	return documents, nil
}

func (r *documentRepository) Count(ctx context.Context, filter *types.DocumentFilter) (int, error) {
	where, params := r.buildFilter(filter)
	query := fmt.Sprintf("SELECT COUNT(*) FROM documents WHERE %s", where)

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count documents").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, ierr.WithError(err).
				WithHint("Failed to scan document count").
				Mark(ierr.ErrDatabase)
		}
	}
	return count, nil
}

func (r *documentRepository) buildFilter(filter *types.DocumentFilter) (string, map[string]interface{}) {
	clauses := []string{"status = :base_status"}
	params := map[string]interface{}{
		"base_status": filter.GetStatus(),
	}

	if filter.CandidateID != "" {
		clauses = append(clauses, "candidate_id = :candidate_id")
		params["candidate_id"] = filter.CandidateID
	}
	if len(filter.DocumentTypes) > 0 {
		placeholders := make([]string, len(filter.DocumentTypes))
		for i, t := range filter.DocumentTypes {
			key := fmt.Sprintf("document_type_%d", i)
			placeholders[i] = ":" + key
			params[key] = t
		}
		clauses = append(clauses, fmt.Sprintf("document_type IN (%s)", strings.Join(placeholders, ", ")))
	}
	if filter.ExpiringWithinDays != nil {
		clauses = append(clauses, "expires_at IS NOT NULL AND expires_at <= :expiry_cutoff")
		params["expiry_cutoff"] = time.Now().UTC().AddDate(0, 0, *filter.ExpiringWithinDays)
	}

	return strings.Join(clauses, " AND "), params
}

func (r *documentRepository) ListExpiring(ctx context.Context, cutoff time.Time) ([]*document.Document, error) {
	query := `
		SELECT * FROM documents
		WHERE status = :status
		AND expires_at IS NOT NULL
		AND expires_at <= :cutoff
		ORDER BY expires_at ASC`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"status": types.StatusPublished,
		"cutoff": cutoff,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list expiring documents").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var documents []*document.Document
	for rows.Next() {
		var d document.Document
		if err := rows.StructScan(&d); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan document").
				Mark(ierr.ErrDatabase)
		}
		documents = append(documents, &d)
	}
	return documents, nil
}
