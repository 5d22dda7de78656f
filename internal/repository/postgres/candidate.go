package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pathways-hq/pathways/internal/domain/candidate"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/logger"
	"github.com/pathways-hq/pathways/internal/postgres"
	"github.com/pathways-hq/pathways/internal/types"
)

type candidateRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewCandidateRepository(db *postgres.DB, logger *logger.Logger) candidate.Repository {
	return &candidateRepository{db: db, logger: logger}
}

func (r *candidateRepository) Create(ctx context.Context, c *candidate.Candidate) error {
	query := `
		INSERT INTO candidates (
			id, full_name, cnic, passport_number, phone, email, gender, date_of_birth,
			district, candidate_status, campus_id, trade_id, batch_id, oep_id, employer_id,
			visa_number, remarks, status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :full_name, :cnic, :passport_number, :phone, :email, :gender, :date_of_birth,
			:district, :candidate_status, :campus_id, :trade_id, :batch_id, :oep_id, :employer_id,
			:visa_number, :remarks, :status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating candidate",
		"candidate_id", c.ID,
		"cnic", c.CNIC,
	)

	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A candidate with this CNIC already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create candidate").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *candidateRepository) Get(ctx context.Context, id string) (*candidate.Candidate, error) {
	return r.getBy(ctx, "id", id)
}

func (r *candidateRepository) GetByCNIC(ctx context.Context, cnic string) (*candidate.Candidate, error) {
	return r.getBy(ctx, "cnic", cnic)
}

func (r *candidateRepository) getBy(ctx context.Context, column, value string) (*candidate.Candidate, error) {
	var c candidate.Candidate
	query := fmt.Sprintf("SELECT * FROM candidates WHERE %s = :value AND status != :deleted", column)
	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"value":   value,
		"deleted": types.StatusDeleted,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to get candidate").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError("candidate not found").
			WithHintf("Candidate with %s %s was not found", column, value).
			Mark(ierr.ErrNotFound)
	}

	if err := rows.StructScan(&c); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to scan candidate").
			Mark(ierr.ErrDatabase)
	}

	return &c, nil
}

func (r *candidateRepository) Update(ctx context.Context, c *candidate.Candidate) error {
	query := `
		UPDATE candidates SET
			full_name = :full_name,
			cnic = :cnic,
			passport_number = :passport_number,
			phone = :phone,
			email = :email,
			gender = :gender,
			date_of_birth = :date_of_birth,
			district = :district,
			candidate_status = :candidate_status,
			campus_id = :campus_id,
			trade_id = :trade_id,
			batch_id = :batch_id,
			oep_id = :oep_id,
			employer_id = :employer_id,
			visa_number = :visa_number,
			remarks = :remarks,
			status = :status,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	r.logger.Debugw("updating candidate",
		"candidate_id", c.ID,
		"candidate_status", c.CandidateStatus,
	)

	if _, err := r.db.NamedExecContext(ctx, query, c); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update candidate").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *candidateRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE candidates SET
			status = :status,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`

	r.logger.Debugw("deleting candidate", "candidate_id", id)

	if _, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":         id,
		"status":     types.StatusDeleted,
		"updated_by": types.GetUserID(ctx),
		"updated_at": time.Now().UTC(),
	}); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete candidate").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *candidateRepository) List(ctx context.Context, filter *types.CandidateFilter) ([]*candidate.Candidate, error) {
	where, params := r.buildFilter(filter)
	query := fmt.Sprintf(
		"SELECT * FROM candidates WHERE %s ORDER BY %s %s",
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
			WithHint("Failed to list candidates").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var candidates []*candidate.Candidate
	for rows.Next() {
		var c candidate.Candidate
		if err := rows.StructScan(&c); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan candidate").
				Mark(ierr.ErrDatabase)
		}
		candidates = append(candidates, &c)
	}

	return candidates, nil
}

func (r *candidateRepository) Count(ctx context.Context, filter *types.CandidateFilter) (int, error) {
	where, params := r.buildFilter(filter)
	query := fmt.Sprintf("SELECT COUNT(*) FROM candidates WHERE %s", where)

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count candidates").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, ierr.WithError(err).
				WithHint("Failed to scan candidate count").
				Mark(ierr.ErrDatabase)
		}
	}
	return count, nil
}

func (r *candidateRepository) buildFilter(filter *types.CandidateFilter) (string, map[string]interface{}) {
	clauses := []string{"status = :base_status"}
	params := map[string]interface{}{
		"base_status": filter.GetStatus(),
	}

	if len(filter.CandidateStatuses) > 0 {
		placeholders := make([]string, len(filter.CandidateStatuses))
		for i, s := range filter.CandidateStatuses {
			key := fmt.Sprintf("cand_status_%d", i)
			placeholders[i] = ":" + key
			params[key] = s
		}
		clauses = append(clauses, fmt.Sprintf("candidate_status IN (%s)", strings.Join(placeholders, ", ")))
	}
	if filter.CampusID != "" {
		clauses = append(clauses, "campus_id = :campus_id")
		params["campus_id"] = filter.CampusID
	}
	if filter.TradeID != "" {
		clauses = append(clauses, "trade_id = :trade_id")
		params["trade_id"] = filter.TradeID
	}
	if filter.BatchID != "" {
		clauses = append(clauses, "batch_id = :batch_id")
		params["batch_id"] = filter.BatchID
	}
	if filter.OEPID != "" {
		clauses = append(clauses, "oep_id = :oep_id")
		params["oep_id"] = filter.OEPID
	}
	if filter.District != "" {
		clauses = append(clauses, "district = :district")
		params["district"] = filter.District
	}
	if filter.Search != "" {
		clauses = append(clauses, "(full_name ILIKE :search OR cnic ILIKE :search OR passport_number ILIKE :search)")
		params["search"] = "%" + filter.Search + "%"
	}

	return strings.Join(clauses, " AND "), params
}

func (r *candidateRepository) CountByStatus(ctx context.Context) (map[types.CandidateStatus]int, error) {
	query := `
		SELECT candidate_status, COUNT(*) AS cnt
		FROM candidates
		WHERE status = :status
		GROUP BY candidate_status`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"status": types.StatusPublished,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to count candidates by status").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	counts := make(map[types.CandidateStatus]int)
	for rows.Next() {
		var status types.CandidateStatus
		var cnt int
		if err := rows.Scan(&status, &cnt); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan status count").
				Mark(ierr.ErrDatabase)
		}
		counts[status] = cnt
	}
	return counts, nil
}

func (r *candidateRepository) CountByBatch(ctx context.Context, batchID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM candidates
		WHERE batch_id = :batch_id AND status = :status`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"batch_id": batchID,
		"status":   types.StatusPublished,
	})
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count candidates in batch").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, ierr.WithError(err).
				WithHint("Failed to scan batch count").
				Mark(ierr.ErrDatabase)
		}
	}
	return count, nil
}

func (r *candidateRepository) CreateTransition(ctx context.Context, t *candidate.StatusTransition) error {
	query := `
		INSERT INTO candidate_status_transitions (
			id, candidate_id, from_status, to_status, reason,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :candidate_id, :from_status, :to_status, :reason,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	if _, err := r.db.NamedExecContext(ctx, query, t); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to record status transition").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *candidateRepository) ListTransitions(ctx context.Context, candidateID string) ([]*candidate.StatusTransition, error) {
	query := `
		SELECT * FROM candidate_status_transitions
		WHERE candidate_id = :candidate_id
		ORDER BY created_at ASC`

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"candidate_id": candidateID,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list status transitions").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var transitions []*candidate.StatusTransition
	for rows.Next() {
		var t candidate.StatusTransition
		if err := rows.StructScan(&t); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan status transition").
				Mark(ierr.ErrDatabase)
		}
		transitions = append(transitions, &t)
	}
	return transitions, nil
}
