package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pathways-hq/pathways/internal/domain/refdata"
	ierr "github.com/pathways-hq/pathways/internal/errors"
	"github.com/pathways-hq/pathways/internal/logger"
	"github.com/pathways-hq/pathways/internal/postgres"
	"github.com/pathways-hq/pathways/internal/types"
)

// refTable factors the read and delete paths shared by all reference
// data tables. Inserts and updates stay per-entity since their column
// lists differ.
type refTable[T any] struct {
	db     *postgres.DB
	logger *logger.Logger
	table  string
	name   string
}

func (r *refTable[T]) get(ctx context.Context, id string) (*T, error) {
	var entity T
	query := fmt.Sprintf("SELECT * FROM %s WHERE id = :id AND status != :deleted", r.table)
	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"id":      id,
		"deleted": types.StatusDeleted,
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Failed to get %s", r.name).
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ierr.NewError(r.name + " not found").
			WithHintf("%s %s was not found", r.name, id).
			Mark(ierr.ErrNotFound)
	}

	if err := rows.StructScan(&entity); err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Failed to scan %s", r.name).
			Mark(ierr.ErrDatabase)
	}
	return &entity, nil
}

func (r *refTable[T]) list(ctx context.Context, filter *types.QueryFilter) ([]*T, error) {
	query := fmt.Sprintf(
		"SELECT * FROM %s WHERE status = :status ORDER BY %s %s",
		r.table, sanitizeSort(filter.GetSort()), sanitizeOrder(filter.GetOrder()),
	)
	params := map[string]interface{}{
		"status": filter.GetStatus(),
	}
	if !filter.IsUnlimited() {
		query += " LIMIT :limit OFFSET :offset"
		params["limit"] = filter.GetLimit()
		params["offset"] = filter.GetOffset()
	}

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHintf("Failed to list %s records", r.name).
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var entities []*T
	for rows.Next() {
		var entity T
		if err := rows.StructScan(&entity); err != nil {
			return nil, ierr.WithError(err).
				WithHintf("Failed to scan %s", r.name).
				Mark(ierr.ErrDatabase)
		}
		entities = append(entities, &entity)
	}
	return entities, nil
}

func (r *refTable[T]) count(ctx context.Context, filter *types.QueryFilter) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE status = :status", r.table)

	rows, err := r.db.NamedQueryContext(ctx, query, map[string]interface{}{
		"status": filter.GetStatus(),
	})
	if err != nil {
		return 0, ierr.WithError(err).
			WithHintf("Failed to count %s records", r.name).
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, ierr.WithError(err).
				WithHintf("Failed to scan %s count", r.name).
				Mark(ierr.ErrDatabase)
		}
	}
	return count, nil
}

func (r *refTable[T]) softDelete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET
			status = :status,
			updated_at = :updated_at,
			updated_by = :updated_by
		WHERE id = :id`, r.table)

	r.logger.Debugw("deleting "+r.name, "id", id)

	if _, err := r.db.NamedExecContext(ctx, query, map[string]interface{}{
		"id":         id,
		"status":     types.StatusDeleted,
		"updated_by": types.GetUserID(ctx),
		"updated_at": time.Now().UTC(),
	}); err != nil {
		return ierr.WithError(err).
			WithHintf("Failed to delete %s", r.name).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *refTable[T]) exec(ctx context.Context, query string, arg interface{}, action string) error {
	if _, err := r.db.NamedExecContext(ctx, query, arg); err != nil {
		if isUniqueViolation(err) {
			return ierr.WithError(err).
				WithHintf("A %s with these details already exists", r.name).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHintf("Failed to %s %s", action, r.name).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

// Campus

type campusRepository struct {
	refTable[refdata.Campus]
}

func NewCampusRepository(db *postgres.DB, logger *logger.Logger) refdata.CampusRepository {
	return &campusRepository{refTable[refdata.Campus]{db: db, logger: logger, table: "campuses", name: "campus"}}
}

func (r *campusRepository) Create(ctx context.Context, c *refdata.Campus) error {
	query := `
		INSERT INTO campuses (
			id, name, city, district, address,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :name, :city, :district, :address,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`
	return r.exec(ctx, query, c, "create")
}

func (r *campusRepository) Get(ctx context.Context, id string) (*refdata.Campus, error) {
	return r.get(ctx, id)
}

func (r *campusRepository) Update(ctx context.Context, c *refdata.Campus) error {
	query := `
		UPDATE campuses SET
			name = :name, city = :city, district = :district, address = :address,
			status = :status, updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id`
	return r.exec(ctx, query, c, "update")
}

func (r *campusRepository) Delete(ctx context.Context, id string) error {
	return r.softDelete(ctx, id)
}

func (r *campusRepository) List(ctx context.Context, filter *types.QueryFilter) ([]*refdata.Campus, error) {
	return r.list(ctx, filter)
}

func (r *campusRepository) Count(ctx context.Context, filter *types.QueryFilter) (int, error) {
	return r.count(ctx, filter)
}

// Trade

type tradeRepository struct {
	refTable[refdata.Trade]
}

func NewTradeRepository(db *postgres.DB, logger *logger.Logger) refdata.TradeRepository {
	return &tradeRepository{refTable[refdata.Trade]{db: db, logger: logger, table: "trades", name: "trade"}}
}

func (r *tradeRepository) Create(ctx context.Context, t *refdata.Trade) error {
	query := `
		INSERT INTO trades (
			id, name, code, duration_weeks,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :name, :code, :duration_weeks,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`
	return r.exec(ctx, query, t, "create")
}

func (r *tradeRepository) Get(ctx context.Context, id string) (*refdata.Trade, error) {
	return r.get(ctx, id)
}

func (r *tradeRepository) Update(ctx context.Context, t *refdata.Trade) error {
	query := `
		UPDATE trades SET
			name = :name, code = :code, duration_weeks = :duration_weeks,
			status = :status, updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id`
	return r.exec(ctx, query, t, "update")
}

func (r *tradeRepository) Delete(ctx context.Context, id string) error {
	return r.softDelete(ctx, id)
}

func (r *tradeRepository) List(ctx context.Context, filter *types.QueryFilter) ([]*refdata.Trade, error) {
	return r.list(ctx, filter)
}

func (r *tradeRepository) Count(ctx context.Context, filter *types.QueryFilter) (int, error) {
	return r.count(ctx, filter)
}

// Batch

type batchRepository struct {
	refTable[refdata.Batch]
}

func NewBatchRepository(db *postgres.DB, logger *logger.Logger) refdata.BatchRepository {
	return &batchRepository{refTable[refdata.Batch]{db: db, logger: logger, table: "batches", name: "batch"}}
}

func (r *batchRepository) Create(ctx context.Context, b *refdata.Batch) error {
	query := `
		INSERT INTO batches (
			id, name, campus_id, trade_id, instructor_id, capacity,
			start_date, end_date, batch_status,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :name, :campus_id, :trade_id, :instructor_id, :capacity,
			:start_date, :end_date, :batch_status,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`
	return r.exec(ctx, query, b, "create")
}

func (r *batchRepository) Get(ctx context.Context, id string) (*refdata.Batch, error) {
	return r.get(ctx, id)
}

func (r *batchRepository) Update(ctx context.Context, b *refdata.Batch) error {
	query := `
		UPDATE batches SET
			name = :name, campus_id = :campus_id, trade_id = :trade_id,
			instructor_id = :instructor_id, capacity = :capacity,
			start_date = :start_date, end_date = :end_date, batch_status = :batch_status,
			status = :status, updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id`
	return r.exec(ctx, query, b, "update")
}

func (r *batchRepository) Delete(ctx context.Context, id string) error {
	return r.softDelete(ctx, id)
}

func (r *batchRepository) List(ctx context.Context, filter *types.BatchFilter) ([]*refdata.Batch, error) {
	where, params := r.buildFilter(filter)
	query := fmt.Sprintf(
		"SELECT * FROM batches WHERE %s ORDER BY %s %s",
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
			WithHint("Failed to list batches").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var batches []*refdata.Batch
	for rows.Next() {
		var b refdata.Batch
		if err := rows.StructScan(&b); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan batch").
				Mark(ierr.ErrDatabase)
		}
		batches = append(batches, &b)
	}
	return batches, nil
}

func (r *batchRepository) Count(ctx context.Context, filter *types.BatchFilter) (int, error) {
	where, params := r.buildFilter(filter)
	query := fmt.Sprintf("SELECT COUNT(*) FROM batches WHERE %s", where)

	rows, err := r.db.NamedQueryContext(ctx, query, params)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count batches").
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

func (r *batchRepository) buildFilter(filter *types.BatchFilter) (string, map[string]interface{}) {
	clauses := []string{"status = :base_status"}
	params := map[string]interface{}{
		"base_status": filter.GetStatus(),
	}

	if filter.CampusID != "" {
		clauses = append(clauses, "campus_id = :campus_id")
		params["campus_id"] = filter.CampusID
	}
	if filter.TradeID != "" {
		clauses = append(clauses, "trade_id = :trade_id")
		params["trade_id"] = filter.TradeID
	}
	if filter.BatchStatus != "" {
		clauses = append(clauses, "batch_status = :batch_status")
		params["batch_status"] = filter.BatchStatus
	}

	return strings.Join(clauses, " AND "), params
}

// OEP

type oepRepository struct {
	refTable[refdata.OEP]
}

func NewOEPRepository(db *postgres.DB, logger *logger.Logger) refdata.OEPRepository {
	return &oepRepository{refTable[refdata.OEP]{db: db, logger: logger, table: "oeps", name: "OEP"}}
}

func (r *oepRepository) Create(ctx context.Context, o *refdata.OEP) error {
	query := `
		INSERT INTO oeps (
			id, name, license_number, contact_person, phone, email,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :name, :license_number, :contact_person, :phone, :email,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`
	return r.exec(ctx, query, o, "create")
}

func (r *oepRepository) Get(ctx context.Context, id string) (*refdata.OEP, error) {
	return r.get(ctx, id)
}

func (r *oepRepository) Update(ctx context.Context, o *refdata.OEP) error {
	query := `
		UPDATE oeps SET
			name = :name, license_number = :license_number,
			contact_person = :contact_person, phone = :phone, email = :email,
			status = :status, updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id`
	return r.exec(ctx, query, o, "update")
}

func (r *oepRepository) Delete(ctx context.Context, id string) error {
	return r.softDelete(ctx, id)
}

func (r *oepRepository) List(ctx context.Context, filter *types.QueryFilter) ([]*refdata.OEP, error) {
	return r.list(ctx, filter)
}

func (r *oepRepository) Count(ctx context.Context, filter *types.QueryFilter) (int, error) {
	return r.count(ctx, filter)
}

// Instructor

type instructorRepository struct {
	refTable[refdata.Instructor]
}

func NewInstructorRepository(db *postgres.DB, logger *logger.Logger) refdata.InstructorRepository {
	return &instructorRepository{refTable[refdata.Instructor]{db: db, logger: logger, table: "instructors", name: "instructor"}}
}

func (r *instructorRepository) Create(ctx context.Context, i *refdata.Instructor) error {
	query := `
		INSERT INTO instructors (
			id, name, cnic, phone, campus_id, trade_id,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :name, :cnic, :phone, :campus_id, :trade_id,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`
	return r.exec(ctx, query, i, "create")
}

func (r *instructorRepository) Get(ctx context.Context, id string) (*refdata.Instructor, error) {
	return r.get(ctx, id)
}

func (r *instructorRepository) Update(ctx context.Context, i *refdata.Instructor) error {
	query := `
		UPDATE instructors SET
			name = :name, cnic = :cnic, phone = :phone,
			campus_id = :campus_id, trade_id = :trade_id,
			status = :status, updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id`
	return r.exec(ctx, query, i, "update")
}

func (r *instructorRepository) Delete(ctx context.Context, id string) error {
	return r.softDelete(ctx, id)
}

func (r *instructorRepository) List(ctx context.Context, filter *types.QueryFilter) ([]*refdata.Instructor, error) {
	return r.list(ctx, filter)
}

func (r *instructorRepository) Count(ctx context.Context, filter *types.QueryFilter) (int, error) {
	return r.count(ctx, filter)
}

// Employer

type employerRepository struct {
	refTable[refdata.Employer]
}

func NewEmployerRepository(db *postgres.DB, logger *logger.Logger) refdata.EmployerRepository {
	return &employerRepository{refTable[refdata.Employer]{db: db, logger: logger, table: "employers", name: "employer"}}
}

func (r *employerRepository) Create(ctx context.Context, e *refdata.Employer) error {
	query := `
		INSERT INTO employers (
			id, name, country, city, contact_person, phone,
			status, created_at, updated_at, created_by, updated_by
		) VALUES (
			:id, :name, :country, :city, :contact_person, :phone,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`
	return r.exec(ctx, query, e, "create")
}

func (r *employerRepository) Get(ctx context.Context, id string) (*refdata.Employer, error) {
	return r.get(ctx, id)
}

func (r *employerRepository) Update(ctx context.Context, e *refdata.Employer) error {
	query := `
		UPDATE employers SET
			name = :name, country = :country, city = :city,
			contact_person = :contact_person, phone = :phone,
			status = :status, updated_at = :updated_at, updated_by = :updated_by
		WHERE id = :id`
	return r.exec(ctx, query, e, "update")
}

func (r *employerRepository) Delete(ctx context.Context, id string) error {
	return r.softDelete(ctx, id)
}

func (r *employerRepository) List(ctx context.Context, filter *types.QueryFilter) ([]*refdata.Employer, error) {
	return r.list(ctx, filter)
}

func (r *employerRepository) Count(ctx context.Context, filter *types.QueryFilter) (int, error) {
	return r.count(ctx, filter)
}
