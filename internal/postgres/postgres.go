package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pathways-hq/pathways/internal/config"
	"github.com/pathways-hq/pathways/internal/logger"
)

// DB wraps sqlx.DB with context-scoped transaction management. Repositories
// never hold a *sqlx.Tx directly; they ask GetQuerier for whatever the
// current context is bound to.
type DB struct {
	*sqlx.DB
	logger *logger.Logger
}

// Querier is the subset of sqlx operations shared by *sqlx.DB and *sqlx.Tx,
// so repository code works identically inside and outside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExec(query string, arg interface{}) (sql.Result, error)
	NamedQuery(query string, arg interface{}) (*sqlx.Rows, error)
	PrepareNamed(query string) (*sqlx.NamedStmt, error)
	Preparex(query string) (*sqlx.Stmt, error)
}

// NewDB connects to postgres and applies the configured pool limits.
func NewDB(cfg *config.Configuration, log *logger.Logger) (*DB, error) {
	conn, err := sqlx.Connect("postgres", cfg.Postgres.GetDSN())
	if err != nil {
		return nil, err
	}

	conn.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	conn.SetConnMaxLifetime(time.Duration(cfg.Postgres.ConnMaxLifeMins) * time.Minute)

	return &DB{DB: conn, logger: log}, nil
}

func (db *DB) Close() {
	if err := db.DB.Close(); err != nil {
		db.logger.Errorw("failed to close database", "error", err)
	}
}

// GetQuerier returns the transaction bound to ctx when one exists,
// otherwise the base connection pool. Queries go through the tracer
// either way.
func (db *DB) GetQuerier(ctx context.Context) Querier {
	if tx, ok := txFromContext(ctx); ok {
		return NewTracedQuerier(tx.Tx, db.logger, tx.ID)
	}
	return NewTracedQuerier(db.DB, db.logger, "")
}

// NamedExecContext routes a named exec through the context's querier.
func (db *DB) NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error) {
	return db.GetQuerier(ctx).NamedExec(query, arg)
}

// NamedQueryContext routes a named query through the context's querier.
func (db *DB) NamedQueryContext(ctx context.Context, query string, arg interface{}) (*sqlx.Rows, error) {
	return db.GetQuerier(ctx).NamedQuery(query, arg)
}
