package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pathways-hq/pathways/internal/logger"
)

// Queries slower than this get logged at warn level instead of debug.
const slowQueryThreshold = 200 * time.Millisecond

// TracedQuerier wraps a Querier so every statement is timed and logged,
// tagged with the transaction ID when run inside one.
type TracedQuerier struct {
	Querier
	logger *logger.Logger
	txID   string
}

func NewTracedQuerier(q Querier, log *logger.Logger, txID string) *TracedQuerier {
	return &TracedQuerier{Querier: q, logger: log, txID: txID}
}

func (tq *TracedQuerier) trace(query string, params interface{}, start time.Time, err error) {
	elapsed := time.Since(start)
	fields := []interface{}{
		"duration_ms", elapsed.Milliseconds(),
		"query", query,
		"params", fmt.Sprintf("%+v", params),
	}
	if tq.txID != "" {
		fields = append(fields, "tx_id", tq.txID)
	}

	switch {
	case err != nil:
		fields = append(fields, "error", err.Error())
		tq.logger.Errorw("database query failed", fields...)
	case elapsed >= slowQueryThreshold:
		tq.logger.Warnw("slow database query", fields...)
	default:
		tq.logger.Debugw("database query completed", fields...)
	}
}

func (tq *TracedQuerier) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := tq.Querier.ExecContext(ctx, query, args...)
	tq.trace(query, args, start, err)
	return result, err
}

func (tq *TracedQuerier) NamedExec(query string, arg interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := tq.Querier.NamedExec(query, arg)
	tq.trace(query, arg, start, err)
	return result, err
}

func (tq *TracedQuerier) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := tq.Querier.QueryContext(ctx, query, args...)
	tq.trace(query, args, start, err)
	return rows, err
}

func (tq *TracedQuerier) NamedQuery(query string, arg interface{}) (*sqlx.Rows, error) {
	start := time.Now()
	rows, err := tq.Querier.NamedQuery(query, arg)
	tq.trace(query, arg, start, err)
	return rows, err
}
