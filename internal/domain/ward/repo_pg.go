package ward

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cathshield/cathshield/internal/platform/db"
)

type queryable interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) Collect(ctx context.Context) (*Aggregates, error) {
	var agg Aggregates

	// A patient counts as a CLABSI case once any checkpoint lands in the red
	// band.
	if err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(DISTINCT patient_id)
		FROM risk_checkpoint
		WHERE risk_band = 'red'`).Scan(&agg.ClabsiCases); err != nil {
		return nil, err
	}

	// Each active line contributes at least one day regardless of how fresh
	// the insertion is.
	if err := r.conn(ctx).QueryRow(ctx, `
		SELECT COALESCE(SUM(GREATEST(1, FLOOR(EXTRACT(EPOCH FROM (NOW() - insertion_date)) / 86400)))::int, 0)
		FROM patient`).Scan(&agg.TotalCentralLineDays); err != nil {
		return nil, err
	}

	if err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*)
		FROM image_capture
		WHERE image_type = 'catheter_site' AND capture_status = 'success'`).Scan(&agg.DressingChangeCount); err != nil {
		return nil, err
	}

	if err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*)
		FROM risk_checkpoint
		WHERE event_type = 'catheter_change'`).Scan(&agg.CatheterChangeCount); err != nil {
		return nil, err
	}

	return &agg, nil
}
