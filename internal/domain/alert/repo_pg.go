package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
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

const alertColumns = `id, patient_id, type, message, severity, recommended_action, created_at, acknowledged`

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

func (r *repoPG) Create(ctx context.Context, a *Alert) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO alert (id, patient_id, type, message, severity, recommended_action, created_at, acknowledged)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.PatientID, a.Type, a.Message, a.Severity, a.RecommendedAction, a.CreatedAt, a.Acknowledged,
	)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Alert, error) {
	var a Alert
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT `+alertColumns+` FROM alert WHERE id = $1`, id).
		Scan(&a.ID, &a.PatientID, &a.Type, &a.Message, &a.Severity, &a.RecommendedAction, &a.CreatedAt, &a.Acknowledged)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repoPG) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Alert, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	n := 1

	if filter.PatientID != nil {
		where += fmt.Sprintf(` AND patient_id = $%d`, n)
		args = append(args, *filter.PatientID)
		n++
	}
	if filter.UnacknowledgedOnly {
		where += ` AND acknowledged = FALSE`
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM alert`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + alertColumns + ` FROM alert` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, n, n+1)
	args = append(args, limit, offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var alerts []*Alert
	for rows.Next() {
		var a Alert
		if err := rows.Scan(&a.ID, &a.PatientID, &a.Type, &a.Message, &a.Severity, &a.RecommendedAction, &a.CreatedAt, &a.Acknowledged); err != nil {
			return nil, 0, err
		}
		alerts = append(alerts, &a)
	}
	return alerts, total, rows.Err()
}

func (r *repoPG) HasRecentUnacknowledged(ctx context.Context, patientID uuid.UUID, typ Type, since time.Time) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM alert
			WHERE patient_id = $1 AND type = $2 AND acknowledged = FALSE AND created_at >= $3
		)`,
		patientID, typ, since).Scan(&exists)
	return exists, err
}

func (r *repoPG) Acknowledge(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE alert SET acknowledged = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
