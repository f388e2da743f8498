package monitoring

import (
	"context"
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

const checkpointColumns = `id, patient_id, timestamp, early_risk_score, late_risk_score,
	integrated_risk_score, risk_band, event_type, clisa_score, clisa_category, created_at`

// -- Checkpoint Repository --

type checkpointRepoPG struct {
	pool *pgxpool.Pool
}

func NewCheckpointRepoPG(pool *pgxpool.Pool) CheckpointRepository {
	return &checkpointRepoPG{pool: pool}
}

func (r *checkpointRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *checkpointRepoPG) Create(ctx context.Context, cp *RiskCheckpoint) error {
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}

	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO risk_checkpoint (
			id, patient_id, timestamp, early_risk_score, late_risk_score,
			integrated_risk_score, risk_band, event_type, clisa_score, clisa_category
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		cp.ID, cp.PatientID, cp.Timestamp, cp.EarlyRiskScore, cp.LateRiskScore,
		cp.IntegratedRiskScore, cp.RiskBand, cp.EventType, cp.ClisaScore, cp.ClisaCategory,
	)
	return err
}

func (r *checkpointRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*RiskCheckpoint, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM risk_checkpoint WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+checkpointColumns+` FROM risk_checkpoint
		 WHERE patient_id = $1
		 ORDER BY timestamp DESC LIMIT $2 OFFSET $3`,
		patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var checkpoints []*RiskCheckpoint
	for rows.Next() {
		var cp RiskCheckpoint
		if err := rows.Scan(
			&cp.ID, &cp.PatientID, &cp.Timestamp, &cp.EarlyRiskScore, &cp.LateRiskScore,
			&cp.IntegratedRiskScore, &cp.RiskBand, &cp.EventType, &cp.ClisaScore, &cp.ClisaCategory, &cp.CreatedAt,
		); err != nil {
			return nil, 0, err
		}
		checkpoints = append(checkpoints, &cp)
	}
	return checkpoints, total, rows.Err()
}

// -- Traction Event Repository --

type tractionRepoPG struct {
	pool *pgxpool.Pool
}

func NewTractionRepoPG(pool *pgxpool.Pool) TractionRepository {
	return &tractionRepoPG{pool: pool}
}

func (r *tractionRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *tractionRepoPG) Create(ctx context.Context, ev *TractionEvent) error {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}

	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO traction_event (id, patient_id, timestamp, severity)
		VALUES ($1, $2, $3, $4)`,
		ev.ID, ev.PatientID, ev.Timestamp, ev.Severity,
	)
	return err
}

func (r *tractionRepoPG) ListByPatientSince(ctx context.Context, patientID uuid.UUID, since time.Time) ([]*TractionEvent, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, patient_id, timestamp, severity, created_at
		FROM traction_event
		WHERE patient_id = $1 AND timestamp >= $2
		ORDER BY timestamp DESC`,
		patientID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*TractionEvent
	for rows.Next() {
		var ev TractionEvent
		if err := rows.Scan(&ev.ID, &ev.PatientID, &ev.Timestamp, &ev.Severity, &ev.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, &ev)
	}
	return events, rows.Err()
}
