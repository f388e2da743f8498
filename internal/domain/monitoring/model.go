// Package monitoring owns the longitudinal catheter record: risk
// checkpoints, traction events, the 12-hourly assessment run that produces
// them, and the per-patient dashboard view.
package monitoring

import (
	"time"

	"github.com/google/uuid"

	"github.com/cathshield/cathshield/internal/risk"
)

// EventType tags a checkpoint with the intervention that preceded it, if any.
type EventType string

const (
	EventDressingChange EventType = "dressing_change"
	EventCatheterChange EventType = "catheter_change"
)

// RiskCheckpoint maps to the risk_checkpoint table: one immutable assessment
// instant. Checkpoints accumulate append-only per patient and are served
// newest-first.
type RiskCheckpoint struct {
	ID                  uuid.UUID           `db:"id" json:"id"`
	PatientID           uuid.UUID           `db:"patient_id" json:"patient_id"`
	Timestamp           time.Time           `db:"timestamp" json:"timestamp"`
	EarlyRiskScore      float64             `db:"early_risk_score" json:"early_risk_score"`
	LateRiskScore       float64             `db:"late_risk_score" json:"late_risk_score"`
	IntegratedRiskScore float64             `db:"integrated_risk_score" json:"integrated_risk_score"`
	RiskBand            risk.RiskBand       `db:"risk_band" json:"risk_band"`
	EventType           *EventType          `db:"event_type" json:"event_type"`
	ClisaScore          *float64            `db:"clisa_score" json:"clisa_score,omitempty"`
	ClisaCategory       *risk.ClisaCategory `db:"clisa_category" json:"clisa_category,omitempty"`
	CreatedAt           time.Time           `db:"created_at" json:"created_at"`
}

// TractionEvent maps to the traction_event table: one detected pulling event
// reported by the external traction-sensing module. Immutable once recorded.
type TractionEvent struct {
	ID        uuid.UUID             `db:"id" json:"id"`
	PatientID uuid.UUID             `db:"patient_id" json:"patient_id"`
	Timestamp time.Time             `db:"timestamp" json:"timestamp"`
	Severity  risk.TractionSeverity `db:"severity" json:"severity"`
	CreatedAt time.Time             `db:"created_at" json:"created_at"`
}
