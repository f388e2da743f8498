// Package alert generates and manages the clinical alerts raised from
// checkpoint assessments: traction/dislodgement warnings, dressing failure,
// high CLISA scores and high CLABSI risk with trend-dependent severity.
package alert

import (
	"time"

	"github.com/google/uuid"
)

// Type identifies the rule an alert fired from.
type Type string

const (
	TypeTraction        Type = "traction"
	TypeDressingFailure Type = "dressing_failure"
	TypeHighClabsi      Type = "high_clabsi"
	TypeHighClisa       Type = "high_clisa"
)

// Severity grades an alert for triage.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Alert maps to the alert table. Acknowledged flips false to true exactly
// once via acknowledgment and never reverts.
type Alert struct {
	ID                uuid.UUID `db:"id" json:"id"`
	PatientID         uuid.UUID `db:"patient_id" json:"patient_id"`
	Type              Type      `db:"type" json:"type"`
	Message           string    `db:"message" json:"message"`
	Severity          Severity  `db:"severity" json:"severity"`
	RecommendedAction string    `db:"recommended_action" json:"recommended_action"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	Acknowledged      bool      `db:"acknowledged" json:"acknowledged"`
}
