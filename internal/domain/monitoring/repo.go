package monitoring

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CheckpointRepository defines checkpoint persistence. Histories are always
// returned newest-first; the trend analyzer and alert rules rely on that
// ordering.
type CheckpointRepository interface {
	Create(ctx context.Context, cp *RiskCheckpoint) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*RiskCheckpoint, int, error)
}

// TractionRepository defines traction-event persistence.
type TractionRepository interface {
	Create(ctx context.Context, ev *TractionEvent) error
	ListByPatientSince(ctx context.Context, patientID uuid.UUID, since time.Time) ([]*TractionEvent, error)
}
