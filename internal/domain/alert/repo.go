package alert

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ListFilter narrows alert queries.
type ListFilter struct {
	PatientID          *uuid.UUID
	UnacknowledgedOnly bool
}

// Repository defines alert persistence. Listings return newest-first.
type Repository interface {
	Create(ctx context.Context, a *Alert) error
	GetByID(ctx context.Context, id uuid.UUID) (*Alert, error)
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Alert, int, error)
	// HasRecentUnacknowledged reports whether an unacknowledged alert of the
	// given type exists for the patient since the given instant.
	HasRecentUnacknowledged(ctx context.Context, patientID uuid.UUID, typ Type, since time.Time) (bool, error)
	// Acknowledge flips acknowledged to true. It is a no-op for alerts that
	// are already acknowledged.
	Acknowledge(ctx context.Context, id uuid.UUID) error
}
