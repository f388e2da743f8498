package patient

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines patient persistence.
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
}

// ConsentRepository defines consent persistence.
type ConsentRepository interface {
	Create(ctx context.Context, c *Consent) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Consent, int, error)
}

// ImageCaptureRepository defines image-capture metadata persistence.
type ImageCaptureRepository interface {
	Create(ctx context.Context, img *ImageCapture) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*ImageCapture, int, error)
}
