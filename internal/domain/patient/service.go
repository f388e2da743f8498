package patient

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	patients Repository
	consents ConsentRepository
	images   ImageCaptureRepository
}

func NewService(patients Repository, consents ConsentRepository, images ImageCaptureRepository) *Service {
	return &Service{patients: patients, consents: consents, images: images}
}

// -- Patients --

func (s *Service) Create(ctx context.Context, p *Patient) error {
	if p.BedNumber == "" {
		return fmt.Errorf("bed number is required")
	}
	if p.Initials == "" {
		return fmt.Errorf("initials are required")
	}
	if p.InsertionDate.IsZero() {
		return fmt.Errorf("insertion date is required")
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, p *Patient) error {
	if p.BedNumber == "" {
		return fmt.Errorf("bed number is required")
	}
	if p.Initials == "" {
		return fmt.Errorf("initials are required")
	}
	return s.patients.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.patients.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}

// -- Consents --

func (s *Service) RecordConsent(ctx context.Context, c *Consent) error {
	if _, err := s.patients.GetByID(ctx, c.PatientID); err != nil {
		return fmt.Errorf("patient %s: %w", c.PatientID, err)
	}
	switch c.LanguageUsed {
	case ConsentEnglish, ConsentKannada, ConsentBoth, ConsentOther:
	default:
		return fmt.Errorf("invalid consent language %q", c.LanguageUsed)
	}
	if c.ConsentTimestamp.IsZero() {
		c.ConsentTimestamp = time.Now()
	}
	return s.consents.Create(ctx, c)
}

func (s *Service) ListConsents(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Consent, int, error) {
	return s.consents.ListByPatient(ctx, patientID, limit, offset)
}

// -- Image captures --

func (s *Service) RecordImageCapture(ctx context.Context, img *ImageCapture) error {
	if _, err := s.patients.GetByID(ctx, img.PatientID); err != nil {
		return fmt.Errorf("patient %s: %w", img.PatientID, err)
	}
	switch img.ImageType {
	case ImageCatheterSite, ImageTractionModule:
	default:
		return fmt.Errorf("invalid image type %q", img.ImageType)
	}
	switch img.CaptureStatus {
	case CaptureSuccess, CaptureFailed:
	default:
		return fmt.Errorf("invalid capture status %q", img.CaptureStatus)
	}
	if img.Timestamp.IsZero() {
		img.Timestamp = time.Now()
	}
	return s.images.Create(ctx, img)
}

func (s *Service) ListImageCaptures(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*ImageCapture, int, error) {
	return s.images.ListByPatient(ctx, patientID, limit, offset)
}
