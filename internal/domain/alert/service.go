package alert

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// dedupWindow suppresses storing a new alert when an unacknowledged alert of
// the same (patient, type) already exists within this window. The generator
// itself stays dedup-free; this is purely a persistence policy.
const dedupWindow = 24 * time.Hour

type Service struct {
	repo   Repository
	logger zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Record persists a freshly generated alert batch, suppressing duplicates
// per the dedup window. It returns the alerts that were actually stored.
func (s *Service) Record(ctx context.Context, alerts []Alert) ([]Alert, error) {
	var stored []Alert
	for i := range alerts {
		a := alerts[i]

		dup, err := s.repo.HasRecentUnacknowledged(ctx, a.PatientID, a.Type, a.CreatedAt.Add(-dedupWindow))
		if err != nil {
			return stored, err
		}
		if dup {
			s.logger.Debug().
				Str("patient_id", a.PatientID.String()).
				Str("type", string(a.Type)).
				Msg("suppressed duplicate alert")
			continue
		}

		if err := s.repo.Create(ctx, &a); err != nil {
			return stored, err
		}
		s.logger.Info().
			Str("patient_id", a.PatientID.String()).
			Str("type", string(a.Type)).
			Str("severity", string(a.Severity)).
			Msg("alert raised")
		stored = append(stored, a)
	}
	return stored, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Alert, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Alert, int, error) {
	return s.repo.List(ctx, filter, limit, offset)
}

// ListUnacknowledged returns a patient's open alerts, newest first.
func (s *Service) ListUnacknowledged(ctx context.Context, patientID uuid.UUID, limit int) ([]*Alert, error) {
	alerts, _, err := s.repo.List(ctx, ListFilter{PatientID: &patientID, UnacknowledgedOnly: true}, limit, 0)
	return alerts, err
}

// Acknowledge marks an alert as seen. Acknowledgment is one-way.
func (s *Service) Acknowledge(ctx context.Context, id uuid.UUID) (*Alert, error) {
	if err := s.repo.Acknowledge(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}
