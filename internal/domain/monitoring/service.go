package monitoring

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/cathshield/cathshield/internal/domain/alert"
	"github.com/cathshield/cathshield/internal/domain/patient"
	"github.com/cathshield/cathshield/internal/risk"
)

// Assessments look back over this many checkpoints for trend analysis and
// dashboards, and this window of traction events for the late-risk inputs.
const (
	recentCheckpointLimit = 10
	tractionWindow        = 24 * time.Hour
)

// ErrPatientNotFound is returned when an assessment or dashboard request
// names an unknown patient.
var ErrPatientNotFound = errors.New("patient not found")

// PatientSource supplies the patient record an assessment needs. Implemented
// by the patient repository.
type PatientSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

// AlertSink records a generated alert batch and serves open alerts.
// Implemented by the alert service.
type AlertSink interface {
	Record(ctx context.Context, alerts []alert.Alert) ([]alert.Alert, error)
	ListUnacknowledged(ctx context.Context, patientID uuid.UUID, limit int) ([]*alert.Alert, error)
}

// TxRunner runs a function inside a database transaction carried on the
// context, so the checkpoint and its alerts commit atomically.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Service struct {
	patients    PatientSource
	checkpoints CheckpointRepository
	tractions   TractionRepository
	alerts      AlertSink
	tx          TxRunner
	logger      zerolog.Logger
}

func NewService(patients PatientSource, checkpoints CheckpointRepository, tractions TractionRepository, alerts AlertSink, tx TxRunner, logger zerolog.Logger) *Service {
	return &Service{
		patients:    patients,
		checkpoints: checkpoints,
		tractions:   tractions,
		alerts:      alerts,
		tx:          tx,
		logger:      logger,
	}
}

// AssessmentInput is one bedside assessment: the six dressing defect flags
// plus the intervention, if any, that prompted it.
type AssessmentInput struct {
	PatientID   uuid.UUID
	Observation risk.DressingObservation
	EventType   *EventType
}

// AssessmentResult is the full outcome of one assessment run.
type AssessmentResult struct {
	Checkpoint *RiskCheckpoint  `json:"checkpoint"`
	Clisa      risk.ClisaResult `json:"clisa"`
	EarlyRisk  risk.RiskOutput  `json:"early_risk"`
	LateRisk   risk.RiskOutput  `json:"late_risk"`
	Trend      risk.Trend       `json:"trend"`
	Alerts     []alert.Alert    `json:"alerts"`
}

// RunAssessment executes the full scoring pipeline for one checkpoint:
// CLISA, early risk, late risk (fed by the 24h traction window and the
// checkpoint-history trend), the integrated blend and band, then persists
// the checkpoint and any generated alerts in a single transaction.
func (s *Service) RunAssessment(ctx context.Context, in AssessmentInput) (*AssessmentResult, error) {
	p, err := s.patients.GetByID(ctx, in.PatientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("load patient: %w", err)
	}

	if in.EventType != nil {
		switch *in.EventType {
		case EventDressingChange, EventCatheterChange:
		default:
			return nil, fmt.Errorf("invalid event type %q", *in.EventType)
		}
	}

	now := time.Now()
	dwellHours := p.DwellHours(now)

	clisa := risk.ComputeClisaScore(in.Observation, p.Factors)

	early := risk.CalculateEarlyClabsiRisk(risk.EarlyRiskInput{
		ClisaScore:      clisa.Score,
		DressingFailure: in.Observation.DressingFailure,
		DwellTimeHours:  dwellHours,
		PatientFactors:  p.Factors,
	})

	tractionEvents, err := s.tractions.ListByPatientSince(ctx, in.PatientID, now.Add(-tractionWindow))
	if err != nil {
		return nil, fmt.Errorf("load traction events: %w", err)
	}
	redCount := 0
	severities := make([]risk.TractionSeverity, len(tractionEvents))
	for i, ev := range tractionEvents {
		severities[i] = ev.Severity
		if ev.Severity == risk.TractionRed {
			redCount++
		}
	}

	history, _, err := s.checkpoints.ListByPatient(ctx, in.PatientID, recentCheckpointLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("load checkpoint history: %w", err)
	}
	trend := risk.AnalyzeTrend(integratedScores(history))

	late := risk.CalculateLateClabsiRisk(risk.LateRiskInput{
		EarlyRiskScore:           early.Score,
		DwellTimeHours:           dwellHours,
		TractionEvents24h:        len(tractionEvents),
		TractionSeverityRedCount: redCount,
		PatientFactors:           p.Factors,
		RecentTrend:              trend,
	})

	integrated := risk.CalculateIntegratedRisk(early.Score, late.Score, dwellHours)

	clisaScore := clisa.Score
	clisaCategory := clisa.Category
	checkpoint := &RiskCheckpoint{
		PatientID:           in.PatientID,
		Timestamp:           now,
		EarlyRiskScore:      early.Score,
		LateRiskScore:       late.Score,
		IntegratedRiskScore: integrated,
		RiskBand:            risk.Band(integrated),
		EventType:           in.EventType,
		ClisaScore:          &clisaScore,
		ClisaCategory:       &clisaCategory,
	}

	// Alert rules see the new checkpoint as the newest entry in the history.
	states := make([]alert.CheckpointState, 0, len(history)+1)
	states = append(states, alert.CheckpointState{
		IntegratedRiskScore: checkpoint.IntegratedRiskScore,
		RiskBand:            checkpoint.RiskBand,
	})
	for _, cp := range history {
		states = append(states, alert.CheckpointState{
			IntegratedRiskScore: cp.IntegratedRiskScore,
			RiskBand:            cp.RiskBand,
		})
	}

	batch := alert.Generate(alert.TriggerInput{
		PatientID:            in.PatientID,
		RecentCheckpoints:    states,
		RecentTractionEvents: severities,
		DressingFailure:      in.Observation.DressingFailure,
		ClisaScore:           &clisaScore,
	})

	var stored []alert.Alert
	err = s.tx.InTx(ctx, func(txCtx context.Context) error {
		if err := s.checkpoints.Create(txCtx, checkpoint); err != nil {
			return fmt.Errorf("persist checkpoint: %w", err)
		}
		stored, err = s.alerts.Record(txCtx, batch)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("patient_id", in.PatientID.String()).
		Float64("integrated_score", checkpoint.IntegratedRiskScore).
		Str("risk_band", string(checkpoint.RiskBand)).
		Str("trend", string(trend)).
		Int("alerts", len(stored)).
		Msg("assessment completed")

	return &AssessmentResult{
		Checkpoint: checkpoint,
		Clisa:      clisa,
		EarlyRisk:  early,
		LateRisk:   late,
		Trend:      trend,
		Alerts:     stored,
	}, nil
}

// RecordTractionEvent stores one event reported by the traction-sensing
// module.
func (s *Service) RecordTractionEvent(ctx context.Context, ev *TractionEvent) error {
	if _, err := s.patients.GetByID(ctx, ev.PatientID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPatientNotFound
		}
		return fmt.Errorf("load patient: %w", err)
	}
	switch ev.Severity {
	case risk.TractionYellow, risk.TractionRed:
	default:
		return fmt.Errorf("invalid traction severity %q", ev.Severity)
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	return s.tractions.Create(ctx, ev)
}

func (s *Service) ListCheckpoints(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*RiskCheckpoint, int, error) {
	return s.checkpoints.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListTractionEvents(ctx context.Context, patientID uuid.UUID, window time.Duration) ([]*TractionEvent, error) {
	return s.tractions.ListByPatientSince(ctx, patientID, time.Now().Add(-window))
}

// Dashboard is the aggregate view one bedside screen renders for a patient.
type Dashboard struct {
	Patient           *patient.Patient  `json:"patient"`
	DwellTimeHours    float64           `json:"dwell_time_hours"`
	LatestCheckpoint  *RiskCheckpoint   `json:"latest_checkpoint"`
	RecentCheckpoints []*RiskCheckpoint `json:"recent_checkpoints"`
	TractionEvents24h []*TractionEvent  `json:"traction_events_24h"`
	ActiveAlerts      []*alert.Alert    `json:"active_alerts"`
}

// GetDashboard assembles the per-patient dashboard: latest and recent
// checkpoints (newest first), the 24h traction window and open alerts.
func (s *Service) GetDashboard(ctx context.Context, patientID uuid.UUID) (*Dashboard, error) {
	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("load patient: %w", err)
	}

	now := time.Now()

	checkpoints, _, err := s.checkpoints.ListByPatient(ctx, patientID, recentCheckpointLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("load checkpoints: %w", err)
	}

	tractionEvents, err := s.tractions.ListByPatientSince(ctx, patientID, now.Add(-tractionWindow))
	if err != nil {
		return nil, fmt.Errorf("load traction events: %w", err)
	}

	activeAlerts, err := s.alerts.ListUnacknowledged(ctx, patientID, recentCheckpointLimit*5)
	if err != nil {
		return nil, fmt.Errorf("load alerts: %w", err)
	}

	dash := &Dashboard{
		Patient:           p,
		DwellTimeHours:    p.DwellHours(now),
		RecentCheckpoints: checkpoints,
		TractionEvents24h: tractionEvents,
		ActiveAlerts:      activeAlerts,
	}
	if len(checkpoints) > 0 {
		dash.LatestCheckpoint = checkpoints[0]
	}
	return dash, nil
}

func integratedScores(checkpoints []*RiskCheckpoint) []float64 {
	scores := make([]float64, len(checkpoints))
	for i, cp := range checkpoints {
		scores[i] = cp.IntegratedRiskScore
	}
	return scores
}
