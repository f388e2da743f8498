package alert

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// -- Mock repository --

type mockRepo struct {
	alerts map[uuid.UUID]*Alert
}

func newMockRepo() *mockRepo {
	return &mockRepo{alerts: make(map[uuid.UUID]*Alert)}
}

func (m *mockRepo) Create(_ context.Context, a *Alert) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	stored := *a
	m.alerts[a.ID] = &stored
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Alert, error) {
	a, ok := m.alerts[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return a, nil
}

func (m *mockRepo) List(_ context.Context, filter ListFilter, limit, offset int) ([]*Alert, int, error) {
	var result []*Alert
	for _, a := range m.alerts {
		if filter.PatientID != nil && a.PatientID != *filter.PatientID {
			continue
		}
		if filter.UnacknowledgedOnly && a.Acknowledged {
			continue
		}
		result = append(result, a)
	}
	total := len(result)
	if offset >= len(result) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockRepo) HasRecentUnacknowledged(_ context.Context, patientID uuid.UUID, typ Type, since time.Time) (bool, error) {
	for _, a := range m.alerts {
		if a.PatientID == patientID && a.Type == typ && !a.Acknowledged && !a.CreatedAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepo) Acknowledge(_ context.Context, id uuid.UUID) error {
	a, ok := m.alerts[id]
	if !ok {
		return fmt.Errorf("not found")
	}
	a.Acknowledged = true
	return nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	return NewService(repo, zerolog.Nop()), repo
}

func TestService_Record_StoresBatch(t *testing.T) {
	svc, repo := newTestService()
	patientID := uuid.New()

	batch := Generate(TriggerInput{PatientID: patientID, DressingFailure: true, ClisaScore: f64(9)})
	stored, err := svc.Record(context.Background(), batch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stored) != 2 {
		t.Errorf("stored %d alerts, want 2", len(stored))
	}
	if len(repo.alerts) != 2 {
		t.Errorf("repo holds %d alerts, want 2", len(repo.alerts))
	}
}

func TestService_Record_SuppressesDuplicateWithinWindow(t *testing.T) {
	svc, repo := newTestService()
	patientID := uuid.New()

	first := Generate(TriggerInput{PatientID: patientID, DressingFailure: true})
	if _, err := svc.Record(context.Background(), first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Same condition an hour later: still one stored alert.
	second := Generate(TriggerInput{PatientID: patientID, DressingFailure: true})
	stored, err := svc.Record(context.Background(), second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("duplicate stored %d alerts, want 0", len(stored))
	}
	if len(repo.alerts) != 1 {
		t.Errorf("repo holds %d alerts, want 1", len(repo.alerts))
	}
}

func TestService_Record_AcknowledgedAlertDoesNotSuppress(t *testing.T) {
	svc, repo := newTestService()
	patientID := uuid.New()

	first := Generate(TriggerInput{PatientID: patientID, DressingFailure: true})
	stored, _ := svc.Record(context.Background(), first)
	if _, err := svc.Acknowledge(context.Background(), stored[0].ID); err != nil {
		t.Fatalf("acknowledge: %v", err)
	}

	second := Generate(TriggerInput{PatientID: patientID, DressingFailure: true})
	stored, err := svc.Record(context.Background(), second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stored) != 1 {
		t.Errorf("stored %d alerts after acknowledgment, want 1", len(stored))
	}
	if len(repo.alerts) != 2 {
		t.Errorf("repo holds %d alerts, want 2", len(repo.alerts))
	}
}

func TestService_Acknowledge(t *testing.T) {
	svc, _ := newTestService()
	patientID := uuid.New()

	stored, _ := svc.Record(context.Background(), Generate(TriggerInput{PatientID: patientID, DressingFailure: true}))

	a, err := svc.Acknowledge(context.Background(), stored[0].ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.Acknowledged {
		t.Error("alert not acknowledged")
	}

	// Acknowledging again stays acknowledged.
	a, err = svc.Acknowledge(context.Background(), stored[0].ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.Acknowledged {
		t.Error("acknowledgment reverted")
	}
}

func TestService_Acknowledge_Unknown(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Acknowledge(context.Background(), uuid.New()); err == nil {
		t.Error("expected error for unknown alert")
	}
}

func TestService_ListUnacknowledged(t *testing.T) {
	svc, _ := newTestService()
	patientID := uuid.New()

	stored, _ := svc.Record(context.Background(), Generate(TriggerInput{
		PatientID:       patientID,
		DressingFailure: true,
		ClisaScore:      f64(9),
	}))
	svc.Acknowledge(context.Background(), stored[0].ID)

	open, err := svc.ListUnacknowledged(context.Background(), patientID, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(open) != 1 {
		t.Errorf("open alerts = %d, want 1", len(open))
	}
}
