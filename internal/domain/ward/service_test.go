package ward

import (
	"context"
	"testing"
)

type mockRepo struct {
	agg Aggregates
}

func (m *mockRepo) Collect(_ context.Context) (*Aggregates, error) {
	agg := m.agg
	return &agg, nil
}

func TestGetMetrics(t *testing.T) {
	repo := &mockRepo{agg: Aggregates{
		ClabsiCases:          2,
		TotalCentralLineDays: 40,
		DressingChangeCount:  7,
		CatheterChangeCount:  3,
	}}
	svc := NewService(repo, "ICU-A")

	m, err := svc.GetMetrics(context.Background(), "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.WardID != "ICU-A" {
		t.Errorf("ward = %q, want default ICU-A", m.WardID)
	}
	if m.Date == "" {
		t.Error("date not defaulted")
	}
	// 2 cases over 40 line-days = 50 per 1000.
	if m.ClabsiRate != 50 {
		t.Errorf("rate = %v, want 50", m.ClabsiRate)
	}
}

func TestGetMetrics_ZeroLineDays(t *testing.T) {
	svc := NewService(&mockRepo{agg: Aggregates{ClabsiCases: 1}}, "ICU-A")

	m, err := svc.GetMetrics(context.Background(), "ICU-B", "2026-08-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ClabsiRate != 0 {
		t.Errorf("rate = %v, want 0 when no line-days", m.ClabsiRate)
	}
	if m.WardID != "ICU-B" || m.Date != "2026-08-01" {
		t.Errorf("params not honored: %+v", m)
	}
}
