package alert

import (
	"testing"

	"github.com/google/uuid"

	"github.com/cathshield/cathshield/internal/risk"
)

func f64(v float64) *float64 { return &v }

func findByType(alerts []Alert, typ Type) *Alert {
	for i := range alerts {
		if alerts[i].Type == typ {
			return &alerts[i]
		}
	}
	return nil
}

func TestGenerate_NothingToReport(t *testing.T) {
	alerts := Generate(TriggerInput{PatientID: uuid.New()})
	if len(alerts) != 0 {
		t.Errorf("expected no alerts, got %d", len(alerts))
	}
}

func TestGenerate_RedTractionSuppressesYellow(t *testing.T) {
	in := TriggerInput{
		PatientID: uuid.New(),
		RecentTractionEvents: []risk.TractionSeverity{
			risk.TractionYellow, risk.TractionYellow, risk.TractionYellow, risk.TractionRed,
		},
	}

	alerts := Generate(in)
	if len(alerts) != 1 {
		t.Fatalf("expected exactly 1 alert, got %d", len(alerts))
	}
	a := alerts[0]
	if a.Type != TypeTraction || a.Severity != SeverityCritical {
		t.Errorf("got %s/%s, want traction/critical", a.Type, a.Severity)
	}
	if a.Message != "1 RED traction alert(s) detected in last 24 hours - HIGH venous trauma risk" {
		t.Errorf("unexpected message: %q", a.Message)
	}
}

func TestGenerate_YellowTractionNeedsThree(t *testing.T) {
	in := TriggerInput{
		PatientID:            uuid.New(),
		RecentTractionEvents: []risk.TractionSeverity{risk.TractionYellow, risk.TractionYellow},
	}
	if alerts := Generate(in); len(alerts) != 0 {
		t.Errorf("2 yellow events should not alert, got %d alerts", len(alerts))
	}

	in.RecentTractionEvents = append(in.RecentTractionEvents, risk.TractionYellow)
	alerts := Generate(in)
	if len(alerts) != 1 {
		t.Fatalf("3 yellow events should raise 1 alert, got %d", len(alerts))
	}
	if alerts[0].Severity != SeverityWarning {
		t.Errorf("severity = %s, want warning", alerts[0].Severity)
	}
	if alerts[0].Message != "3 YELLOW traction alerts in last 24 hours" {
		t.Errorf("unexpected message: %q", alerts[0].Message)
	}
}

func TestGenerate_DressingFailure(t *testing.T) {
	alerts := Generate(TriggerInput{PatientID: uuid.New(), DressingFailure: true})
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].Type != TypeDressingFailure || alerts[0].Severity != SeverityWarning {
		t.Errorf("got %s/%s, want dressing_failure/warning", alerts[0].Type, alerts[0].Severity)
	}
}

func TestGenerate_HighClisaRequiresScoreAboveThreshold(t *testing.T) {
	// 6.5 is the boundary and does not fire.
	if alerts := Generate(TriggerInput{PatientID: uuid.New(), ClisaScore: f64(6.5)}); len(alerts) != 0 {
		t.Errorf("clisa 6.5 should not alert, got %d alerts", len(alerts))
	}

	alerts := Generate(TriggerInput{PatientID: uuid.New(), ClisaScore: f64(7)})
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].Type != TypeHighClisa || alerts[0].Severity != SeverityCritical {
		t.Errorf("got %s/%s, want high_clisa/critical", alerts[0].Type, alerts[0].Severity)
	}
}

func TestGenerate_NoClisaScoreNoAlert(t *testing.T) {
	if alerts := Generate(TriggerInput{PatientID: uuid.New()}); len(alerts) != 0 {
		t.Errorf("absent clisa score must not alert, got %d alerts", len(alerts))
	}
}

func TestGenerate_HighClabsi_DeterioratingIsCritical(t *testing.T) {
	in := TriggerInput{
		PatientID: uuid.New(),
		RecentCheckpoints: []CheckpointState{ // newest first, scores rising over time
			{IntegratedRiskScore: 80, RiskBand: risk.BandRed},
			{IntegratedRiskScore: 70, RiskBand: risk.BandRed},
			{IntegratedRiskScore: 55, RiskBand: risk.BandYellow},
		},
	}

	alerts := Generate(in)
	a := findByType(alerts, TypeHighClabsi)
	if a == nil {
		t.Fatal("expected a high_clabsi alert")
	}
	if a.Severity != SeverityCritical {
		t.Errorf("severity = %s, want critical for deteriorating trend", a.Severity)
	}
}

// A single red checkpoint has no trend to analyze, so the rule falls back to
// warning severity.
func TestGenerate_HighClabsi_SingleCheckpointIsWarning(t *testing.T) {
	in := TriggerInput{
		PatientID: uuid.New(),
		RecentCheckpoints: []CheckpointState{
			{IntegratedRiskScore: 80, RiskBand: risk.BandRed},
		},
	}

	alerts := Generate(in)
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if alerts[0].Severity != SeverityWarning {
		t.Errorf("severity = %s, want warning (stable trend)", alerts[0].Severity)
	}
	if alerts[0].Message != "High CLABSI risk detected" {
		t.Errorf("unexpected message: %q", alerts[0].Message)
	}
}

func TestGenerate_NonRedLatestCheckpointNoClabsiAlert(t *testing.T) {
	in := TriggerInput{
		PatientID: uuid.New(),
		RecentCheckpoints: []CheckpointState{
			{IntegratedRiskScore: 55, RiskBand: risk.BandYellow},
			{IntegratedRiskScore: 80, RiskBand: risk.BandRed},
		},
	}
	if alerts := Generate(in); len(alerts) != 0 {
		t.Errorf("non-red latest checkpoint must not alert, got %d alerts", len(alerts))
	}
}

func TestGenerate_RulesAreIndependent(t *testing.T) {
	in := TriggerInput{
		PatientID:            uuid.New(),
		RecentTractionEvents: []risk.TractionSeverity{risk.TractionRed},
		DressingFailure:      true,
		ClisaScore:           f64(8.5),
		RecentCheckpoints: []CheckpointState{
			{IntegratedRiskScore: 90, RiskBand: risk.BandRed},
		},
	}

	alerts := Generate(in)
	if len(alerts) != 4 {
		t.Fatalf("expected all 4 rules to fire, got %d alerts", len(alerts))
	}

	for _, typ := range []Type{TypeTraction, TypeDressingFailure, TypeHighClisa, TypeHighClabsi} {
		if findByType(alerts, typ) == nil {
			t.Errorf("missing %s alert", typ)
		}
	}

	// Every alert gets a fresh identifier and starts unacknowledged.
	seen := map[uuid.UUID]bool{}
	for _, a := range alerts {
		if a.ID == uuid.Nil || seen[a.ID] {
			t.Errorf("alert %s has missing or duplicate id", a.Type)
		}
		seen[a.ID] = true
		if a.Acknowledged {
			t.Errorf("alert %s born acknowledged", a.Type)
		}
		if a.CreatedAt.IsZero() {
			t.Errorf("alert %s has zero created_at", a.Type)
		}
	}
}
