package alert

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cathshield/cathshield/internal/risk"
)

// CheckpointState is the slice of a risk checkpoint the alert rules need.
type CheckpointState struct {
	IntegratedRiskScore float64
	RiskBand            risk.RiskBand
}

// TriggerInput carries one assessment's worth of alert-rule inputs. The
// checkpoint slice MUST be ordered newest-first; the traction slice holds
// the severities of events in whatever window the caller filtered
// (nominally the last 24 hours).
type TriggerInput struct {
	PatientID            uuid.UUID
	RecentCheckpoints    []CheckpointState
	RecentTractionEvents []risk.TractionSeverity
	DressingFailure      bool
	ClisaScore           *float64
}

// Generate evaluates the alert rules in fixed order and returns the alerts
// that fired. The rules are independent apart from traction, where a red
// event suppresses the yellow-accumulation rule. Nothing is persisted here;
// every invocation produces a fresh batch.
func Generate(in TriggerInput) []Alert {
	var alerts []Alert
	now := time.Now()

	redCount, yellowCount := 0, 0
	for _, sev := range in.RecentTractionEvents {
		switch sev {
		case risk.TractionRed:
			redCount++
		case risk.TractionYellow:
			yellowCount++
		}
	}

	if redCount > 0 {
		alerts = append(alerts, Alert{
			ID:                uuid.New(),
			PatientID:         in.PatientID,
			Type:              TypeTraction,
			Message:           fmt.Sprintf("%d RED traction alert(s) detected in last 24 hours - HIGH venous trauma risk", redCount),
			Severity:          SeverityCritical,
			RecommendedAction: "Immediately check IV line, stabilize catheter, assess for dislodgement or venous injury",
			CreatedAt:         now,
		})
	} else if yellowCount >= 3 {
		alerts = append(alerts, Alert{
			ID:                uuid.New(),
			PatientID:         in.PatientID,
			Type:              TypeTraction,
			Message:           fmt.Sprintf("%d YELLOW traction alerts in last 24 hours", yellowCount),
			Severity:          SeverityWarning,
			RecommendedAction: "Monitor IV line closely, educate patient on avoiding traction, consider arm immobilization",
			CreatedAt:         now,
		})
	}

	if in.DressingFailure {
		alerts = append(alerts, Alert{
			ID:                uuid.New(),
			PatientID:         in.PatientID,
			Type:              TypeDressingFailure,
			Message:           "Dressing failure detected - moisture, blood, or air gap present",
			Severity:          SeverityWarning,
			RecommendedAction: "Change dressing immediately using aseptic technique, assess insertion site",
			CreatedAt:         now,
		})
	}

	if in.ClisaScore != nil && *in.ClisaScore > 6.5 {
		alerts = append(alerts, Alert{
			ID:                uuid.New(),
			PatientID:         in.PatientID,
			Type:              TypeHighClisa,
			Message:           fmt.Sprintf("High CLISA score (%v) - elevated infection risk", *in.ClisaScore),
			Severity:          SeverityCritical,
			RecommendedAction: "Escalate to infection control, consider catheter replacement, senior physician review",
			CreatedAt:         now,
		})
	}

	if len(in.RecentCheckpoints) > 0 && in.RecentCheckpoints[0].RiskBand == risk.BandRed {
		scores := make([]float64, len(in.RecentCheckpoints))
		for i, cp := range in.RecentCheckpoints {
			scores[i] = cp.IntegratedRiskScore
		}

		if risk.AnalyzeTrend(scores) == risk.TrendDeteriorating {
			alerts = append(alerts, Alert{
				ID:                uuid.New(),
				PatientID:         in.PatientID,
				Type:              TypeHighClabsi,
				Message:           "High CLABSI risk with deteriorating trend - immediate intervention needed",
				Severity:          SeverityCritical,
				RecommendedAction: "Senior review, consider line removal, infection control consultation, prophylactic cultures",
				CreatedAt:         now,
			})
		} else {
			alerts = append(alerts, Alert{
				ID:                uuid.New(),
				PatientID:         in.PatientID,
				Type:              TypeHighClabsi,
				Message:           "High CLABSI risk detected",
				Severity:          SeverityWarning,
				RecommendedAction: "Increase monitoring, review insertion technique, optimize dressing and flushing protocols",
				CreatedAt:         now,
			})
		}
	}

	return alerts
}
