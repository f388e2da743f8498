package risk

// ClisaCategory is the three-level classification of the CLISA score.
type ClisaCategory string

const (
	ClisaLow      ClisaCategory = "low"
	ClisaModerate ClisaCategory = "moderate"
	ClisaHigh     ClisaCategory = "high"
)

// ClisaResult is the outcome of one CLISA assessment.
type ClisaResult struct {
	Score          float64       `json:"score"`
	Category       ClisaCategory `json:"category"`
	Recommendation string        `json:"recommendation"`
}

var clisaRecommendations = map[ClisaCategory]string{
	ClisaLow:      "Observe regularly. Standard care protocol.",
	ClisaModerate: "Change dressing within 24 hours. Monitor closely for deterioration.",
	ClisaHigh:     "Escalate to infection control. Consider catheter replacement. Immediate action required.",
}

// ComputeClisaScore computes the CLISA insertion-site score from the dressing
// defect flags and patient factors.
//
// Dressing assessment contributes up to 4 points, patient factors up to 6
// (1.5 each). The nominal scale is 0-10 but the sum is not clamped: with
// every flag and factor set the score is 12.00.
func ComputeClisaScore(obs DressingObservation, factors PatientFactors) ClisaResult {
	score := 0.0

	if obs.DressingFailure {
		score += 2
	}
	if obs.BloodPresent {
		score += 1
	}
	if obs.SweatPresent {
		score += 0.5
	}
	if obs.MoisturePresent {
		score += 0.5
	}
	if obs.WhitePatches {
		score += 1
	}
	if obs.AirGap {
		score += 1
	}

	score += float64(factors.Count()) * 1.5

	category := clisaCategory(score)

	return ClisaResult{
		Score:          round2(score),
		Category:       category,
		Recommendation: clisaRecommendations[category],
	}
}

// clisaCategory maps a CLISA score to its category: <=2.5 low, <=6.5
// moderate, else high.
func clisaCategory(score float64) ClisaCategory {
	switch {
	case score <= 2.5:
		return ClisaLow
	case score <= 6.5:
		return ClisaModerate
	default:
		return ClisaHigh
	}
}

// ClisaReferenceRow is one row of the static CLISA reference table shown to
// clinicians alongside a score.
type ClisaReferenceRow struct {
	ScoreRange     string `json:"score_range"`
	Category       string `json:"category"`
	Color          string `json:"color"`
	Recommendation string `json:"recommendation"`
	Action         string `json:"action"`
}

// ClisaTable returns the static 3-row CLISA reference table.
func ClisaTable() [3]ClisaReferenceRow {
	return [3]ClisaReferenceRow{
		{
			ScoreRange:     "0 - 2.5",
			Category:       "Low Risk",
			Color:          "green",
			Recommendation: "Observe regularly. Standard care protocol.",
			Action:         "Continue standard monitoring",
		},
		{
			ScoreRange:     "2.6 - 6.5",
			Category:       "Moderate Risk",
			Color:          "yellow",
			Recommendation: "Change dressing within 24 hours. Monitor closely.",
			Action:         "Schedule dressing change",
		},
		{
			ScoreRange:     "> 6.5",
			Category:       "High Risk",
			Color:          "red",
			Recommendation: "Escalate to infection control. Consider catheter replacement.",
			Action:         "Immediate escalation required",
		},
	}
}
