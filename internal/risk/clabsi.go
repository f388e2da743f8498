package risk

// Dwell-time phase boundaries in hours.
const (
	earlyPhaseMaxHours = 72  // first 3 days after insertion
	latePhaseHighHours = 168 // beyond 7 days
)

// RiskOutput is the result of an early or late CLABSI risk calculation.
type RiskOutput struct {
	Score   float64  `json:"score"`
	Level   RiskBand `json:"level"`
	Message string   `json:"message"`
}

// EarlyRiskInput feeds the early-phase (dwell <= 72h) calculation.
type EarlyRiskInput struct {
	ClisaScore      float64
	DressingFailure bool
	DwellTimeHours  float64
	PatientFactors  PatientFactors
}

// LateRiskInput feeds the late-phase (dwell > 72h) calculation.
type LateRiskInput struct {
	EarlyRiskScore           float64
	DwellTimeHours           float64
	TractionEvents24h        int
	TractionSeverityRedCount int
	PatientFactors           PatientFactors
	RecentTrend              Trend
}

var earlyRiskMessages = map[RiskBand]string{
	BandGreen:  "Low early CLABSI risk. Continue standard monitoring and care practices.",
	BandYellow: "Moderate early CLABSI risk. Increase monitoring frequency and dressing checks.",
	BandRed:    "High early CLABSI risk. Escalate care, consider specialist review.",
}

var lateRiskMessages = map[RiskBand]string{
	BandGreen:  "Low late CLABSI risk. Maintain current care protocol.",
	BandYellow: "Moderate late CLABSI risk. Increase daily assessments and consider prophylactic measures.",
	BandRed:    "High late CLABSI risk. Consider line replacement and escalate to infection prevention team.",
}

// CalculateEarlyClabsiRisk scores the first 72 hours of dwell time. The
// CLISA score contributes up to 40 points, dressing failure 20, patient
// factors 5 each and dwell time beyond 72h a further 10.
func CalculateEarlyClabsiRisk(in EarlyRiskInput) RiskOutput {
	score := (in.ClisaScore / 10) * 40

	if in.DressingFailure {
		score += 20
	}

	score += float64(in.PatientFactors.Count()) * 5

	if in.DwellTimeHours > earlyPhaseMaxHours {
		score += 10
	}

	level := Band(score)
	return RiskOutput{
		Score:   round2(score),
		Level:   level,
		Message: earlyRiskMessages[level],
	}
}

// CalculateLateClabsiRisk scores dwell time beyond 72 hours. It carries 60%
// of the early score forward and adds dwell, traction, patient-factor and
// trend contributions. The carry-forward compounds with the additive terms;
// scores beyond 100 are possible and intentional.
func CalculateLateClabsiRisk(in LateRiskInput) RiskOutput {
	score := in.EarlyRiskScore * 0.6

	if in.DwellTimeHours > earlyPhaseMaxHours {
		score += 15
	}
	if in.DwellTimeHours > latePhaseHighHours {
		score += 20
	}

	score += float64(in.TractionEvents24h) * 2
	score += float64(in.TractionSeverityRedCount) * 5

	score += float64(in.PatientFactors.Count()) * 5

	switch in.RecentTrend {
	case TrendDeteriorating:
		score += 15
	case TrendStable:
		score += 5
	}

	level := Band(score)
	return RiskOutput{
		Score:   round2(score),
		Level:   level,
		Message: lateRiskMessages[level],
	}
}

// CalculateIntegratedRisk blends the early and late scores by dwell time:
// for the first 72 hours only the early score is trusted, after that the
// late calculation (which already carries early risk forward) dominates.
func CalculateIntegratedRisk(earlyScore, lateScore, dwellHours float64) float64 {
	if dwellHours <= earlyPhaseMaxHours {
		return earlyScore
	}
	return earlyScore*0.4 + lateScore*0.6
}
