// Package risk implements the CLABSI risk-scoring engine: the CLISA
// insertion-site score, the early/late dwell-phase risk calculations, the
// integrated blend, risk banding and checkpoint trend analysis. Every
// function is a pure computation over its arguments; storage and transport
// live in the domain packages.
package risk

import "math"

// Band thresholds shared by the early, late and integrated scores.
const (
	bandGreenMax  = 25
	bandYellowMax = 60
)

// RiskBand is the three-level classification applied to any numeric risk
// score via the shared 25/60 thresholds.
type RiskBand string

const (
	BandGreen  RiskBand = "green"
	BandYellow RiskBand = "yellow"
	BandRed    RiskBand = "red"
)

// Trend classifies a patient's recent checkpoint history.
type Trend string

const (
	TrendImproving     Trend = "improving"
	TrendStable        Trend = "stable"
	TrendDeteriorating Trend = "deteriorating"
)

// TractionSeverity grades a detected pulling event on the external
// catheter-securing device: yellow is caution, red is danger of
// dislodgement.
type TractionSeverity string

const (
	TractionYellow TractionSeverity = "yellow"
	TractionRed    TractionSeverity = "red"
)

// PatientFactors are the four comorbidity flags contributing to both the
// CLISA score and the CLABSI risk scores. Each true flag adds a fixed
// per-score weight (1.5 for CLISA, 5 for early/late risk).
type PatientFactors struct {
	AgitationDelirium     bool `json:"agitation_delirium"`
	ExtremesOfAgeWeight   bool `json:"extremes_of_age_weight"`
	Comorbidities         bool `json:"comorbidities"`
	ImmuneNutritionStatus bool `json:"immune_nutrition_status"`
}

// Count returns the number of factors set to true.
func (f PatientFactors) Count() int {
	n := 0
	for _, set := range []bool{f.AgitationDelirium, f.ExtremesOfAgeWeight, f.Comorbidities, f.ImmuneNutritionStatus} {
		if set {
			n++
		}
	}
	return n
}

// DressingObservation holds the defect flags from one bedside assessment of
// the dressing and insertion site. The flags are independent; how they were
// derived (visual inspection, future image analysis) is the caller's concern.
type DressingObservation struct {
	DressingFailure bool `json:"dressing_failure"`
	BloodPresent    bool `json:"blood_present"`
	SweatPresent    bool `json:"sweat_present"`
	MoisturePresent bool `json:"moisture_present"`
	WhitePatches    bool `json:"white_patches"`
	AirGap          bool `json:"air_gap"`
}

// Band maps a risk score to its band: <=25 green, <=60 yellow, else red.
// The boundaries are inclusive.
func Band(score float64) RiskBand {
	switch {
	case score <= bandGreenMax:
		return BandGreen
	case score <= bandYellowMax:
		return BandYellow
	default:
		return BandRed
	}
}

// round2 rounds to 2 decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
