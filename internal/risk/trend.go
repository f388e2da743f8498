package risk

// AnalyzeTrend classifies a patient's recent checkpoint history from the
// integrated risk scores of their checkpoints. The input MUST be ordered
// newest-first; the checkpoint repository returns histories in that order.
//
// At most the 3 most recent scores are considered. They are reversed into
// chronological order and each adjacent pair compared: an increase votes
// deteriorating, anything else (including ties) votes improving. The
// majority wins; an exact tie, or fewer than 2 scores, is stable.
func AnalyzeTrend(integratedScores []float64) Trend {
	if len(integratedScores) < 2 {
		return TrendStable
	}

	recent := integratedScores
	if len(recent) > 3 {
		recent = recent[:3]
	}

	// Reverse into chronological order.
	chrono := make([]float64, len(recent))
	for i, s := range recent {
		chrono[len(recent)-1-i] = s
	}

	deteriorating, improving := 0, 0
	for i := 1; i < len(chrono); i++ {
		if chrono[i] > chrono[i-1] {
			deteriorating++
		} else {
			improving++
		}
	}

	switch {
	case deteriorating > improving:
		return TrendDeteriorating
	case improving > deteriorating:
		return TrendImproving
	default:
		return TrendStable
	}
}
