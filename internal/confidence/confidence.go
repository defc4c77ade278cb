// Package confidence implements the confidence policy for learned vendor
// patterns: the auto-apply gate and the reinforcement/decay calculator.
package confidence

// AutoApplyThreshold is the confidence at or above which a learned pattern is
// applied without human review.
const AutoApplyThreshold = 0.7

// ShouldAutoApply reports whether a pattern's confidence clears the auto-apply
// threshold. The boundary is inclusive.
func ShouldAutoApply(confidence float64) bool {
	return confidence >= AutoApplyThreshold
}

// Effective recomputes a pattern's confidence from its reinforcement history:
// usage adds up to 0.3 (0.05 per application), and more than 30 days of
// disuse subtracts 0.1. The result is clamped to [0, 1].
//
// This is a display-time decision aid; the stored confidence is only ever
// changed by the reinforcing upsert.
func Effective(base float64, timesApplied int, daysSinceLastUse float64) float64 {
	confidence := base

	reinforcement := float64(timesApplied) * 0.05
	if reinforcement > 0.3 {
		reinforcement = 0.3
	}
	confidence += reinforcement

	if daysSinceLastUse > 30 {
		confidence -= 0.1
	}

	return Clamp(confidence)
}

// Clamp restricts a score to the [0, 1] range.
func Clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
