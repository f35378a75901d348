package model

// ConfidenceTier is a human-readable interpretation of a confidence score.
type ConfidenceTier string

// Confidence tiers, highest first.
const (
	TierVeryHigh ConfidenceTier = "very high"
	TierHigh     ConfidenceTier = "high"
	TierModerate ConfidenceTier = "moderate"
	TierLow      ConfidenceTier = "low"
	TierVeryLow  ConfidenceTier = "very low"
)

// TierForConfidence maps a confidence score in [0,1] to its tier. It is a
// pure function of the score, independent of the predicted type.
func TierForConfidence(confidence float64) ConfidenceTier {
	switch {
	case confidence >= 0.90:
		return TierVeryHigh
	case confidence >= 0.75:
		return TierHigh
	case confidence >= 0.60:
		return TierModerate
	case confidence >= 0.40:
		return TierLow
	default:
		return TierVeryLow
	}
}
