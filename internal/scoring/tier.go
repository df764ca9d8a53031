package scoring

import (
	"fmt"
	"strings"
)

// Tier is an ordinal risk bucket derived from a probability.
type Tier string

const (
	TierLow      Tier = "low"
	TierModerate Tier = "moderate"
	TierHigh     Tier = "high"
)

// Tier thresholds. Both boundaries belong to Moderate.
const (
	ModerateThreshold = 0.30
	HighThreshold     = 0.70
)

// Tiers lists every tier in ascending order of risk.
func Tiers() []Tier {
	return []Tier{TierLow, TierModerate, TierHigh}
}

// TierFor buckets a probability: Low below 0.30, High above 0.70, Moderate
// otherwise.
func TierFor(p float64) Tier {
	switch {
	case p < ModerateThreshold:
		return TierLow
	case p <= HighThreshold:
		return TierModerate
	default:
		return TierHigh
	}
}

// ParseTier accepts a tier name in any case.
func ParseTier(s string) (Tier, error) {
	switch Tier(strings.ToLower(strings.TrimSpace(s))) {
	case TierLow:
		return TierLow, nil
	case TierModerate:
		return TierModerate, nil
	case TierHigh:
		return TierHigh, nil
	}
	return "", fmt.Errorf("invalid risk tier: %q", s)
}

// Label is the display name, e.g. "Moderate Risk".
func (t Tier) Label() string {
	switch t {
	case TierLow:
		return "Low Risk"
	case TierModerate:
		return "Moderate Risk"
	case TierHigh:
		return "High Risk"
	}
	return string(t)
}

func (t Tier) String() string { return string(t) }
