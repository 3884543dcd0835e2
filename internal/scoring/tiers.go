package scoring

import "fmt"

// Tier is a package's risk classification, derived from its score.
type Tier string

const (
	Low      Tier = "LOW"
	Medium   Tier = "MEDIUM"
	High     Tier = "HIGH"
	Critical Tier = "CRITICAL"
)

// Thresholds names its fields after spec.md §6's configuration schema
// (`thresholds: {critical, high, medium}`) rather than after the tiers
// they gate: each field is the score at/above which a package stops
// being classified as the next-lower tier. Medium is therefore the entry
// point for LOW (there is no separate "low" key — once a score clears
// Medium there's nothing higher left to compare against).
type Thresholds struct {
	Critical int
	High     int
	Medium   int
}

// DefaultThresholds returns spec.md §4.4's defaults: LOW ≥ 80,
// MEDIUM ≥ 60, HIGH ≥ 30 (below 30 is CRITICAL).
func DefaultThresholds() Thresholds {
	return Thresholds{Critical: 30, High: 60, Medium: 80}
}

// Validate enforces critical < high < medium, the ordering invariant
// spec.md §6's config validator requires.
func (t Thresholds) Validate() error {
	if !(t.Critical < t.High && t.High < t.Medium) {
		return fmt.Errorf("scoring: thresholds must satisfy critical < high < medium, got critical=%d high=%d medium=%d", t.Critical, t.High, t.Medium)
	}
	return nil
}

// classify returns the tier for score under t.
func (t Thresholds) classify(score int) Tier {
	switch {
	case score >= t.Medium:
		return Low
	case score >= t.High:
		return Medium
	case score >= t.Critical:
		return High
	default:
		return Critical
	}
}
