package scorer

import (
	"math"
	"time"

	"churn-insights-go/internal/types"
)

// Factor weights. They must sum to 1 so the combined score stays in [0,1]
// before the safety clamp.
const (
	weightActivity = 0.5
	weightRecency  = 0.3
	weightAge      = 0.2

	// Recency risk saturates at 30 days of inactivity; age risk decays to
	// zero once an account is 180 days old.
	recencySaturationDays = 30.0
	ageDecayDays          = 180.0
)

// Score computes churn risk in [0,1] from an already-normalized activity
// score and the two resolved timestamps, evaluated against now.
//
// Three bounded factors, weighted:
//   - activity: 1 - activityScore/10, low activity reads as risk
//   - recency:  min(daysSinceLastLogin/30, 1), linear ramp to saturation
//   - age:      max(1 - accountAgeDays/180, 0), new accounts carry risk
//
// The final clamp is a guard for future weight changes; with the current
// weights the sum is already within range.
func Score(activityScore float64, lastLogin, registered, now time.Time) float64 {
	activityRisk := 1 - activityScore/10

	daysSinceLogin := now.Sub(lastLogin).Hours() / 24
	recencyRisk := math.Min(daysSinceLogin/recencySaturationDays, 1)

	accountAgeDays := now.Sub(registered).Hours() / 24
	ageRisk := math.Max(1-accountAgeDays/ageDecayDays, 0)

	risk := weightActivity*activityRisk + weightRecency*recencyRisk + weightAge*ageRisk
	return math.Max(0, math.Min(1, risk))
}

// Segment thresholds. Both boundaries are strict, so 0.3 and 0.7 themselves
// land in occasional.
const (
	atRiskThreshold = 0.7
	powerThreshold  = 0.3
)

// SegmentFor buckets a churn risk score. Pure, no hysteresis.
func SegmentFor(churnRisk float64) types.Segment {
	switch {
	case churnRisk > atRiskThreshold:
		return types.SegmentAtRisk
	case churnRisk < powerThreshold:
		return types.SegmentPower
	default:
		return types.SegmentOccasional
	}
}
