package generator

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"churn-insights-go/internal/types"
)

// Metrics computes the four dashboard figures from the full user set. The
// Change fields are cosmetic jitter from the injected rng; there is no
// history behind them.
func (g *Generator) Metrics(users []types.UserRecord) []types.ChurnMetric {
	atRisk := 0
	totalActivity := 0.0
	for _, u := range users {
		if u.UserSegment == types.SegmentAtRisk {
			atRisk++
		}
		totalActivity += u.ActivityScore
	}

	atRiskPct := 0.0
	avgActivity := 0.0
	if len(users) > 0 {
		atRiskPct = float64(atRisk) / float64(len(users)) * 100
		avgActivity = totalActivity / float64(len(users))
	}
	churnRate := atRiskPct / 10
	retention := 100 - churnRate

	return []types.ChurnMetric{
		{
			ID:          uuid.New().String(),
			Title:       "At-Risk Users",
			Value:       float64(atRisk),
			Change:      g.jitter(5),
			IsPositive:  false,
			Description: fmt.Sprintf("%d of %d users (%.1f%%) are in the at-risk segment", atRisk, len(users), atRiskPct),
		},
		{
			ID:          uuid.New().String(),
			Title:       "Average Activity Score",
			Value:       round1(avgActivity),
			Change:      g.jitter(3),
			IsPositive:  true,
			Description: "Mean activity score across all users on a 0-10 scale",
		},
		{
			ID:          uuid.New().String(),
			Title:       "Churn Rate",
			Value:       round1(churnRate),
			Change:      g.jitter(2),
			IsPositive:  false,
			Description: "Estimated monthly churn derived from the at-risk share",
		},
		{
			ID:          uuid.New().String(),
			Title:       "Retention Rate",
			Value:       round1(retention),
			Change:      g.jitter(2),
			IsPositive:  true,
			Description: "Complement of the estimated churn rate",
		},
	}
}

// jitter returns a cosmetic delta in (-scale, scale), one decimal.
func (g *Generator) jitter(scale float64) float64 {
	return round1((g.rng.Float64()*2 - 1) * scale)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
