package generator

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"churn-insights-go/internal/types"
)

func seeded() *Generator {
	return New(nil, rand.New(rand.NewSource(7)))
}

func TestStories(t *testing.T) {
	ctx := context.Background()
	personas := []types.Persona{
		{ID: "p1", Name: "At-Risk User", Segment: types.SegmentAtRisk},
		{ID: "p2", Name: "Power User", Segment: types.SegmentPower},
		{ID: "p3", Name: "Occasional User", Segment: types.SegmentOccasional},
	}

	stories := seeded().Stories(ctx, personas)
	assert.Len(t, stories, 3)

	t.Run("PriorityFollowsSegment", func(t *testing.T) {
		assert.Equal(t, types.PriorityHigh, stories[0].Priority)
		assert.Equal(t, types.PriorityMedium, stories[1].Priority)
		assert.Equal(t, types.PriorityLow, stories[2].Priority)
	})

	t.Run("ReferencesPersona", func(t *testing.T) {
		for i, s := range stories {
			assert.Equal(t, personas[i].ID, s.PersonaID)
			assert.NotEmpty(t, s.ID)
			assert.NotEmpty(t, s.Title)
			assert.NotEmpty(t, s.Description)
		}
	})

	t.Run("AtLeastThreeCriteria", func(t *testing.T) {
		for _, s := range stories {
			assert.GreaterOrEqual(t, len(s.AcceptanceCriteria), 3)
			for _, c := range s.AcceptanceCriteria {
				assert.NotEmpty(t, c)
			}
		}
	})
}

func TestMetrics(t *testing.T) {
	users := []types.UserRecord{
		{UserSegment: types.SegmentAtRisk, ActivityScore: 1},
		{UserSegment: types.SegmentPower, ActivityScore: 9},
		{UserSegment: types.SegmentOccasional, ActivityScore: 5},
		{UserSegment: types.SegmentOccasional, ActivityScore: 5},
	}
	metrics := seeded().Metrics(users)
	assert.Len(t, metrics, 4)

	byTitle := map[string]types.ChurnMetric{}
	for _, m := range metrics {
		byTitle[m.Title] = m
		assert.NotEmpty(t, m.ID)
		assert.NotEmpty(t, m.Description)
	}

	t.Run("AtRiskCount", func(t *testing.T) {
		m := byTitle["At-Risk Users"]
		assert.Equal(t, 1.0, m.Value)
		assert.False(t, m.IsPositive)
	})

	t.Run("AverageActivity", func(t *testing.T) {
		assert.Equal(t, 5.0, byTitle["Average Activity Score"].Value)
		assert.True(t, byTitle["Average Activity Score"].IsPositive)
	})

	t.Run("ChurnAndRetention", func(t *testing.T) {
		// 1 of 4 at risk = 25% -> churn rate 2.5, retention 97.5
		assert.Equal(t, 2.5, byTitle["Churn Rate"].Value)
		assert.Equal(t, 97.5, byTitle["Retention Rate"].Value)
	})

	t.Run("JitterBounded", func(t *testing.T) {
		for _, m := range metrics {
			assert.LessOrEqual(t, m.Change, 5.0)
			assert.GreaterOrEqual(t, m.Change, -5.0)
		}
	})

	t.Run("EmptyPopulation", func(t *testing.T) {
		metrics := seeded().Metrics(nil)
		assert.Len(t, metrics, 4)
		for _, m := range metrics {
			if m.Title == "Retention Rate" {
				assert.Equal(t, 100.0, m.Value)
			} else {
				assert.Equal(t, 0.0, m.Value)
			}
		}
	})
}

func TestInsights(t *testing.T) {
	insights := seeded().Insights(context.Background(), []types.UserRecord{{}})
	assert.Len(t, insights, 6)

	validImpacts := map[types.Priority]bool{
		types.PriorityHigh: true, types.PriorityMedium: true, types.PriorityLow: true,
	}
	validCategories := map[types.InsightCategory]bool{
		types.CategoryOnboarding: true, types.CategoryEngagement: true,
		types.CategorySupport: true, types.CategoryProduct: true,
	}
	seenCategories := map[types.InsightCategory]bool{}
	for _, ins := range insights {
		assert.NotEmpty(t, ins.ID)
		assert.NotEmpty(t, ins.Title)
		assert.NotEmpty(t, ins.Description)
		assert.NotEmpty(t, ins.Recommendation)
		assert.True(t, validImpacts[ins.Impact], "impact %q", ins.Impact)
		assert.True(t, validCategories[ins.Category], "category %q", ins.Category)
		seenCategories[ins.Category] = true
	}
	assert.Len(t, seenCategories, 4)
}
