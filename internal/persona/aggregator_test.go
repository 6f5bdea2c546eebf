package persona

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"churn-insights-go/internal/textgen"
	"churn-insights-go/internal/types"
)

type stubGenerator struct {
	text string
	err  error
}

func (s stubGenerator) Generate(context.Context, string, textgen.Options) (string, error) {
	return s.text, s.err
}

func powerUsers(n int) []types.UserRecord {
	users := make([]types.UserRecord, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, types.UserRecord{
			ID:          fmt.Sprintf("u%d", i),
			Name:        fmt.Sprintf("User %d", i+1),
			UserSegment: types.SegmentPower,
			ChurnRisk:   float64(i) / float64(10*n),
		})
	}
	return users
}

func TestBuild(t *testing.T) {
	ctx := context.Background()

	t.Run("SinglePopulatedSegment", func(t *testing.T) {
		users := []types.UserRecord{
			{ID: "a", UserSegment: types.SegmentPower, ChurnRisk: 0.1},
			{ID: "b", UserSegment: types.SegmentPower, ChurnRisk: 0.2},
		}
		personas := New(nil, DefaultSplit).Build(ctx, users)
		assert.Len(t, personas, 1)
		p := personas[0]
		assert.Equal(t, types.SegmentPower, p.Segment)
		assert.InDelta(t, 0.15, p.ChurnRisk, 1e-9)
		// descending by risk
		assert.Equal(t, "b", p.Users[0].ID)
		assert.Equal(t, "a", p.Users[1].ID)
	})

	t.Run("EmptySegmentsOmitted", func(t *testing.T) {
		personas := New(nil, DefaultSplit).Build(ctx, powerUsers(3))
		assert.Len(t, personas, 1)
		assert.Equal(t, types.SegmentPower, personas[0].Segment)
	})

	t.Run("NoUsersNoPersonas", func(t *testing.T) {
		assert.Empty(t, New(nil, DefaultSplit).Build(ctx, nil))
	})

	t.Run("SplitsLargeSegment", func(t *testing.T) {
		personas := New(nil, SplitPolicy{Threshold: 10, Ratio: 0.5}).Build(ctx, powerUsers(20))
		assert.Len(t, personas, 2)
		assert.Len(t, personas[0].Users, 10)
		assert.Len(t, personas[1].Users, 10)
		assert.Contains(t, personas[0].Name, "(Group 1)")
		assert.Contains(t, personas[1].Name, "(Group 2)")

		// halves are disjoint
		seen := map[string]bool{}
		for _, p := range personas {
			for _, u := range p.Users {
				assert.False(t, seen[u.ID], "user %s in both personas", u.ID)
				seen[u.ID] = true
			}
		}
		assert.Len(t, seen, 20)

		// first half carries the higher-risk users
		assert.GreaterOrEqual(t, personas[0].ChurnRisk, personas[1].ChurnRisk)
	})

	t.Run("BelowThresholdNoSplit", func(t *testing.T) {
		personas := New(nil, SplitPolicy{Threshold: 10, Ratio: 0.5}).Build(ctx, powerUsers(9))
		assert.Len(t, personas, 1)
		assert.Equal(t, "Power User", personas[0].Name)
	})

	t.Run("TemplateTextWithoutGenerator", func(t *testing.T) {
		personas := New(nil, DefaultSplit).Build(ctx, powerUsers(2))
		p := personas[0]
		assert.NotEmpty(t, p.Description)
		assert.GreaterOrEqual(t, len(p.PainPoints), 3)
		assert.GreaterOrEqual(t, len(p.Goals), 3)
	})

	t.Run("GeneratedDescription", func(t *testing.T) {
		personas := New(stubGenerator{text: "generated copy"}, DefaultSplit).Build(ctx, powerUsers(2))
		assert.Equal(t, "generated copy", personas[0].Description)
	})

	t.Run("GeneratorFailureFallsBack", func(t *testing.T) {
		personas := New(stubGenerator{err: errors.New("model unavailable")}, DefaultSplit).Build(ctx, powerUsers(2))
		assert.Equal(t, segmentTemplates[types.SegmentPower].description, personas[0].Description)
	})

	t.Run("SegmentMeanRisk", func(t *testing.T) {
		users := []types.UserRecord{
			{ID: "a", UserSegment: types.SegmentAtRisk, ChurnRisk: 0.8},
			{ID: "b", UserSegment: types.SegmentAtRisk, ChurnRisk: 0.9},
			{ID: "c", UserSegment: types.SegmentPower, ChurnRisk: 0.1},
		}
		personas := New(nil, DefaultSplit).Build(ctx, users)
		assert.Len(t, personas, 2)
		assert.Equal(t, types.SegmentAtRisk, personas[0].Segment)
		assert.InDelta(t, 0.85, personas[0].ChurnRisk, 1e-9)
		assert.Equal(t, types.SegmentPower, personas[1].Segment)
		assert.InDelta(t, 0.1, personas[1].ChurnRisk, 1e-9)
	})
}
