package persona

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"churn-insights-go/internal/logger"
	"churn-insights-go/internal/textgen"
	"churn-insights-go/internal/types"
)

// SplitPolicy controls when a large segment is divided into two
// complementary personas. Ratio is the share of the descending-sorted
// member list assigned to the first persona.
type SplitPolicy struct {
	Threshold int
	Ratio     float64
}

var DefaultSplit = SplitPolicy{Threshold: 10, Ratio: 0.5}

// Aggregator builds personas from a scored user population. gen may be nil;
// descriptive text then comes from the segment templates only.
type Aggregator struct {
	gen   textgen.Generator
	split SplitPolicy
}

func New(gen textgen.Generator, split SplitPolicy) *Aggregator {
	if split.Threshold <= 0 {
		split = DefaultSplit
	}
	return &Aggregator{gen: gen, split: split}
}

// Build partitions users by segment and produces one persona per non-empty
// segment, or two when the segment reaches the split threshold. Empty
// segments yield no persona. Each persona carries its member subset sorted
// by descending churn risk and the arithmetic mean risk of those members.
func (a *Aggregator) Build(ctx context.Context, users []types.UserRecord) []types.Persona {
	log := logger.New().WithComponent("persona")

	bySegment := map[types.Segment][]types.UserRecord{}
	for _, u := range users {
		bySegment[u.UserSegment] = append(bySegment[u.UserSegment], u)
	}

	var personas []types.Persona
	for _, seg := range []types.Segment{types.SegmentAtRisk, types.SegmentOccasional, types.SegmentPower} {
		members := bySegment[seg]
		if len(members) == 0 {
			continue
		}
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].ChurnRisk > members[j].ChurnRisk
		})
		if len(members) >= a.split.Threshold {
			cut := int(float64(len(members)) * a.split.Ratio)
			if cut < 1 {
				cut = 1
			}
			if cut >= len(members) {
				cut = len(members) - 1
			}
			personas = append(personas,
				a.build(ctx, seg, members[:cut], 1),
				a.build(ctx, seg, members[cut:], 2))
		} else {
			personas = append(personas, a.build(ctx, seg, members, 0))
		}
	}
	log.WithField("personas", len(personas)).WithField("users", len(users)).Info("personas built")
	return personas
}

// build assembles one persona from an already-sorted member slice. part is
// 0 for a whole segment, 1 or 2 for split halves.
func (a *Aggregator) build(ctx context.Context, seg types.Segment, members []types.UserRecord, part int) types.Persona {
	tpl := templateFor(seg)

	name := tpl.name
	if part > 0 {
		name = fmt.Sprintf("%s (Group %d)", tpl.name, part)
	}

	total := 0.0
	projected := make([]types.PersonaUser, 0, len(members))
	for _, u := range members {
		total += u.ChurnRisk
		projected = append(projected, types.PersonaUser{
			ID:            u.ID,
			Name:          u.Name,
			Email:         u.Email,
			ChurnRisk:     u.ChurnRisk,
			ActivityScore: u.ActivityScore,
		})
	}
	avg := total / float64(len(members))

	return types.Persona{
		ID:          uuid.New().String(),
		Name:        name,
		Segment:     seg,
		Description: a.describe(ctx, seg, len(members), avg, tpl),
		PainPoints:  append([]string(nil), tpl.painPoints...),
		Goals:       append([]string(nil), tpl.goals...),
		ChurnRisk:   avg,
		Users:       projected,
	}
}

// describe asks the text-generation collaborator for persona copy and falls
// back to the segment template on any failure or empty result.
func (a *Aggregator) describe(ctx context.Context, seg types.Segment, count int, avgRisk float64, tpl segmentTemplate) string {
	if a.gen == nil {
		return tpl.description
	}
	prompt := fmt.Sprintf(
		"Write a two-sentence product persona description for a %q user segment of %d users with an average churn risk of %.2f.",
		seg, count, avgRisk)
	text, err := a.gen.Generate(ctx, prompt, textgen.Options{MaxLength: 120, NumReturnSequences: 1})
	if err != nil || text == "" {
		return tpl.description
	}
	return text
}
