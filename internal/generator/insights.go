package generator

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"churn-insights-go/internal/textgen"
	"churn-insights-go/internal/types"
)

type insightTemplate struct {
	category       types.InsightCategory
	title          string
	description    string
	recommendation string
}

// insightTemplates is the fixed six-item insight slate; categories repeat
// where the source data supports more than one observation.
var insightTemplates = []insightTemplate{
	{
		category:       types.CategoryOnboarding,
		title:          "Early drop-off after signup",
		description:    "A large share of at-risk users registered recently, pointing at an onboarding gap rather than product fatigue.",
		recommendation: "Add a guided first-session checklist that ends with one completed real task.",
	},
	{
		category:       types.CategoryEngagement,
		title:          "Login recency predicts churn",
		description:    "Users past two weeks without a login dominate the at-risk segment; recency is the strongest single signal in the model.",
		recommendation: "Trigger re-engagement outreach before the 14-day inactivity mark, not after 30.",
	},
	{
		category:       types.CategoryEngagement,
		title:          "Shallow feature usage in the middle segment",
		description:    "Occasional users show moderate activity scores but touch few features, which caps their engagement ceiling.",
		recommendation: "Surface contextual feature suggestions tied to the task the user already performs.",
	},
	{
		category:       types.CategorySupport,
		title:          "Silent strugglers do not file tickets",
		description:    "Low-activity users rarely contact support before churning, so ticket volume underestimates at-risk population size.",
		recommendation: "Proactively reach out to users whose activity score drops below 3.",
	},
	{
		category:       types.CategoryProduct,
		title:          "Power users cluster on advanced workflows",
		description:    "The lowest-risk users share heavy usage of a small set of advanced workflows, suggesting those drive retention.",
		recommendation: "Shorten the path from default workflows to the advanced set that correlates with retention.",
	},
	{
		category:       types.CategoryProduct,
		title:          "Activity score distribution is bimodal",
		description:    "Users polarize into highly active and barely active groups with a thin middle, so averages hide the churn exposure.",
		recommendation: "Track segment sizes instead of mean activity when reporting engagement health.",
	},
}

// impactWeights gives the per-category draw weights for high/medium/low
// impact, in that order.
var impactWeights = map[types.InsightCategory][3]int{
	types.CategoryOnboarding: {3, 2, 1},
	types.CategoryEngagement: {4, 2, 1},
	types.CategorySupport:    {2, 3, 1},
	types.CategoryProduct:    {2, 3, 2},
}

// Insights produces the fixed-size insight list. Impact is a weighted
// random draw per category; description text may be replaced by the text
// collaborator when one is configured.
func (g *Generator) Insights(ctx context.Context, users []types.UserRecord) []types.Insight {
	out := make([]types.Insight, 0, len(insightTemplates))
	for _, tpl := range insightTemplates {
		ins := types.Insight{
			ID:             uuid.New().String(),
			Title:          tpl.title,
			Description:    tpl.description,
			Impact:         g.drawImpact(tpl.category),
			Recommendation: tpl.recommendation,
			Category:       tpl.category,
		}
		if g.gen != nil {
			prompt := fmt.Sprintf(
				"Write a one-sentence churn insight about %s for a product with %d users, titled %q.",
				tpl.category, len(users), tpl.title)
			if text, err := g.gen.Generate(ctx, prompt, textgen.Options{MaxLength: 100, NumReturnSequences: 1}); err == nil && text != "" {
				ins.Description = text
			}
		}
		out = append(out, ins)
	}
	return out
}

func (g *Generator) drawImpact(cat types.InsightCategory) types.Priority {
	w, ok := impactWeights[cat]
	if !ok {
		w = [3]int{1, 1, 1}
	}
	total := w[0] + w[1] + w[2]
	draw := g.rng.Intn(total)
	switch {
	case draw < w[0]:
		return types.PriorityHigh
	case draw < w[0]+w[1]:
		return types.PriorityMedium
	default:
		return types.PriorityLow
	}
}
