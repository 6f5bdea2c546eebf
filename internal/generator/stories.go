package generator

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"churn-insights-go/internal/textgen"
	"churn-insights-go/internal/types"
)

// priorityFor is the fixed segment-to-priority mapping for user stories.
func priorityFor(seg types.Segment) types.Priority {
	switch seg {
	case types.SegmentAtRisk:
		return types.PriorityHigh
	case types.SegmentPower:
		return types.PriorityMedium
	default:
		return types.PriorityLow
	}
}

type storyTemplate struct {
	title       string
	description string
	criteria    []string
}

var storyTemplates = map[types.Segment]storyTemplate{
	types.SegmentAtRisk: {
		title:       "Win back disengaging users",
		description: "As an at-risk user, I want a clear reason to return so that the product earns a place in my routine again.",
		criteria: []string{
			"A re-engagement email is sent after 14 days of inactivity",
			"The first screen after return highlights what changed",
			"User can resume their last task in one click",
		},
	},
	types.SegmentPower: {
		title:       "Reward and retain champions",
		description: "As a power user, I want advanced capabilities and recognition so that staying on the product keeps paying off.",
		criteria: []string{
			"Advanced features are discoverable from the main workflow",
			"Usage milestones trigger an in-product acknowledgment",
			"Feedback from power users reaches the roadmap queue",
		},
	},
	types.SegmentOccasional: {
		title:       "Deepen casual engagement",
		description: "As an occasional user, I want timely nudges toward relevant features so that each visit becomes more valuable.",
		criteria: []string{
			"Feature suggestions are based on the user's recurring task",
			"Session context is restored on return",
			"A weekly digest summarizes what the user missed",
		},
	},
}

// minCriteria is the guaranteed floor of acceptance criteria per story;
// generated output is padded from the template to reach it.
const minCriteria = 3

// Stories produces one user story per persona. Title and description may
// come from the text collaborator; acceptance criteria always end up with
// at least minCriteria non-empty entries.
func (g *Generator) Stories(ctx context.Context, personas []types.Persona) []types.UserStory {
	stories := make([]types.UserStory, 0, len(personas))
	for _, p := range personas {
		tpl := storyTemplates[p.Segment]
		story := types.UserStory{
			ID:                 uuid.New().String(),
			PersonaID:          p.ID,
			Title:              tpl.title,
			Description:        tpl.description,
			Priority:           priorityFor(p.Segment),
			AcceptanceCriteria: append([]string(nil), tpl.criteria...),
		}
		if g.gen != nil {
			prompt := fmt.Sprintf(
				"Write a one-sentence agile user story for the persona %q (segment %s, average churn risk %.2f).",
				p.Name, p.Segment, p.ChurnRisk)
			if text, err := g.gen.Generate(ctx, prompt, textgen.Options{MaxLength: 80, NumReturnSequences: 1}); err == nil && text != "" {
				story.Description = text
			}
		}
		for len(story.AcceptanceCriteria) < minCriteria {
			story.AcceptanceCriteria = append(story.AcceptanceCriteria,
				fmt.Sprintf("Outcome %d for %s users is measurable", len(story.AcceptanceCriteria)+1, p.Segment))
		}
		stories = append(stories, story)
	}
	return stories
}
