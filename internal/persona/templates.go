package persona

import "churn-insights-go/internal/types"

// segmentTemplate is the deterministic fallback copy for one segment, used
// whenever no text-generation collaborator is configured or it fails.
type segmentTemplate struct {
	name        string
	description string
	painPoints  []string
	goals       []string
}

var segmentTemplates = map[types.Segment]segmentTemplate{
	types.SegmentPower: {
		name: "Power User",
		description: "Highly engaged user who relies on the product daily. " +
			"Logs in frequently, explores advanced features, and is a strong candidate for advocacy programs.",
		painPoints: []string{
			"Hits feature limits on the current plan",
			"Wants faster workflows and keyboard shortcuts",
			"Frustrated when new releases change familiar flows",
		},
		goals: []string{
			"Get more done in less time",
			"Unlock advanced capabilities",
			"Influence the product roadmap",
		},
	},
	types.SegmentAtRisk: {
		name: "At-Risk User",
		description: "Disengaging user showing low activity and long gaps since last login. " +
			"Without timely outreach this user is likely to churn.",
		painPoints: []string{
			"Never found a compelling reason to return",
			"Onboarding did not connect the product to their job",
			"Forgot the product exists between sessions",
		},
		goals: []string{
			"See value quickly without relearning the product",
			"Get guidance on what to do next",
			"Solve one concrete problem end to end",
		},
	},
	types.SegmentOccasional: {
		name: "Occasional User",
		description: "Moderately engaged user who returns for specific tasks but has not built a habit. " +
			"Usage is steady but shallow, leaving room to grow into a power user.",
		painPoints: []string{
			"Only uses a small slice of the product",
			"Loses context between infrequent sessions",
			"Unaware of features that would deepen usage",
		},
		goals: []string{
			"Accomplish their recurring task with less friction",
			"Discover relevant features at the right moment",
			"Build the product into their routine",
		},
	},
}

func templateFor(seg types.Segment) segmentTemplate {
	if tpl, ok := segmentTemplates[seg]; ok {
		return tpl
	}
	return segmentTemplates[types.SegmentOccasional]
}
