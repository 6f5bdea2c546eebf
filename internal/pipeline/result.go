package pipeline

import "churn-insights-go/internal/types"

// Result holds everything derived from one upload. It is immutable once
// returned; a new upload produces a fresh Result and the caller decides
// which one is current. The zero value reports no data.
type Result struct {
	users    []types.UserRecord
	personas []types.Persona
	stories  []types.UserStory
	metrics  []types.ChurnMetric
	insights []types.Insight
}

// HasGeneratedData reports whether this result came from a successful run.
func (r *Result) HasGeneratedData() bool {
	return r != nil && len(r.users) > 0
}

// Users returns the full record list sorted by descending churn risk.
func (r *Result) Users() []types.UserRecord {
	if r == nil {
		return nil
	}
	return r.users
}

func (r *Result) Personas() []types.Persona {
	if r == nil {
		return nil
	}
	return r.personas
}

func (r *Result) Stories() []types.UserStory {
	if r == nil {
		return nil
	}
	return r.stories
}

func (r *Result) Metrics() []types.ChurnMetric {
	if r == nil {
		return nil
	}
	return r.metrics
}

func (r *Result) Insights() []types.Insight {
	if r == nil {
		return nil
	}
	return r.insights
}
