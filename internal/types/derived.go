package types

// --------------------------------------------
// Derived entities, recomputed in full on every
// upload. None of these survive a re-process.
// --------------------------------------------

// PersonaUser is the lighter projection of a UserRecord carried inside a
// Persona, enough for display tables without duplicating the full record.
type PersonaUser struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	ChurnRisk     float64 `json:"churn_risk"`
	ActivityScore float64 `json:"activity_score"`
}

// Persona is an aggregate profile for one segment (or one half of a split
// segment). Users are ordered by descending churn risk.
type Persona struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Segment     Segment       `json:"segment"`
	Description string        `json:"description"`
	PainPoints  []string      `json:"pain_points"`
	Goals       []string      `json:"goals"`
	ChurnRisk   float64       `json:"churn_risk"`
	Users       []PersonaUser `json:"users"`
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// UserStory references its persona by id; it does not own it.
type UserStory struct {
	ID                 string   `json:"id"`
	PersonaID          string   `json:"persona_id"`
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Priority           Priority `json:"priority"`
	AcceptanceCriteria []string `json:"acceptance_criteria"`
}

// ChurnMetric is one dashboard figure. Change is cosmetic jitter with no
// persisted history behind it.
type ChurnMetric struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Value       float64 `json:"value"`
	Change      float64 `json:"change"`
	IsPositive  bool    `json:"is_positive"`
	Description string  `json:"description"`
}

type InsightCategory string

const (
	CategoryOnboarding InsightCategory = "onboarding"
	CategoryEngagement InsightCategory = "engagement"
	CategorySupport    InsightCategory = "support"
	CategoryProduct    InsightCategory = "product"
)

type Insight struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Impact         Priority        `json:"impact"`
	Recommendation string          `json:"recommendation"`
	Category       InsightCategory `json:"category"`
}
