package types

// Segment buckets the user population by churn risk.
type Segment string

const (
	SegmentPower      Segment = "power"
	SegmentAtRisk     Segment = "atrisk"
	SegmentOccasional Segment = "occasional"
)

// RawRow is one parsed spreadsheet/CSV record keyed by the literal column
// labels found in the file. Ephemeral, only exists during ingestion.
type RawRow map[string]string

// FieldMap resolves canonical field keys to the column label found in the
// sample row. A key absent from the map means "always synthesize". Built
// once from the first row of an upload and reused for every row.
type FieldMap map[string]string

// Canonical field keys shared by the column mapper and the normalizer.
const (
	FieldID             = "id"
	FieldName           = "name"
	FieldEmail          = "email"
	FieldLastLogin      = "lastLogin"
	FieldRegisteredDate = "registeredDate"
	FieldActivityScore  = "activityScore"
)

// UserRecord is the canonical per-user entity produced by the pipeline.
// Timestamps are ISO-8601 strings. ChurnRisk is always within [0,1];
// ActivityScore is nominally 0-10 after normalization.
type UserRecord struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	LastLogin      string  `json:"last_login"`
	RegisteredDate string  `json:"registered_date"`
	UserSegment    Segment `json:"user_segment"`
	ChurnRisk      float64 `json:"churn_risk"`
	ActivityScore  float64 `json:"activity_score"`
}
