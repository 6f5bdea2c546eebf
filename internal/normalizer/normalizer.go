package normalizer

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"churn-insights-go/internal/types"
)

// dateLayouts are tried in order when coercing a cell to a timestamp.
// Spreadsheet exports are inconsistent; anything unparseable falls back to
// a synthesized value.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
}

// Normalizer turns raw rows into canonical user records. The random source
// and clock are injected so synthetic fallback values are reproducible in
// tests; they are the only nondeterminism in this package.
type Normalizer struct {
	rng *rand.Rand
	now func() time.Time
}

func New(rng *rand.Rand, now func() time.Time) *Normalizer {
	return &Normalizer{rng: rng, now: now}
}

// NewDefault seeds from the wall clock.
func NewDefault() *Normalizer {
	return New(rand.New(rand.NewSource(time.Now().UnixNano())), time.Now)
}

// Normalize produces one UserRecord from a raw row, its 0-based position,
// and the field map built from the upload's first row. Missing or malformed
// fields never fail; each is synthesized locally. Segment and churn risk
// are left zero for the scorer.
func (n *Normalizer) Normalize(row types.RawRow, index int, fm types.FieldMap) types.UserRecord {
	rec := types.UserRecord{
		ID:    n.stringField(row, fm, types.FieldID, func() string { return uuid.New().String() }),
		Name:  n.stringField(row, fm, types.FieldName, func() string { return fmt.Sprintf("User %d", index+1) }),
		Email: n.stringField(row, fm, types.FieldEmail, func() string { return fmt.Sprintf("user%d@example.com", index+1) }),
	}
	rec.ActivityScore = n.activityScore(row, fm)
	rec.LastLogin = n.dateField(row, fm, types.FieldLastLogin, 30)
	rec.RegisteredDate = n.dateField(row, fm, types.FieldRegisteredDate, 365)
	return rec
}

func (n *Normalizer) stringField(row types.RawRow, fm types.FieldMap, field string, fallback func() string) string {
	if label, ok := fm[field]; ok {
		if v := row[label]; v != "" {
			return v
		}
	}
	return fallback()
}

// activityScore parses the mapped cell as a number, rescaling values above
// 10 on the assumption they are on a 0-100 scale. Anything unmapped or
// non-numeric gets a uniform random score in [1, 10).
func (n *Normalizer) activityScore(row types.RawRow, fm types.FieldMap) float64 {
	if label, ok := fm[types.FieldActivityScore]; ok {
		raw := strings.TrimSpace(row[label])
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			if v > 10 {
				return v * (10.0 / 100.0)
			}
			return v
		}
	}
	return 1 + n.rng.Float64()*9
}

// dateField returns the mapped cell as an ISO-8601 string when it parses,
// otherwise now minus a uniform random offset within maxDaysBack days.
func (n *Normalizer) dateField(row types.RawRow, fm types.FieldMap, field string, maxDaysBack float64) string {
	if label, ok := fm[field]; ok {
		raw := strings.TrimSpace(row[label])
		if raw != "" {
			if t, ok := parseDate(raw); ok {
				return t.UTC().Format(time.RFC3339)
			}
		}
	}
	offset := time.Duration(n.rng.Float64() * maxDaysBack * float64(24*time.Hour))
	return n.now().Add(-offset).UTC().Format(time.RFC3339)
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
