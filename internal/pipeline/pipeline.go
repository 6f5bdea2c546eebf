package pipeline

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"churn-insights-go/internal/generator"
	"churn-insights-go/internal/logger"
	"churn-insights-go/internal/mapper"
	"churn-insights-go/internal/normalizer"
	"churn-insights-go/internal/persona"
	"churn-insights-go/internal/scorer"
	"churn-insights-go/internal/textgen"
	"churn-insights-go/internal/types"
)

// Pipeline runs the single-pass transform: map columns once, normalize and
// score every row, then derive personas and the secondary artifacts.
type Pipeline struct {
	norm *normalizer.Normalizer
	agg  *persona.Aggregator
	gen  *generator.Generator
	now  func() time.Time
}

// New wires a pipeline from explicit collaborators, for tests that need a
// pinned clock and rng.
func New(norm *normalizer.Normalizer, agg *persona.Aggregator, gen *generator.Generator, now func() time.Time) *Pipeline {
	return &Pipeline{norm: norm, agg: agg, gen: gen, now: now}
}

// NewDefault builds the production pipeline: wall clock, time-seeded rng,
// text generation from environment config (nil means templates only).
func NewDefault() *Pipeline {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	tg := textgen.FromEnv()
	return New(
		normalizer.New(rng, time.Now),
		persona.New(tg, persona.DefaultSplit),
		generator.New(tg, rng),
		time.Now,
	)
}

// Process runs the full transform over parsed rows and returns a Result
// session owned by the caller. ok is false for an empty row list; nothing
// downstream runs and no partial result exists in that case.
func (p *Pipeline) Process(ctx context.Context, rows []types.RawRow) (*Result, bool) {
	log := logger.New().WithComponent("pipeline")
	if len(rows) == 0 {
		log.Warn("no rows to process")
		return nil, false
	}

	// Field map is derived from the first row only and reused for the whole
	// upload, even if later rows carry extra columns.
	fm := mapper.MapColumns(rows[0])
	log.WithField("mapped_fields", len(fm)).WithField("rows", len(rows)).Info("column map built")

	now := p.now()
	users := make([]types.UserRecord, 0, len(rows))
	for i, row := range rows {
		rec := p.norm.Normalize(row, i, fm)
		lastLogin, _ := time.Parse(time.RFC3339, rec.LastLogin)
		registered, _ := time.Parse(time.RFC3339, rec.RegisteredDate)
		rec.ChurnRisk = scorer.Score(rec.ActivityScore, lastLogin, registered, now)
		rec.UserSegment = scorer.SegmentFor(rec.ChurnRisk)
		users = append(users, rec)
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].ChurnRisk > users[j].ChurnRisk
	})

	personas := p.agg.Build(ctx, users)
	res := &Result{
		users:    users,
		personas: personas,
		stories:  p.gen.Stories(ctx, personas),
		metrics:  p.gen.Metrics(users),
		insights: p.gen.Insights(ctx, users),
	}
	log.WithField("users", len(users)).Info("processing complete")
	return res, true
}
