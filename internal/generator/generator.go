package generator

import (
	"math/rand"
	"time"

	"churn-insights-go/internal/textgen"
)

// Generator derives the secondary artifacts (stories, metrics, insights)
// from scored users and personas. gen may be nil, in which case every
// artifact comes from the deterministic templates. The rng feeds only the
// cosmetic metric jitter and the weighted impact draw; it is injected so
// tests can pin it.
type Generator struct {
	gen textgen.Generator
	rng *rand.Rand
}

func New(gen textgen.Generator, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{gen: gen, rng: rng}
}
