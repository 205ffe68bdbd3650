package textgen

import (
	"context"
	"time"
)

// Observer receives the outcome of every model call.  Implementations must
// be safe for concurrent use.
type Observer interface {
	ObserveModelRequest(operation, outcome string, elapsed time.Duration)
}

// Operation labels reported to the Observer.
const (
	OpRewrite = "rewrite"
	OpDraft   = "draft"
	OpEmbed   = "embed"
)

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

// ObservedGenerator wraps a Generator and reports every call under a fixed
// operation label.
type ObservedGenerator struct {
	gen Generator
	op  string
	obs Observer
}

// NewObservedGenerator decorates gen so each Generate call is reported to
// obs as operation.
func NewObservedGenerator(gen Generator, operation string, obs Observer) *ObservedGenerator {
	return &ObservedGenerator{gen: gen, op: operation, obs: obs}
}

func (g *ObservedGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	start := time.Now()
	out, err := g.gen.Generate(ctx, system, user)
	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeError
	}
	g.obs.ObserveModelRequest(g.op, outcome, time.Since(start))
	return out, err
}

// Vectorizer is the embedding contract shared by the retrieval and analysis
// packages.
type Vectorizer interface {
	Vectorize(ctx context.Context, text string) ([]float32, error)
}

// ObservedVectorizer wraps a Vectorizer and reports every call under the
// embed operation.
type ObservedVectorizer struct {
	v   Vectorizer
	obs Observer
}

// NewObservedVectorizer decorates v so each Vectorize call is reported to
// obs.
func NewObservedVectorizer(v Vectorizer, obs Observer) *ObservedVectorizer {
	return &ObservedVectorizer{v: v, obs: obs}
}

func (o *ObservedVectorizer) Vectorize(ctx context.Context, text string) ([]float32, error) {
	start := time.Now()
	vec, err := o.v.Vectorize(ctx, text)
	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeError
	}
	o.obs.ObserveModelRequest(OpEmbed, outcome, time.Since(start))
	return vec, err
}
