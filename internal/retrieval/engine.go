package retrieval

import (
	"context"

	"github.com/swarakshak/vidhaan/internal/domain/corpus"
	"github.com/swarakshak/vidhaan/internal/infrastructure/monitoring/logging"
)

// Refusal and no-source reasons surfaced verbatim to callers.
const (
	ReasonCriminal   = "Private contracts cannot impose criminal liability"
	ReasonForeign    = "Foreign law is outside the scope of this system"
	ReasonVagueQuery = "Query is too vague to map to a specific Indian statute"
	ReasonNoStatute  = "No relevant Indian statute applicable"
)

// Result is the deterministic outcome of a single retrieval pass.  Refusals
// and no-source outcomes always carry verdict UNKNOWN and empty citations.
type Result struct {
	Status    Status     `json:"status"`
	Domain    Domain     `json:"domain"`
	Verdict   Verdict    `json:"verdict"`
	Risk      RiskLevel  `json:"risk_level"`
	Reason    string     `json:"reason,omitempty"`
	Analysis  string     `json:"analysis,omitempty"`
	LawBasis  string     `json:"law_basis,omitempty"`
	BaseCase  string     `json:"base_case,omitempty"`
	Citations []Citation `json:"citations"`
}

// Engine runs the full retrieval pipeline: domain classification, candidate
// restriction, vector ranking, citation filtering, base-case overrides and
// risk inference.
type Engine struct {
	corpus *corpus.Corpus
	ranker *Ranker
	filter *CitationFilter
	pool   int
	log    logging.Logger
}

// NewEngine wires the pipeline stages.  pool bounds how many ranked hits are
// passed to the citation filter; values below one fall back to a sane bound.
func NewEngine(c *corpus.Corpus, ranker *Ranker, filter *CitationFilter, pool int, log logging.Logger) *Engine {
	if pool < 1 {
		pool = 4 * maxCitations
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Engine{corpus: c, ranker: ranker, filter: filter, pool: pool, log: log}
}

func refused(domain Domain, reason string) Result {
	return Result{
		Status:  StatusRefused,
		Domain:  domain,
		Verdict: VerdictUnknown,
		Risk:    RiskUnknown,
		Reason:  reason,
	}
}

func noSource(domain Domain, reason string) Result {
	return Result{
		Status:  StatusNoSource,
		Domain:  domain,
		Verdict: VerdictUnknown,
		Risk:    RiskUnknown,
		Reason:  reason,
	}
}

// Answer classifies the query, retrieves and scores citations, and produces
// a verdict.  Errors are returned only for infrastructure failures; legal
// refusals are regular results.
func (e *Engine) Answer(ctx context.Context, query string) (Result, error) {
	domain := ClassifyDomain(query)
	e.log.Debug("query classified", logging.String("domain", string(domain)))

	switch domain {
	case DomainCriminalConfusion:
		return refused(domain, ReasonCriminal), nil
	case DomainForeignJurisdiction:
		return refused(domain, ReasonForeign), nil
	}

	candidates := CandidateIndices(e.corpus, domain)
	if len(candidates) == 0 {
		return noSource(domain, ReasonVagueQuery), nil
	}

	hits, err := e.ranker.Rank(ctx, query, candidates, e.pool)
	if err != nil {
		return Result{}, err
	}
	citations := e.filter.Filter(hits, query)

	if bc := ResolveBaseCase(query, domain); bc != nil {
		e.log.Debug("base case matched", logging.String("case", bc.Name))
		return Result{
			Status:    bc.Status,
			Domain:    domain,
			Verdict:   bc.Verdict,
			Risk:      bc.Risk,
			Analysis:  bc.Analysis,
			LawBasis:  bc.LawBasis,
			BaseCase:  bc.Name,
			Citations: citations,
		}, nil
	}

	if len(citations) == 0 {
		return noSource(domain, ReasonNoStatute), nil
	}
	return Result{
		Status:    StatusOK,
		Domain:    domain,
		Verdict:   VerdictDepends,
		Risk:      InferRiskLevel(domain, citations),
		Citations: citations,
	}, nil
}
