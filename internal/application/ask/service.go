// Package ask implements the question-answering application service: the
// foreign-jurisdiction gate, clause detection, query rewriting, retrieval,
// analysis generation, evidence grounding, and response assembly.
package ask

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/swarakshak/vidhaan/internal/analysis"
	"github.com/swarakshak/vidhaan/internal/domain/corpus"
	"github.com/swarakshak/vidhaan/internal/infrastructure/monitoring/logging"
	"github.com/swarakshak/vidhaan/internal/intelligence/textgen"
	"github.com/swarakshak/vidhaan/internal/retrieval"
)

// foreignKeywords gates queries about non-Indian law before any other
// processing.  Broader than the classifier's foreign list: the gate also
// catches phrasings that would otherwise classify into a domestic domain.
var foreignKeywords = []string{
	"america", "american", "us law", "usa",
	"united states", "uk law", "england",
	"california", "new york", "eu law", "gdpr",
	"at will employment",
}

// clauseMarkers identify pasted contract text as opposed to a question.
// Clause input skips rewriting and session enrichment entirely.
var clauseMarkers = []string{
	"neither party shall",
	"party shall indemnify",
	"shall be liable for",
	"confidential information",
	"governed by the laws of",
	"subject to arbitration",
	"limitation of liability",
}

const (
	domainForeignJurisdiction = "foreign_jurisdiction"
	domainRewriteFailure      = "rewrite_failure"

	reasonForeignScope  = "This system provides answers strictly based on Indian law"
	reasonRewriteFailed = "Query normalization failed"
)

// Response is the full answer payload returned to clients.
type Response struct {
	QueryID            string                   `json:"query_id"`
	Timestamp          string                   `json:"timestamp"`
	OriginalQuery      string                   `json:"original_query,omitempty"`
	RewrittenQuery     string                   `json:"rewritten_query,omitempty"`
	Status             string                   `json:"status"`
	Domain             string                   `json:"domain"`
	Reason             string                   `json:"reason,omitempty"`
	RiskLevel          string                   `json:"risk_level,omitempty"`
	AnalysisRaw        string                   `json:"analysis_raw,omitempty"`
	AnalysisUser       string                   `json:"analysis_user,omitempty"`
	LawBasis           string                   `json:"law_basis,omitempty"`
	Confidence         float64                  `json:"confidence"`
	Citations          []retrieval.Citation     `json:"citations"`
	CoverageScore      float64                  `json:"coverage_score"`
	EvidenceMap        []analysis.EvidenceEntry `json:"evidence_map"`
	CitationSupportMap map[string]bool          `json:"citation_support_map"`
	ConfidenceFactors  analysis.Factors         `json:"confidence_factors"`
}

// Service orchestrates one query end to end.
type Service struct {
	engine   *retrieval.Engine
	rewriter *textgen.Rewriter
	embedder analysis.Embedder
	log      logging.Logger
	now      func() time.Time
}

// NewService builds the ask service.  embedder may be nil; evidence mapping
// then falls back to token overlap.
func NewService(engine *retrieval.Engine, rewriter *textgen.Rewriter, embedder analysis.Embedder, log logging.Logger) *Service {
	if log == nil {
		log = logging.NewNopLogger()
	}
	if rewriter == nil {
		rewriter = textgen.NewRewriter(nil, 0)
	}
	return &Service{
		engine:   engine,
		rewriter: rewriter,
		embedder: embedder,
		log:      log,
		now:      time.Now,
	}
}

func (s *Service) newResponse() Response {
	return Response{
		QueryID:   uuid.NewString(),
		Timestamp: s.now().UTC().Format(time.RFC3339Nano),
	}
}

func isForeignQuery(query string) bool {
	q := strings.ToLower(query)
	for _, k := range foreignKeywords {
		if strings.Contains(q, k) {
			return true
		}
	}
	return false
}

// looksLikeContractClause triggers only on text resembling an actual clause,
// not on a question about one.
func looksLikeContractClause(text string) bool {
	t := strings.ToLower(text)
	for _, m := range clauseMarkers {
		if strings.Contains(t, m) {
			return true
		}
	}
	return false
}

// Ask answers a single query.  enrichment is session-derived retrieval
// context; it is applied to the retrieval query only and never reaches the
// rewrite model or clause input.
func (s *Service) Ask(ctx context.Context, userQuery, enrichment string) (Response, error) {
	resp := s.newResponse()

	if isForeignQuery(userQuery) {
		resp.Status = string(retrieval.StatusRefused)
		resp.Domain = domainForeignJurisdiction
		resp.Reason = reasonForeignScope
		return resp, nil
	}

	// Clause text is matched verbatim; questions are rewritten first.
	rewritten := userQuery
	retrievalQuery := userQuery
	if !looksLikeContractClause(userQuery) {
		rewritten = s.rewriter.Rewrite(ctx, userQuery)
		if strings.TrimSpace(rewritten) == "" {
			resp.Status = string(retrieval.StatusRefused)
			resp.Domain = domainRewriteFailure
			resp.Reason = reasonRewriteFailed
			return resp, nil
		}
		retrievalQuery = rewritten
		if enrichment != "" {
			retrievalQuery = enrichment + " " + rewritten
		}
	}

	result, err := s.engine.Answer(ctx, retrievalQuery)
	if err != nil {
		return Response{}, err
	}
	s.fill(ctx, &resp, userQuery, rewritten, result)
	return resp, nil
}

// fill completes a response from a retrieval result: analysis lines, user
// refinement, evidence grounding, and confidence.
func (s *Service) fill(ctx context.Context, resp *Response, original, rewritten string, result retrieval.Result) {
	lines := analysis.Generate(result)

	refined := make([]string, 0, len(lines))
	if len(lines) > 0 {
		refined = append(refined, s.rewriter.Refine(ctx, lines[0]))
		refined = append(refined, lines[1:]...)
	}

	sentences := splitSentences(strings.Join(refined, "\n"))
	docs := docsFromCitations(result.Citations)
	evidenceMap := analysis.MapEvidence(ctx, sentences, docs, s.embedder)
	coverage := analysis.CoverageScore(evidenceMap)
	citations, supportMap := analysis.AnnotateCitationSupport(result.Citations, evidenceMap)
	confidence, factors := analysis.ComputeConfidence(citations, coverage)

	resp.OriginalQuery = original
	resp.RewrittenQuery = rewritten
	resp.Status = string(result.Status)
	resp.Domain = string(result.Domain)
	resp.Reason = result.Reason
	resp.RiskLevel = string(result.Risk)
	resp.AnalysisRaw = strings.Join(lines, "\n")
	resp.AnalysisUser = strings.Join(refined, "\n")
	resp.LawBasis = result.LawBasis
	resp.Confidence = confidence
	resp.Citations = citations
	resp.CoverageScore = coverage
	resp.EvidenceMap = evidenceMap
	resp.CitationSupportMap = supportMap
	resp.ConfidenceFactors = factors
}

// splitSentences breaks analysis text into sentences for evidence mapping.
func splitSentences(text string) []string {
	replaced := strings.NewReplacer("?", ".", "!", ".").Replace(text)
	parts := strings.Split(replaced, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// docsFromCitations converts citations into evidence documents.  The citation
// label doubles as the text so grounding rewards sentences that actually name
// the cited statute.
func docsFromCitations(citations []retrieval.Citation) []corpus.Document {
	docs := make([]corpus.Document, 0, len(citations))
	for _, c := range citations {
		label := strings.TrimSpace(strings.TrimSpace(c.Statute) + " " + strings.TrimSpace(c.Identifier))
		docs = append(docs, corpus.Document{
			Type:       c.Type,
			Identifier: c.Identifier,
			Statute:    c.Statute,
			Source:     c.SourceKey(),
			Text:       label,
		})
	}
	return docs
}
