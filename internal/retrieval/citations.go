package retrieval

import (
	"math"
	"sort"
	"strings"

	"github.com/swarakshak/vidhaan/internal/domain/corpus"
	"github.com/swarakshak/vidhaan/internal/domain/statute"
)

// maxCitations is the default cap on the citation list returned per query.
const maxCitations = 6

// docTruncateSize is the default bound on how much document text feeds the
// overlap score.
const docTruncateSize = 3000

// Citation is a scored reference to a statute section, judgment, or
// constitutional article.  Citations are ephemeral: recomputed per query,
// never persisted.
type Citation struct {
	Type           corpus.DocumentType `json:"type"`
	Identifier     string              `json:"identifier"`
	Statute        string              `json:"statute,omitempty"`
	Source         string              `json:"source"`
	IsDeclaratory  bool                `json:"is_declaratory"`
	RelevanceScore float64             `json:"relevance_score"`
	ValidityScore  float64             `json:"validity_score"`
	SupportsClaim  bool                `json:"supports_claim"`
}

// SourceKey returns the key used to join a citation against the evidence map.
func (c Citation) SourceKey() string {
	if c.Source != "" {
		return c.Source
	}
	return strings.TrimSpace(strings.TrimSpace(c.Statute) + " " + strings.TrimSpace(c.Identifier))
}

// statutePriority rewards domain-authoritative statutes.  The ×10 multiplier
// in the total score means authority dominates lexical signals: a topically
// correct but low-authority source never outranks an on-point statute.
var statutePriority = map[string]int{
	"industrial disputes act":      3,
	"standing orders act":          3,
	"shops and establishments act": 2,
	"indian contract act":          1,
}

// sectionKeywords are fixed per-term weights summed over the citation
// identifier string.
var sectionKeywords = map[string]int{
	"termination": 3,
	"retrench":    3,
	"notice":      3,
	"dismiss":     3,
	"discharge":   3,
	"procedure":   1,
	"authority":   1,
}

func statutePriorityFor(statuteName string) int {
	for name, p := range statutePriority {
		if strings.Contains(statuteName, name) {
			return p
		}
	}
	return 0
}

func sectionRelevanceScore(identifier string) int {
	if identifier == "" {
		return 0
	}
	s := strings.ToLower(identifier)
	score := 0
	for k, v := range sectionKeywords {
		if strings.Contains(s, k) {
			score += v
		}
	}
	return score
}

// semanticFromDistance maps a raw distance into (0, 1], monotonically
// decreasing.
func semanticFromDistance(d float64) float64 {
	return 1.0 / (1.0 + math.Max(0, d))
}

// keywordOverlapScore is |query terms ∩ doc terms| / |query terms|, capped at
// 1.0, over normalized tokens with the document text truncated for cost.
func keywordOverlapScore(query, docText string, truncate int) float64 {
	qw := Tokens(query)
	if len(qw) == 0 {
		return 0
	}
	if truncate > 0 && len(docText) > truncate {
		docText = docText[:truncate]
	}
	dw := Tokens(docText)
	overlap := 0
	for w := range qw {
		if _, ok := dw[w]; ok {
			overlap++
		}
	}
	score := float64(overlap) / float64(len(qw))
	return math.Min(score, 1.0)
}

// CitationFilter deduplicates ranked hits, validates statute sections against
// the registry, and scores the survivors.
type CitationFilter struct {
	registry *statute.Registry
	c        *corpus.Corpus
	topK     int
	truncate int
}

// NewCitationFilter constructs a CitationFilter with the default limits.
func NewCitationFilter(registry *statute.Registry, c *corpus.Corpus) *CitationFilter {
	return &CitationFilter{registry: registry, c: c, topK: maxCitations, truncate: docTruncateSize}
}

// SetLimits overrides the citation cap and the document truncation bound.
// Non-positive values keep the current setting.
func (f *CitationFilter) SetLimits(topK, docTruncate int) {
	if topK > 0 {
		f.topK = topK
	}
	if docTruncate > 0 {
		f.truncate = docTruncate
	}
}

// Filter walks the ranked hits in order, dropping duplicates by
// (type, identifier) and statute entries whose section fails registry
// validation.  Each survivor receives a composite score of
// statute_priority*10 + keyword_relevance + relevance_score, where
// relevance_score averages the semantic and keyword-overlap signals.
// The top-scored citations are returned, at most the configured top-k;
// ordering is stable for equal totals so the ranked order carries through
// ties.
func (f *CitationFilter) Filter(hits []Hit, query string) []Citation {
	type scored struct {
		total float64
		c     Citation
	}

	seen := make(map[string]struct{})
	out := make([]scored, 0, len(hits))
	for _, h := range hits {
		doc, ok := f.c.Document(h.Index)
		if !ok {
			continue
		}
		key := string(doc.Type) + "\x00" + doc.Identifier
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		statuteName := strings.ToLower(doc.Statute)
		sectionNo := statute.ExtractSectionNo(doc.Identifier)
		if doc.Type == corpus.TypeStatute && !f.registry.SectionValid(statuteName, sectionNo) {
			continue
		}

		priority := statutePriorityFor(statuteName)
		kwRelevance := sectionRelevanceScore(doc.Identifier)
		semantic := semanticFromDistance(h.Distance)
		overlap := keywordOverlapScore(query, f.c.Text(h.Index), f.truncate)
		relevance := (semantic + overlap) / 2.0

		out = append(out, scored{
			total: float64(priority)*10 + float64(kwRelevance) + relevance,
			c: Citation{
				Type:           doc.Type,
				Identifier:     doc.Identifier,
				Statute:        doc.Statute,
				Source:         doc.Source,
				IsDeclaratory:  doc.Type == corpus.TypeStatute && statute.IsDeclaratoryICA(statuteName, sectionNo),
				RelevanceScore: roundTo4(relevance),
				ValidityScore:  1.0,
			},
		})
	}

	// Stable descending sort preserves rank order across equal totals.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].total > out[j].total
	})

	n := len(out)
	if n > f.topK {
		n = f.topK
	}
	citations := make([]Citation, 0, n)
	for _, s := range out[:n] {
		citations = append(citations, s.c)
	}
	return citations
}

func roundTo4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
