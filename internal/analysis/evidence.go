package analysis

import (
	"context"
	"math"

	"github.com/swarakshak/vidhaan/internal/domain/corpus"
	"github.com/swarakshak/vidhaan/internal/retrieval"
)

// groundingThreshold is the minimum similarity for a sentence to count as
// grounded in a source document.
const groundingThreshold = 0.75

// snippetLimit bounds the evidence snippet carried in the response.
const snippetLimit = 500

// Embedder maps text to a vector for cosine similarity.  When nil, evidence
// mapping falls back to Jaccard token overlap, which keeps grounding fully
// deterministic and offline.
type Embedder interface {
	Vectorize(ctx context.Context, text string) ([]float32, error)
}

// EvidenceEntry records how one analysis sentence is grounded in the cited
// corpus documents.
type EvidenceEntry struct {
	Sentence        string  `json:"sentence"`
	Evidence        string  `json:"evidence,omitempty"`
	EvidenceSnippet string  `json:"evidence_snippet,omitempty"`
	Score           float64 `json:"score"`
	Grounded        bool    `json:"grounded"`
}

// MapEvidence scores each sentence against every document and keeps the best
// match.  Similarity is embedding cosine when an embedder is supplied and its
// calls succeed, Jaccard token overlap otherwise.
func MapEvidence(ctx context.Context, sentences []string, docs []corpus.Document, emb Embedder) []EvidenceEntry {
	entries := make([]EvidenceEntry, 0, len(sentences))
	for _, sentence := range sentences {
		entry := EvidenceEntry{Sentence: sentence}
		best := -1.0
		for _, doc := range docs {
			score := similarity(ctx, sentence, doc.Text, emb)
			if score > best {
				best = score
				entry.Evidence = doc.SourceKey()
				entry.EvidenceSnippet = snippet(doc.Text)
			}
		}
		if best < 0 {
			best = 0
			entry.Evidence = ""
			entry.EvidenceSnippet = ""
		}
		entry.Score = roundTo3(best)
		entry.Grounded = best >= groundingThreshold
		entries = append(entries, entry)
	}
	return entries
}

// CoverageScore is the grounded fraction of the evidence map, rounded to two
// decimals.  An empty map scores zero.
func CoverageScore(entries []EvidenceEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	grounded := 0
	for _, e := range entries {
		if e.Grounded {
			grounded++
		}
	}
	return roundTo2(float64(grounded) / float64(len(entries)))
}

// AnnotateCitationSupport marks each citation as supported when its source
// key grounds at least one analysis sentence, and returns the per-source
// support map surfaced in the response.
func AnnotateCitationSupport(citations []retrieval.Citation, entries []EvidenceEntry) ([]retrieval.Citation, map[string]bool) {
	grounded := make(map[string]struct{})
	for _, e := range entries {
		if e.Grounded && e.Evidence != "" {
			grounded[e.Evidence] = struct{}{}
		}
	}

	out := make([]retrieval.Citation, len(citations))
	support := make(map[string]bool, len(citations))
	for i, c := range citations {
		_, ok := grounded[c.SourceKey()]
		c.SupportsClaim = ok
		out[i] = c
		support[c.SourceKey()] = ok
	}
	return out, support
}

func similarity(ctx context.Context, a, b string, emb Embedder) float64 {
	if emb != nil {
		va, errA := emb.Vectorize(ctx, a)
		vb, errB := emb.Vectorize(ctx, b)
		if errA == nil && errB == nil {
			if s, ok := cosine(va, vb); ok {
				return s
			}
		}
	}
	return jaccard(a, b)
}

func cosine(a, b []float32) (float64, bool) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, false
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), true
}

func jaccard(a, b string) float64 {
	ta := retrieval.Tokens(a)
	tb := retrieval.Tokens(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	inter := 0
	for w := range ta {
		if _, ok := tb[w]; ok {
			inter++
		}
	}
	union := len(ta) + len(tb) - inter
	return float64(inter) / float64(union)
}

func snippet(text string) string {
	if len(text) > snippetLimit {
		return text[:snippetLimit]
	}
	return text
}

func roundTo2(x float64) float64 { return math.Round(x*100) / 100 }

func roundTo3(x float64) float64 { return math.Round(x*1000) / 1000 }
