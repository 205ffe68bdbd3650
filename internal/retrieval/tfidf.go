package retrieval

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strings"
)

// tfidfTokenRe matches word tokens of two or more characters, the same shape
// the corpus vectors were fitted with.
var tfidfTokenRe = regexp.MustCompile(`\w\w+`)

// TFIDFVectorizer is a deterministic in-process Vectorizer: term-frequency
// weighted by smoothed inverse document frequency, L2-normalized.  The
// vocabulary is fixed at fit time; query terms outside it are ignored, which
// keeps query vectors in the exact space of the corpus vectors.
type TFIDFVectorizer struct {
	vocab []string
	pos   map[string]int
	idf   []float64
}

// FitTFIDF builds a vectorizer from the corpus document texts.
func FitTFIDF(docs []string) *TFIDFVectorizer {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range tfidfTokens(doc) {
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				df[tok]++
			}
		}
	}

	vocab := make([]string, 0, len(df))
	for term := range df {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)

	n := len(docs)
	pos := make(map[string]int, len(vocab))
	idf := make([]float64, len(vocab))
	for i, term := range vocab {
		pos[term] = i
		// Smoothed idf: ln((1+n)/(1+df)) + 1.
		idf[i] = math.Log(float64(1+n)/float64(1+df[term])) + 1
	}

	return &TFIDFVectorizer{vocab: vocab, pos: pos, idf: idf}
}

// Dimension returns the vocabulary size.
func (v *TFIDFVectorizer) Dimension() int { return len(v.vocab) }

// Transform maps text into the fitted vector space.
func (v *TFIDFVectorizer) Transform(text string) []float32 {
	vec := make([]float64, len(v.vocab))
	for _, tok := range tfidfTokens(text) {
		if i, ok := v.pos[tok]; ok {
			vec[i] += v.idf[i]
		}
	}

	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	out := make([]float32, len(vec))
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i, x := range vec {
			out[i] = float32(x / norm)
		}
	}
	return out
}

// Vectorize implements Vectorizer.  It never fails: out-of-vocabulary queries
// produce the zero vector, which ranks all candidates at equal distance and
// leaves the index tie-break to decide ordering.
func (v *TFIDFVectorizer) Vectorize(_ context.Context, text string) ([]float32, error) {
	return v.Transform(text), nil
}

func tfidfTokens(text string) []string {
	return tfidfTokenRe.FindAllString(strings.ToLower(text), -1)
}
