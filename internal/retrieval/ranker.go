package retrieval

import (
	"context"
	"math"
	"sort"

	"github.com/swarakshak/vidhaan/internal/domain/corpus"
	"github.com/swarakshak/vidhaan/pkg/errors"
)

// Vectorizer maps text into the same vector space the corpus was embedded in.
// Implementations include the in-process TF-IDF vectorizer and the external
// embedding-service client; ranking is agnostic to which one is wired in.
type Vectorizer interface {
	Vectorize(ctx context.Context, text string) ([]float32, error)
}

// Hit is one ranked document: the corpus index and its distance to the query.
type Hit struct {
	Index    int
	Distance float64
}

// Index ranks the candidate documents by ascending distance to a query
// vector.  Implementations must respect the candidate restriction: documents
// outside candidates never appear in the result.
type Index interface {
	Search(ctx context.Context, vector []float32, candidates []int, k int) ([]Hit, error)
}

// Ranker pairs a Vectorizer with an Index and applies the engine's
// determinism rule: equal distances are broken by ascending document index.
type Ranker struct {
	vectorizer Vectorizer
	index      Index
}

// NewRanker constructs a Ranker.
func NewRanker(v Vectorizer, idx Index) *Ranker {
	return &Ranker{vectorizer: v, index: idx}
}

// Rank embeds the query and searches the candidate set, returning up to k
// hits sorted by ascending distance with index-order tie-breaks.  An empty
// candidate list yields an empty result without touching the vectorizer;
// vectorizer or index failures propagate as transport errors.
func (r *Ranker) Rank(ctx context.Context, query string, candidates []int, k int) ([]Hit, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	vec, err := r.vectorizer.Vectorize(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeEmbeddingFailed, "vectorizing query")
	}
	hits, err := r.index.Search(ctx, vec, candidates, k)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeVectorIndexFailed, "searching candidate index")
	}
	sortHits(hits)
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// distanceScale quantizes distances before comparison.  Corpus vectors are
// stored as float32, so mathematically equal distances can differ at the
// 1e-7 level; without quantization the index tie-break would never engage.
const distanceScale = 1e6

// sortHits orders by ascending distance, ties broken by ascending document
// index so identical queries always produce identical orderings.
func sortHits(hits []Hit) {
	sort.SliceStable(hits, func(i, j int) bool {
		di := math.Round(hits[i].Distance * distanceScale)
		dj := math.Round(hits[j].Distance * distanceScale)
		if di != dj {
			return di < dj
		}
		return hits[i].Index < hits[j].Index
	})
}

// ExactIndex is the default in-process Index: an ephemeral exact L2 search
// over the corpus's own vectors, restricted to the candidate subset.  It
// mirrors building a flat sub-index per query, so ranking is confined to
// domain-eligible documents only.
type ExactIndex struct {
	c *corpus.Corpus
}

// NewExactIndex constructs an ExactIndex over the corpus vectors.
func NewExactIndex(c *corpus.Corpus) (*ExactIndex, error) {
	if !c.HasVectors() {
		return nil, errors.New(errors.ErrCodeVectorIndexEmpty, "corpus carries no in-process vectors")
	}
	return &ExactIndex{c: c}, nil
}

// Search computes squared L2 distance between the query vector and every
// candidate's vector.  Candidates without a stored vector are skipped.
func (e *ExactIndex) Search(_ context.Context, vector []float32, candidates []int, k int) ([]Hit, error) {
	if len(vector) == 0 {
		return nil, errors.New(errors.ErrCodeEmbeddingDimension, "query vector is empty")
	}
	hits := make([]Hit, 0, len(candidates))
	for _, idx := range candidates {
		dv := e.c.Vector(idx)
		if dv == nil {
			continue
		}
		if len(dv) != len(vector) {
			return nil, errors.Newf(errors.ErrCodeEmbeddingDimension,
				"document vector dimension %d does not match query dimension %d", len(dv), len(vector))
		}
		var sum float64
		for i := range vector {
			d := float64(vector[i]) - float64(dv[i])
			sum += d * d
		}
		hits = append(hits, Hit{Index: idx, Distance: sum})
	}
	sortHits(hits)
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}
