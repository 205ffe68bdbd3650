package milvus

import (
	"context"
	"fmt"
	"strings"

	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"github.com/swarakshak/vidhaan/internal/domain/corpus"
	"github.com/swarakshak/vidhaan/internal/infrastructure/monitoring/logging"
	"github.com/swarakshak/vidhaan/internal/retrieval"
	"github.com/swarakshak/vidhaan/pkg/errors"
)

const (
	fieldDocID     = "doc_id"
	fieldEmbedding = "embedding"

	// insertBatchSize bounds one insert call during sync.
	insertBatchSize = 512
)

// Index is the Milvus-backed vector index.  It satisfies the retrieval
// engine's index contract: search is restricted to the given candidate
// document indices via a server-side filter expression.
type Index struct {
	c   *Client
	log logging.Logger
}

// NewIndex wraps a connected client.
func NewIndex(c *Client, log logging.Logger) *Index {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Index{c: c, log: log}
}

// EnsureCollection creates and loads the collection when absent.  The schema
// is fixed: an int64 document index as primary key and the embedding vector.
func (i *Index) EnsureCollection(ctx context.Context) error {
	cfg := i.c.cfg

	has, err := i.c.mc.HasCollection(ctx, cfg.Collection)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeVectorIndexFailed, "checking collection")
	}
	if !has {
		schema := entity.NewSchema().
			WithName(cfg.Collection).
			WithDescription("statute section embeddings").
			WithField(entity.NewField().
				WithName(fieldDocID).
				WithDataType(entity.FieldTypeInt64).
				WithIsPrimaryKey(true)).
			WithField(entity.NewField().
				WithName(fieldEmbedding).
				WithDataType(entity.FieldTypeFloatVector).
				WithDim(int64(cfg.Dimension)))

		if err := i.c.mc.CreateCollection(ctx, schema, 1); err != nil {
			return errors.Wrap(err, errors.ErrCodeVectorIndexFailed, "creating collection")
		}
		idx, err := entity.NewIndexIvfFlat(entity.L2, 128)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeVectorIndexFailed, "building index params")
		}
		if err := i.c.mc.CreateIndex(ctx, cfg.Collection, fieldEmbedding, idx, false); err != nil {
			return errors.Wrap(err, errors.ErrCodeVectorIndexFailed, "creating vector index")
		}
		i.log.Info("collection created", logging.String("collection", cfg.Collection))
	}

	if err := i.c.mc.LoadCollection(ctx, cfg.Collection, false); err != nil {
		return errors.Wrap(err, errors.ErrCodeVectorIndexFailed, "loading collection")
	}
	return nil
}

// Sync mirrors the corpus vectors into the collection.  Existing rows with
// the same document index are overwritten, so re-running after a corpus
// reload is safe.
func (i *Index) Sync(ctx context.Context, c *corpus.Corpus) error {
	if !c.HasVectors() {
		return errors.New(errors.ErrCodeVectorIndexEmpty, "corpus carries no vectors to sync")
	}

	total := c.Len()
	for start := 0; start < total; start += insertBatchSize {
		end := start + insertBatchSize
		if end > total {
			end = total
		}

		ids := make([]int64, 0, end-start)
		vectors := make([][]float32, 0, end-start)
		for idx := start; idx < end; idx++ {
			v := c.Vector(idx)
			if v == nil {
				continue
			}
			ids = append(ids, int64(idx))
			vectors = append(vectors, v)
		}
		if len(ids) == 0 {
			continue
		}

		_, err := i.c.mc.Upsert(ctx, i.c.cfg.Collection, "",
			entity.NewColumnInt64(fieldDocID, ids),
			entity.NewColumnFloatVector(fieldEmbedding, i.c.cfg.Dimension, vectors))
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeVectorIndexFailed, "upserting vectors").
				WithDetail(fmt.Sprintf("batch=%d..%d", start, end))
		}
	}

	i.log.Info("corpus vectors synced",
		logging.String("collection", i.c.cfg.Collection),
		logging.Int("documents", total))
	return nil
}

// Search runs a candidate-restricted similarity search and returns hits as
// (document index, L2 distance) pairs ordered by the server.
func (i *Index) Search(ctx context.Context, vector []float32, candidates []int, k int) ([]retrieval.Hit, error) {
	if len(vector) == 0 {
		return nil, errors.New(errors.ErrCodeEmbeddingDimension, "query vector is empty")
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, i.c.cfg.RequestTimeout)
	defer cancel()

	sp, err := entity.NewIndexIvfFlatSearchParam(16)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeVectorIndexFailed, "building search params")
	}

	results, err := i.c.mc.Search(ctx, i.c.cfg.Collection, nil,
		candidateExpr(candidates),
		[]string{fieldDocID},
		[]entity.Vector{entity.FloatVector(vector)},
		fieldEmbedding, entity.L2, k, sp)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeVectorIndexFailed, "searching collection").
			WithDetail("collection=" + i.c.cfg.Collection)
	}

	var hits []retrieval.Hit
	for _, res := range results {
		idCol, ok := res.IDs.(*entity.ColumnInt64)
		if !ok {
			return nil, errors.New(errors.ErrCodeVectorIndexFailed, "unexpected id column type")
		}
		for row, id := range idCol.Data() {
			hits = append(hits, retrieval.Hit{
				Index:    int(id),
				Distance: float64(res.Scores[row]),
			})
		}
	}
	return hits, nil
}

// candidateExpr renders the candidate restriction as a Milvus filter.
func candidateExpr(candidates []int) string {
	parts := make([]string, len(candidates))
	for i, c := range candidates {
		parts[i] = fmt.Sprintf("%d", c)
	}
	return fieldDocID + " in [" + strings.Join(parts, ",") + "]"
}
