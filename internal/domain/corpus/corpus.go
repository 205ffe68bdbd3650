package corpus

import (
	"encoding/json"
	"os"

	"github.com/swarakshak/vidhaan/pkg/errors"
)

// Corpus is the immutable pairing of documents and their embedding vectors.
// Documents and Vectors are index-aligned; Vectors may be empty when ranking
// is delegated to an external vector index that holds its own copy.
type Corpus struct {
	docs    []Document
	vectors [][]float32
}

// New constructs a Corpus from pre-loaded slices.  When vectors is non-empty
// its length must equal the document count.
func New(docs []Document, vectors [][]float32) (*Corpus, error) {
	if len(vectors) > 0 && len(vectors) != len(docs) {
		return nil, errors.Newf(errors.ErrCodeCorpusInconsistent,
			"document count %d does not match vector count %d", len(docs), len(vectors))
	}
	return &Corpus{docs: docs, vectors: vectors}, nil
}

// Load reads the document list from docsPath and, when vectorsPath is
// non-empty, the embedding matrix from vectorsPath.  Both files are JSON.
func Load(docsPath, vectorsPath string) (*Corpus, error) {
	raw, err := os.ReadFile(docsPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCorpusLoadFailed, "reading document file").
			WithDetail("path=" + docsPath)
	}
	var docs []Document
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCorpusLoadFailed, "parsing document file").
			WithDetail("path=" + docsPath)
	}

	var vectors [][]float32
	if vectorsPath != "" {
		raw, err := os.ReadFile(vectorsPath)
		if err == nil {
			if err := json.Unmarshal(raw, &vectors); err != nil {
				return nil, errors.Wrap(err, errors.ErrCodeCorpusLoadFailed, "parsing vector file").
					WithDetail("path=" + vectorsPath)
			}
		}
		// A missing vector file is tolerated: ranking may run against an
		// external index instead of in-process vectors.
	}

	return New(docs, vectors)
}

// Len returns the number of documents.
func (c *Corpus) Len() int { return len(c.docs) }

// Document returns the document at index i.  The boolean is false when i is
// out of range.
func (c *Corpus) Document(i int) (Document, bool) {
	if i < 0 || i >= len(c.docs) {
		return Document{}, false
	}
	return c.docs[i], true
}

// Vector returns the embedding vector at index i, or nil when the corpus
// carries no in-process vectors or i is out of range.
func (c *Corpus) Vector(i int) []float32 {
	if i < 0 || i >= len(c.vectors) {
		return nil
	}
	return c.vectors[i]
}

// HasVectors reports whether the corpus carries in-process vectors.
func (c *Corpus) HasVectors() bool { return len(c.vectors) > 0 }

// Text returns the document text at index i, falling back to the
// "<statute> <identifier>" pair when the index is out of range.  Ranking and
// overlap scoring never fail on a missing document body.
func (c *Corpus) Text(i int) string {
	if d, ok := c.Document(i); ok && d.Text != "" {
		return d.Text
	}
	if d, ok := c.Document(i); ok {
		return d.SourceKey()
	}
	return ""
}
