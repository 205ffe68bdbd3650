package corpus

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swarakshak/vidhaan/pkg/errors"
)

func sampleDocs() []Document {
	return []Document{
		{Type: TypeStatute, Identifier: "Section 27", Statute: "Indian Contract Act, 1872", Source: "ICA s27", Text: "Every agreement in restraint of trade is void."},
		{Type: TypeStatute, Identifier: "Section 25", Statute: "Indian Contract Act, 1872", Source: "ICA s25", Text: "An agreement made without consideration is void."},
		{Type: TypeJudgment, Identifier: "Niranjan Shankar Golikari", Source: "AIR 1967 SC 1098", Text: "Negative covenants operative during employment are not in restraint of trade."},
	}
}

func TestNew_AlignedVectors(t *testing.T) {
	docs := sampleDocs()
	vectors := [][]float32{{1, 0}, {0, 1}, {1, 1}}
	c, err := New(docs, vectors)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
	assert.True(t, c.HasVectors())
	assert.Equal(t, []float32{0, 1}, c.Vector(1))
}

func TestNew_MisalignedVectorsRejected(t *testing.T) {
	_, err := New(sampleDocs(), [][]float32{{1, 0}})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeCorpusInconsistent))
}

func TestNew_NoVectorsIsValid(t *testing.T) {
	c, err := New(sampleDocs(), nil)
	require.NoError(t, err)
	assert.False(t, c.HasVectors())
	assert.Nil(t, c.Vector(0))
}

func TestDocument_OutOfRange(t *testing.T) {
	c, err := New(sampleDocs(), nil)
	require.NoError(t, err)

	_, ok := c.Document(-1)
	assert.False(t, ok)
	_, ok = c.Document(3)
	assert.False(t, ok)
}

func TestText_FallsBackToSourceKey(t *testing.T) {
	docs := []Document{{Type: TypeStatute, Identifier: "Section 74", Statute: "Indian Contract Act, 1872"}}
	c, err := New(docs, nil)
	require.NoError(t, err)
	assert.Equal(t, "Indian Contract Act, 1872 Section 74", c.Text(0))
	assert.Equal(t, "", c.Text(9))
}

func TestSourceKey(t *testing.T) {
	d := Document{Source: "AIR 1967 SC 1098"}
	assert.Equal(t, "AIR 1967 SC 1098", d.SourceKey())

	d = Document{Statute: "Indian Contract Act, 1872", Identifier: "Section 27"}
	assert.Equal(t, "Indian Contract Act, 1872 Section 27", d.SourceKey())

	d = Document{Identifier: "Article 19"}
	assert.Equal(t, "Article 19", d.SourceKey())
}

func TestLoad_FromFiles(t *testing.T) {
	dir := t.TempDir()
	docsPath := filepath.Join(dir, "docs.json")
	vectorsPath := filepath.Join(dir, "vectors.json")

	docsRaw, err := json.Marshal(sampleDocs())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(docsPath, docsRaw, 0644))

	vecRaw, err := json.Marshal([][]float32{{1, 0}, {0, 1}, {1, 1}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(vectorsPath, vecRaw, 0644))

	c, err := Load(docsPath, vectorsPath)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
	assert.True(t, c.HasVectors())

	d, ok := c.Document(0)
	require.True(t, ok)
	assert.Equal(t, TypeStatute, d.Type)
	assert.Equal(t, "Section 27", d.Identifier)
}

func TestLoad_MissingVectorFileTolerated(t *testing.T) {
	dir := t.TempDir()
	docsPath := filepath.Join(dir, "docs.json")
	docsRaw, err := json.Marshal(sampleDocs())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(docsPath, docsRaw, 0644))

	c, err := Load(docsPath, filepath.Join(dir, "absent.json"))
	require.NoError(t, err)
	assert.False(t, c.HasVectors())
}

func TestLoad_MissingDocsFileFails(t *testing.T) {
	_, err := Load("/nonexistent/docs.json", "")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeCorpusLoadFailed))
}
