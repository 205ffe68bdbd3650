package retrieval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swarakshak/vidhaan/internal/domain/corpus"
	"github.com/swarakshak/vidhaan/internal/domain/statute"
)

// fixtureDocs is the shared corpus for retrieval tests: two Indian Contract
// Act sections, an Industrial Disputes Act section, a judgment, and a statute
// entry whose section is absent from the registry.
func fixtureDocs() []corpus.Document {
	return []corpus.Document{
		{
			Type:       corpus.TypeStatute,
			Identifier: "Section 27",
			Statute:    "Indian Contract Act, 1872",
			Source:     "ICA s27",
			Text:       "Every agreement by which any one is restrained from exercising a lawful profession, trade or business of any kind, is to that extent void.",
		},
		{
			Type:       corpus.TypeStatute,
			Identifier: "Section 25",
			Statute:    "Indian Contract Act, 1872",
			Source:     "ICA s25",
			Text:       "An agreement made without consideration is void, unless it falls within the stated exceptions.",
		},
		{
			Type:       corpus.TypeStatute,
			Identifier: "Section 25F conditions precedent to retrenchment termination",
			Statute:    "Industrial Disputes Act, 1947",
			Source:     "IDA s25F",
			Text:       "No workman employed in any industry who has been in continuous service shall be retrenched until notice and compensation conditions are met.",
		},
		{
			Type:       corpus.TypeJudgment,
			Identifier: "Niranjan Shankar Golikari v. Century Spinning (1967)",
			Statute:    "Indian Contract Act, 1872",
			Source:     "Golikari 1967",
			Text:       "Restraints operative during the period of the contract of employment are generally not hit by Section 27.",
		},
		{
			Type:       corpus.TypeStatute,
			Identifier: "Section 999",
			Statute:    "Indian Contract Act, 1872",
			Source:     "ICA s999",
			Text:       "A fabricated section that must never survive registry validation.",
		},
	}
}

func fixtureRegistry() *statute.Registry {
	return statute.NewRegistry(map[string][]string{
		"indian contract act":     {"11", "25", "27", "28", "30", "56", "73", "74", "124", "125"},
		"industrial disputes act": {"25f", "25g", "25n"},
	})
}

// fixtureCorpus fits TF-IDF vectors over the fixture documents so ranking and
// filtering operate on a coherent vector space.
func fixtureCorpus(t *testing.T) (*corpus.Corpus, *TFIDFVectorizer) {
	t.Helper()
	docs := fixtureDocs()
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}
	vec := FitTFIDF(texts)
	vectors := make([][]float32, len(docs))
	for i, text := range texts {
		vectors[i] = vec.Transform(text)
	}
	c, err := corpus.New(docs, vectors)
	require.NoError(t, err)
	return c, vec
}

func TestCitationFilterValidatesAgainstRegistry(t *testing.T) {
	t.Parallel()

	c, _ := fixtureCorpus(t)
	f := NewCitationFilter(fixtureRegistry(), c)

	hits := []Hit{{Index: 4, Distance: 0.1}, {Index: 0, Distance: 0.5}}
	got := f.Filter(hits, "restraint of trade")
	require.Len(t, got, 1)
	assert.Equal(t, "Section 27", got[0].Identifier)
}

func TestCitationFilterDeduplicates(t *testing.T) {
	t.Parallel()

	c, _ := fixtureCorpus(t)
	f := NewCitationFilter(fixtureRegistry(), c)

	hits := []Hit{{Index: 0, Distance: 0.1}, {Index: 0, Distance: 0.2}, {Index: 1, Distance: 0.3}}
	got := f.Filter(hits, "void agreement")
	require.Len(t, got, 2)
	assert.NotEqual(t, got[0].Identifier, got[1].Identifier)
}

func TestCitationFilterAuthorityDominates(t *testing.T) {
	t.Parallel()

	c, _ := fixtureCorpus(t)
	f := NewCitationFilter(fixtureRegistry(), c)

	// ICA s27 sits closer to the query, but the Industrial Disputes Act
	// carries priority 3 against ICA's 1: a 20-point gap no lexical signal
	// can close.
	hits := []Hit{{Index: 0, Distance: 0.0}, {Index: 2, Distance: 5.0}}
	got := f.Filter(hits, "termination of a workman")
	require.Len(t, got, 2)
	assert.Contains(t, got[0].Statute, "Industrial Disputes Act")
}

func TestCitationFilterMarksDeclaratorySections(t *testing.T) {
	t.Parallel()

	c, _ := fixtureCorpus(t)
	f := NewCitationFilter(fixtureRegistry(), c)

	got := f.Filter([]Hit{{Index: 0, Distance: 0.2}, {Index: 2, Distance: 0.2}}, "restraint")
	require.Len(t, got, 2)
	for _, cit := range got {
		switch cit.Identifier {
		case "Section 27":
			assert.True(t, cit.IsDeclaratory)
		default:
			assert.False(t, cit.IsDeclaratory)
		}
	}
}

func TestCitationFilterScoreShape(t *testing.T) {
	t.Parallel()

	c, _ := fixtureCorpus(t)
	f := NewCitationFilter(fixtureRegistry(), c)

	got := f.Filter([]Hit{{Index: 0, Distance: 0.5}}, "agreement void restraint")
	require.Len(t, got, 1)
	assert.Equal(t, 1.0, got[0].ValidityScore)
	assert.GreaterOrEqual(t, got[0].RelevanceScore, 0.0)
	assert.LessOrEqual(t, got[0].RelevanceScore, 1.0)
	// Four decimal places.
	assert.Equal(t, roundTo4(got[0].RelevanceScore), got[0].RelevanceScore)
}

func TestCitationFilterCapsOutput(t *testing.T) {
	t.Parallel()

	docs := make([]corpus.Document, 10)
	for i := range docs {
		docs[i] = corpus.Document{
			Type:       corpus.TypeJudgment,
			Identifier: "Case " + string(rune('A'+i)),
			Statute:    "Indian Contract Act, 1872",
			Source:     "case",
			Text:       "judgment text",
		}
	}
	c, err := corpus.New(docs, nil)
	require.NoError(t, err)
	f := NewCitationFilter(fixtureRegistry(), c)

	hits := make([]Hit, len(docs))
	for i := range hits {
		hits[i] = Hit{Index: i, Distance: float64(i)}
	}
	got := f.Filter(hits, "judgment")
	assert.Len(t, got, maxCitations)

	// A configured top-k overrides the default cap.
	f.SetLimits(2, 0)
	got = f.Filter(hits, "judgment")
	assert.Len(t, got, 2)
}

func TestCitationFilterTruncationLimit(t *testing.T) {
	t.Parallel()

	// The matching term sits beyond the truncation bound, so a tight limit
	// zeroes the overlap contribution and lowers the relevance score.
	padding := strings.Repeat("x ", 50)
	docs := []corpus.Document{{
		Type:       corpus.TypeJudgment,
		Identifier: "Case A",
		Statute:    "Indian Contract Act, 1872",
		Source:     "case",
		Text:       padding + "retrenchment",
	}}
	c, err := corpus.New(docs, nil)
	require.NoError(t, err)

	full := NewCitationFilter(fixtureRegistry(), c)
	fullGot := full.Filter([]Hit{{Index: 0, Distance: 0.5}}, "retrenchment")
	require.Len(t, fullGot, 1)

	tight := NewCitationFilter(fixtureRegistry(), c)
	tight.SetLimits(0, 10)
	tightGot := tight.Filter([]Hit{{Index: 0, Distance: 0.5}}, "retrenchment")
	require.Len(t, tightGot, 1)

	assert.Less(t, tightGot[0].RelevanceScore, fullGot[0].RelevanceScore)
}

func TestKeywordOverlapScore(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.0, keywordOverlapScore("void agreement", "every void agreement is listed", docTruncateSize))
	assert.Equal(t, 0.5, keywordOverlapScore("void contract", "a void promise", docTruncateSize))
	assert.Equal(t, 0.0, keywordOverlapScore("", "anything", docTruncateSize))
	assert.Equal(t, 0.0, keywordOverlapScore("totally unrelated", "statute text", docTruncateSize))
}

func TestSemanticFromDistance(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.0, semanticFromDistance(0))
	assert.Equal(t, 0.5, semanticFromDistance(1))
	// Negative distances clamp to the maximum score.
	assert.Equal(t, 1.0, semanticFromDistance(-3))
}
