package ask

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swarakshak/vidhaan/internal/domain/corpus"
	"github.com/swarakshak/vidhaan/internal/domain/statute"
	"github.com/swarakshak/vidhaan/internal/intelligence/textgen"
	"github.com/swarakshak/vidhaan/internal/retrieval"
)

type recordingGenerator struct {
	reply string
	calls int
}

func (g *recordingGenerator) Generate(_ context.Context, _, user string) (string, error) {
	g.calls++
	if g.reply != "" {
		return g.reply, nil
	}
	return user, nil
}

func newCorpus(t *testing.T, docs []corpus.Document) *corpus.Corpus {
	t.Helper()
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}
	vec := retrieval.FitTFIDF(texts)
	vectors := make([][]float32, len(docs))
	for i, text := range texts {
		vectors[i] = vec.Transform(text)
	}
	c, err := corpus.New(docs, vectors)
	require.NoError(t, err)
	return c
}

func contractDocs() []corpus.Document {
	return []corpus.Document{
		{
			Type:       corpus.TypeStatute,
			Identifier: "Section 27",
			Statute:    "Indian Contract Act, 1872",
			Source:     "ICA s27",
			Text:       "Every agreement in restraint of trade is void to that extent.",
		},
		{
			Type:       corpus.TypeStatute,
			Identifier: "Section 74",
			Statute:    "Indian Contract Act, 1872",
			Source:     "ICA s74",
			Text:       "Compensation for breach of contract where penalty is stipulated for.",
		},
		{
			Type:       corpus.TypeStatute,
			Identifier: "Section 25F termination retrenchment notice",
			Statute:    "Industrial Disputes Act, 1947",
			Source:     "IDA s25F",
			Text:       "Conditions precedent to retrenchment of workmen: notice and compensation.",
		},
	}
}

func newService(t *testing.T, docs []corpus.Document, gen textgen.Generator) *Service {
	t.Helper()
	c := newCorpus(t, docs)
	reg := statute.NewRegistry(map[string][]string{
		"indian contract act":     {"25", "27", "74"},
		"industrial disputes act": {"25f"},
	})
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}
	vec := retrieval.FitTFIDF(texts)
	idx, err := retrieval.NewExactIndex(c)
	require.NoError(t, err)

	engine := retrieval.NewEngine(c,
		retrieval.NewRanker(vec, idx),
		retrieval.NewCitationFilter(reg, c),
		24, nil)
	return NewService(engine, textgen.NewRewriter(gen, time.Second), nil, nil)
}

func TestAskForeignQueryRefused(t *testing.T) {
	t.Parallel()

	gen := &recordingGenerator{}
	svc := newService(t, contractDocs(), gen)

	resp, err := svc.Ask(context.Background(), "Is this NDA valid under UK law?", "")
	require.NoError(t, err)

	assert.Equal(t, "refused", resp.Status)
	assert.Equal(t, "foreign_jurisdiction", resp.Domain)
	assert.Equal(t, reasonForeignScope, resp.Reason)
	assert.NotEmpty(t, resp.QueryID)
	assert.NotEmpty(t, resp.Timestamp)
	// The gate fires before any model call.
	assert.Zero(t, gen.calls)
}

func TestAskClauseSkipsRewriteAndEnrichment(t *testing.T) {
	t.Parallel()

	gen := &recordingGenerator{reply: "should never be the rewritten query"}
	svc := newService(t, contractDocs(), gen)

	const clause = "Each party shall keep Confidential Information strictly confidential."
	resp, err := svc.Ask(context.Background(), clause, "stale enrichment")
	require.NoError(t, err)

	assert.Equal(t, clause, resp.OriginalQuery)
	assert.Equal(t, clause, resp.RewrittenQuery)
	assert.Equal(t, "contract_clause", resp.Domain)
	assert.Equal(t, "legal_with_conditions", resp.Status)
	assert.Equal(t, "Indian Contract Act, 1872", resp.LawBasis)
}

func TestAskQuestionPathUsesRewrite(t *testing.T) {
	t.Parallel()

	gen := &recordingGenerator{reply: "enforceability of penalty clauses in Indian contracts"}
	svc := newService(t, contractDocs(), gen)

	resp, err := svc.Ask(context.Background(), "can they make me pay a penalty?", "")
	require.NoError(t, err)

	assert.Equal(t, "can they make me pay a penalty?", resp.OriginalQuery)
	assert.Equal(t, gen.reply, resp.RewrittenQuery)
	assert.GreaterOrEqual(t, gen.calls, 1)
}

func TestAskEmptyQueryRefusedAsRewriteFailure(t *testing.T) {
	t.Parallel()

	svc := newService(t, contractDocs(), nil)

	resp, err := svc.Ask(context.Background(), "   ", "")
	require.NoError(t, err)
	assert.Equal(t, "refused", resp.Status)
	assert.Equal(t, "rewrite_failure", resp.Domain)
	assert.Equal(t, reasonRewriteFailed, resp.Reason)
}

func TestAskResponseShape(t *testing.T) {
	t.Parallel()

	svc := newService(t, contractDocs(), nil)

	resp, err := svc.Ask(context.Background(), "Is an arbitration clause valid under Indian law?", "")
	require.NoError(t, err)

	assert.Equal(t, "legal", resp.Status)
	assert.Equal(t, "contract_law", resp.Domain)
	assert.Equal(t, "low", resp.RiskLevel)
	assert.Equal(t, "Arbitration & Conciliation Act, 1996", resp.LawBasis)
	assert.Contains(t, resp.AnalysisRaw, "Final Verdict: YES")
	assert.NotNil(t, resp.EvidenceMap)
	assert.NotNil(t, resp.CitationSupportMap)
	assert.GreaterOrEqual(t, resp.Confidence, 0.0)
	assert.LessOrEqual(t, resp.Confidence, 0.9)

	_, err = time.Parse(time.RFC3339Nano, resp.Timestamp)
	assert.NoError(t, err)
}

func TestAskEnrichmentAffectsRetrievalOnly(t *testing.T) {
	t.Parallel()

	// Enrichment steers classification toward the labour domain even though
	// the rewritten query alone would not reach it.
	svc := newService(t, contractDocs(), nil)

	resp, err := svc.Ask(context.Background(), "what notice must be given before that action", "labour industrial retrench")
	require.NoError(t, err)

	assert.Equal(t, "labour_law", resp.Domain)
	// The rewritten query surfaced to the caller stays free of enrichment.
	assert.Equal(t, "what notice must be given before that action", resp.RewrittenQuery)
}

func TestSplitSentences(t *testing.T) {
	t.Parallel()

	got := splitSentences("First point. Second point? Third!  ")
	assert.Equal(t, []string{"First point", "Second point", "Third"}, got)
	assert.Empty(t, splitSentences(""))
}

func TestLooksLikeContractClause(t *testing.T) {
	t.Parallel()

	assert.True(t, looksLikeContractClause("Neither Party shall disclose the terms."))
	assert.True(t, looksLikeContractClause("This agreement is governed by the laws of India."))
	assert.False(t, looksLikeContractClause("Is a confidentiality clause enforceable?"))
}

func TestDocsFromCitations(t *testing.T) {
	t.Parallel()

	docs := docsFromCitations([]retrieval.Citation{
		{Type: corpus.TypeStatute, Identifier: "Section 27", Statute: "Indian Contract Act, 1872", Source: "ICA s27"},
		{Type: corpus.TypeJudgment, Identifier: "Golikari"},
	})
	require.Len(t, docs, 2)
	assert.Equal(t, "Indian Contract Act, 1872 Section 27", docs[0].Text)
	assert.Equal(t, "ICA s27", docs[0].Source)
	assert.Equal(t, "Golikari", docs[1].Text)
}
