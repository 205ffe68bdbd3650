package textgen

import (
	"context"
	"strings"
	"time"
)

// systemPromptRewrite steers the model toward neutral, retrieval-ready
// phrasing without letting it answer the question.
const systemPromptRewrite = `You are a legal query normalizer for Indian law research systems.

Your task is to rewrite the user's question into a neutral,
fact-focused, and search-optimized legal question suitable for
retrieving Indian statutes or Indian court judgments.

STRICT RULES:
- Do NOT answer the question.
- Do NOT add legal conclusions or opinions.
- Do NOT mention sections, articles, or case names.
- Do NOT change the intent of the question.
- Preserve the original legal issue.
- Use clear nouns and verbs commonly used in legal texts.
- If the question is already precise and searchable, return it unchanged.

Output ONLY the rewritten question in formal English.
No explanations. No extra text.`

// systemPromptRefine simplifies legal prose for non-lawyers without altering
// its conclusion.
const systemPromptRefine = `You are a legal explanation simplifier.

Your task is to rewrite the given legal explanation in very simple,
clear, and user-friendly English so that a non-lawyer can understand it.

RULES:
- Do NOT add new legal reasoning.
- Do NOT change the conclusion or risk level.
- Do NOT cite new laws, sections, or cases.
- Do NOT give legal advice.
- Keep the meaning exactly the same.
- Avoid complex legal language.

Output ONLY the simplified explanation.`

const (
	// minRewriteInput skips rewriting for inputs too short to normalize.
	minRewriteInput = 5
	// minRewriteWords rejects degenerate model output.
	minRewriteWords = 4
	// minRefineInput skips refinement for trivially short analysis lines.
	minRefineInput = 10

	defaultRewriteTimeout = 20 * time.Second
)

// Rewriter normalizes user queries and simplifies analysis prose through a
// Generator.  Every path fails safe: when the model is unavailable or returns
// garbage the original text is used unchanged.
type Rewriter struct {
	gen     Generator
	timeout time.Duration
}

// NewRewriter builds a Rewriter.  A nil generator yields a pass-through
// rewriter, which keeps the engine fully offline-capable.
func NewRewriter(gen Generator, timeout time.Duration) *Rewriter {
	if timeout <= 0 {
		timeout = defaultRewriteTimeout
	}
	return &Rewriter{gen: gen, timeout: timeout}
}

// Rewrite normalizes a user query for retrieval.  Short inputs, model
// failures, and replies under the word floor all fall back to the original.
func (r *Rewriter) Rewrite(ctx context.Context, query string) string {
	if r.gen == nil || len(strings.TrimSpace(query)) < minRewriteInput {
		return query
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rewritten, err := r.gen.Generate(ctx, systemPromptRewrite, query)
	if err != nil || rewritten == "" {
		return query
	}
	if len(strings.Fields(rewritten)) < minRewriteWords {
		return query
	}
	return rewritten
}

// Refine simplifies one analysis line for end users, falling back to the
// input on any failure.
func (r *Rewriter) Refine(ctx context.Context, text string) string {
	if r.gen == nil || len(strings.TrimSpace(text)) < minRefineInput {
		return text
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	refined, err := r.gen.Generate(ctx, systemPromptRefine, text)
	if err != nil || refined == "" {
		return text
	}
	return refined
}
