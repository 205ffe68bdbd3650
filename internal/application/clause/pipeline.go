package clause

import (
	"context"
	"strings"

	"github.com/swarakshak/vidhaan/internal/application/ask"
	"github.com/swarakshak/vidhaan/internal/infrastructure/monitoring/logging"
	"github.com/swarakshak/vidhaan/internal/intelligence/textgen"
)

// draftSystemPrompt keeps drafted clauses within NDA territory and free of
// criminal language the law engine would have to reject anyway.
const draftSystemPrompt = `You are an Indian contract drafting assistant.

Draft a SINGLE NDA clause in formal legal English.
Rules:
- Civil liability only
- No criminal language
- No police, jail, FIR, punishment
- NDA context only
- Do NOT mention sections or cases
Return ONLY clause text.`

// verifierQueryPrefix frames the drafted clause as a legality question for
// the Indian-law engine.
const verifierQueryPrefix = "Enforceability of the following NDA clause under Indian contract law: "

const (
	reasonIntentNotUnderstood = "Intent not understood"
	reasonDraftingFailed      = "Clause drafting failed"

	// newClauseNumber marks clauses appended by the pipeline; contract
	// renumbering happens at render time, not here.
	newClauseNumber = "NEW"
	newClauseTitle  = "Custom NDA Clause"
)

// Clause is one clause of a contract document.
type Clause struct {
	ClauseNumber string `json:"clause_number"`
	Title        string `json:"title"`
	Text         string `json:"text"`
}

// Contract is the mutable NDA document clauses are appended to.
type Contract struct {
	Clauses []Clause `json:"clauses"`
}

// Result is the pipeline outcome: the clause was added, or the rejection
// stage and reason.
type Result struct {
	Status   string      `json:"status"`
	Reason   string      `json:"reason,omitempty"`
	Clause   *Clause     `json:"clause,omitempty"`
	Analysis *Validation `json:"analysis,omitempty"`
}

// Verifier answers a legality query about drafted clause text.
type Verifier interface {
	Ask(ctx context.Context, query, enrichment string) (ask.Response, error)
}

// Pipeline drafts, guards, verifies, and appends custom NDA clauses.
type Pipeline struct {
	drafter  textgen.Generator
	verifier Verifier
	log      logging.Logger
}

// NewPipeline wires the pipeline stages.
func NewPipeline(drafter textgen.Generator, verifier Verifier, log logging.Logger) *Pipeline {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Pipeline{drafter: drafter, verifier: verifier, log: log}
}

// Process runs one user request through the pipeline.  Rejections are
// regular results; an error is returned only when the law engine itself
// fails.
func (p *Pipeline) Process(ctx context.Context, userInput string, contract *Contract) (Result, error) {
	intent := DetectIntent(userInput)
	if intent == IntentUnknown {
		return Result{Status: statusRejected, Reason: reasonIntentNotUnderstood}, nil
	}

	clauseText := p.draft(ctx, userInput)
	if clauseText == "" {
		return Result{Status: statusRejected, Reason: reasonDraftingFailed}, nil
	}
	clauseIntent := DetectClauseIntent(clauseText)

	if ViolatesMandatoryDisclosure(clauseText) {
		p.log.Info("clause rejected by disclosure guard", logging.String("intent", string(intent)))
		return Result{Status: statusRejected, Reason: reasonMandatoryDisclosure}, nil
	}

	law, err := p.verifier.Ask(ctx, verifierQueryPrefix+clauseText, "")
	if err != nil {
		return Result{}, err
	}

	validation := ValidateClause(law, clauseIntent)
	if validation.Status != statusApproved {
		p.log.Info("clause rejected by validator",
			logging.String("law_status", law.Status),
			logging.String("reason", validation.Reason))
		return Result{Status: validation.Status, Reason: validation.Reason}, nil
	}

	added := Clause{ClauseNumber: newClauseNumber, Title: newClauseTitle, Text: clauseText}
	contract.Clauses = append(contract.Clauses, added)
	return Result{Status: "added", Clause: &added, Analysis: &validation}, nil
}

func (p *Pipeline) draft(ctx context.Context, userInput string) string {
	if p.drafter == nil {
		return ""
	}
	text, err := p.drafter.Generate(ctx, draftSystemPrompt, "User requirement: "+userInput)
	if err != nil {
		p.log.Warn("clause drafting failed", logging.Err(err))
		return ""
	}
	return strings.TrimSpace(text)
}
