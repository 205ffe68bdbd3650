// Package analysis turns a retrieval result into user-facing prose: the
// non-advice framed analysis lines, the final verdict line, sentence-level
// evidence grounding, and the composite confidence score.
package analysis

import "github.com/swarakshak/vidhaan/internal/retrieval"

// NonAdvicePrefix frames every substantive analysis as informational.  The
// wording is load-bearing for compliance and must not drift.
const NonAdvicePrefix = "Based on applicable Indian law and judicial interpretation, the following position emerges for informational purposes only: "

// noSourceFallback is emitted when a refusal or no-source result carries no
// reason of its own.
const noSourceFallback = "No authoritative Indian legal source could be identified for the given query."

// verdictLines maps each verdict to its fixed closing line.
var verdictLines = map[retrieval.Verdict]string{
	retrieval.VerdictLegal:   "Final Verdict: YES (This is legally allowed under Indian law.)",
	retrieval.VerdictIllegal: "Final Verdict: NO (This is not legally allowed in most cases.)",
	retrieval.VerdictDepends: "Final Verdict: DEPENDS (This depends on conditions and facts.)",
	retrieval.VerdictUnknown: "Final Verdict: NOT CLEAR (Law does not give a clear answer.)",
}

const verdictLineDefault = "Final Verdict: DEPENDS (Outcome depends on legal details.)"

// genericAnalysis supplies domain-level prose when no base case matched and
// the verdict rests on ranked citations alone.
var genericAnalysis = map[retrieval.Domain]string{
	retrieval.DomainEmploymentContract: "Employment relationships in India are regulated by statutory labour protections, and any termination or disciplinary action must comply with applicable law.",
	retrieval.DomainLabourLaw:          "Labour-related matters in India are governed by welfare legislation intended to protect workmen against arbitrary action.",
	retrieval.DomainContractClause:     "Contractual clauses are enforceable in India subject to statutory limitations, public policy considerations, and judicial scrutiny.",
}

const genericAnalysisDefault = "The legal position depends on applicable Indian statutes and judicial precedents."

// VerdictLine returns the fixed closing line for a verdict.  When the verdict
// is absent the line is derived from the result's status and risk.
func VerdictLine(res retrieval.Result) string {
	if line, ok := verdictLines[res.Verdict]; ok {
		return line
	}
	switch {
	case res.Status == retrieval.StatusIllegal || res.Risk == retrieval.RiskHigh:
		return verdictLines[retrieval.VerdictIllegal]
	case res.Status == retrieval.StatusLegal:
		return verdictLines[retrieval.VerdictLegal]
	case res.Status == retrieval.StatusLegalWithConditions || res.Risk == retrieval.RiskMedium:
		return verdictLines[retrieval.VerdictDepends]
	case res.Status == retrieval.StatusNoSource:
		return verdictLines[retrieval.VerdictUnknown]
	}
	return verdictLineDefault
}

// Generate renders the analysis lines for a retrieval result.  Refused and
// unsourced results surface the refusal reason followed by the verdict line;
// everything else leads with the non-advice prefix.
func Generate(res retrieval.Result) []string {
	if res.Status == retrieval.StatusRefused || res.Status == retrieval.StatusNoSource {
		reason := res.Reason
		if reason == "" {
			reason = noSourceFallback
		}
		return []string{reason, VerdictLine(res)}
	}

	body := res.Analysis
	if body == "" {
		body = genericAnalysis[res.Domain]
		if body == "" {
			body = genericAnalysisDefault
		}
	}
	return []string{NonAdvicePrefix + body, VerdictLine(res)}
}
