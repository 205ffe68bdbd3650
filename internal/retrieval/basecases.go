package retrieval

import "strings"

// RiskLevel is the coarse, explainable risk classification attached to a
// retrieval result.
type RiskLevel string

const (
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
	RiskUnknown RiskLevel = "unknown"
)

// Verdict is the final deterministic answer class.
type Verdict string

const (
	VerdictLegal   Verdict = "LEGAL"
	VerdictIllegal Verdict = "ILLEGAL"
	VerdictDepends Verdict = "DEPENDS"
	VerdictUnknown Verdict = "UNKNOWN"
)

// Status classifies the retrieval outcome.
type Status string

const (
	StatusRefused             Status = "refused"
	StatusNoSource            Status = "no_authoritative_source"
	StatusOK                  Status = "ok"
	StatusLegal               Status = "legal"
	StatusLegalWithConditions Status = "legal_with_conditions"
	StatusIllegal             Status = "illegal"
)

// BaseCase is a hardcoded authoritative verdict for a well-settled legal
// pattern.  When a base case matches it overrides ranking output entirely:
// settled positions must not fluctuate with retrieval noise.
type BaseCase struct {
	Name     string
	Status   Status
	Risk     RiskLevel
	Verdict  Verdict
	Analysis string
	LawBasis string
}

// baseCases is the fixed table of canonical patterns.
var baseCases = map[string]BaseCase{
	"confidentiality": {
		Name:     "confidentiality",
		Status:   StatusLegalWithConditions,
		Risk:     RiskMedium,
		Verdict:  VerdictDepends,
		Analysis: "Confidentiality obligations are generally enforceable under Indian contract law, subject to reasonableness and public policy.",
		LawBasis: "Indian Contract Act, 1872",
	},
	"indemnity": {
		Name:     "indemnity",
		Status:   StatusLegal,
		Risk:     RiskMedium,
		Verdict:  VerdictLegal,
		Analysis: "Indemnity clauses are governed by Sections 124–125 of the Indian Contract Act.",
		LawBasis: "Indian Contract Act, Sections 124–125",
	},
	"penalty": {
		Name:     "penalty",
		Status:   StatusLegalWithConditions,
		Risk:     RiskHigh,
		Verdict:  VerdictDepends,
		Analysis: "Penalty clauses are subject to scrutiny under Section 74 of the Indian Contract Act.",
		LawBasis: "Indian Contract Act, Section 74",
	},
	"non_compete_employment": {
		Name:     "non_compete_employment",
		Status:   StatusIllegal,
		Risk:     RiskHigh,
		Verdict:  VerdictIllegal,
		Analysis: "Post-employment non-compete clauses are void under Indian law.",
		LawBasis: "Indian Contract Act, Section 27",
	},
	"arbitration": {
		Name:     "arbitration",
		Status:   StatusLegal,
		Risk:     RiskLow,
		Verdict:  VerdictLegal,
		Analysis: "Arbitration agreements are enforceable under Indian law.",
		LawBasis: "Arbitration & Conciliation Act, 1996",
	},
	"consideration": {
		Name:     "consideration",
		Status:   StatusIllegal,
		Risk:     RiskHigh,
		Verdict:  VerdictIllegal,
		Analysis: "An agreement without consideration is void under Indian law, save for the limited exceptions in Section 25.",
		LawBasis: "Indian Contract Act, Section 25",
	},
}

// ResolveBaseCase matches the normalized query against the canonical pattern
// table.  The absence-of-consideration check runs first and is domain
// independent; the remaining patterns are intentionally narrow (non-compete
// only resolves under the employment domain).  Returns nil when no pattern
// matches.
func ResolveBaseCase(query string, domain Domain) *BaseCase {
	q := Normalize(query)

	if strings.Contains(q, "consideration") &&
		(strings.Contains(q, "without") || strings.Contains(q, "no ") || strings.Contains(q, "absence")) {
		bc := baseCases["consideration"]
		return &bc
	}
	if domain == DomainContractClause || domain == DomainContractLaw {
		switch {
		case strings.Contains(q, "confidential"):
			bc := baseCases["confidentiality"]
			return &bc
		case strings.Contains(q, "indemnity"):
			bc := baseCases["indemnity"]
			return &bc
		case strings.Contains(q, "penalty") || strings.Contains(q, "liquidated damages"):
			bc := baseCases["penalty"]
			return &bc
		case strings.Contains(q, "arbitration"):
			bc := baseCases["arbitration"]
			return &bc
		}
	}
	if domain == DomainEmploymentContract &&
		(strings.Contains(q, "non compete") || strings.Contains(q, "noncompete")) {
		bc := baseCases["non_compete_employment"]
		return &bc
	}
	return nil
}
