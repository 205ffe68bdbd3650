package clause

import (
	"strings"

	"github.com/swarakshak/vidhaan/internal/application/ask"
	"github.com/swarakshak/vidhaan/internal/retrieval"
)

// Validation is the accept/reject decision for a drafted clause.
type Validation struct {
	Status     string               `json:"status"`
	Reason     string               `json:"reason,omitempty"`
	Confidence float64              `json:"confidence,omitempty"`
	Citations  []retrieval.Citation `json:"citations,omitempty"`
}

const (
	statusApproved = "approved"
	statusRejected = "rejected"

	reasonPublicPolicy   = "Clause violates Indian public policy or law"
	reasonNoLegalSupport = "Clause not supported by Indian law"
	reasonUnclear        = "Unclear legal position"
)

// ValidateClause decides whether a drafted clause enters the contract, based
// on the law engine's verdict and the clause's own intent.  Confidentiality
// clauses get two carve-outs: conditional legality is acceptable, and an
// illegal verdict grounded purely in the restraint-of-trade doctrine does not
// condemn a confidentiality obligation.
func ValidateClause(law ask.Response, clauseIntent ClauseIntent) Validation {
	switch law.Status {
	case string(retrieval.StatusRefused):
		return Validation{Status: statusRejected, Reason: reasonPublicPolicy}
	case string(retrieval.StatusNoSource):
		return Validation{Status: statusRejected, Reason: reasonNoLegalSupport}
	}

	approved := Validation{
		Status:     statusApproved,
		Confidence: law.Confidence,
		Citations:  law.Citations,
	}

	switch {
	case law.Status == string(retrieval.StatusLegal):
		return approved
	case law.Status == string(retrieval.StatusLegalWithConditions) && clauseIntent == ClauseConfidentiality:
		return approved
	case law.Status == string(retrieval.StatusIllegal) && clauseIntent == ClauseConfidentiality && section27Flag(law):
		return approved
	}
	return Validation{Status: statusRejected, Reason: reasonUnclear}
}

// section27Flag reports whether the verdict's stated basis rests on the
// restraint-of-trade doctrine.
func section27Flag(law ask.Response) bool {
	basis := strings.ToLower(strings.Join([]string{law.LawBasis, law.Reason, law.AnalysisRaw}, " "))
	return strings.Contains(basis, "section 27") || strings.Contains(basis, "restraint of trade")
}
