package retrieval

import "strings"

// Domain is the coarse legal category used to restrict candidate statutes.
type Domain string

const (
	DomainContractClause      Domain = "contract_clause"
	DomainContractLaw         Domain = "contract_law"
	DomainEmploymentContract  Domain = "employment_contract"
	DomainLabourLaw           Domain = "labour_law"
	DomainCriminalConfusion   Domain = "criminal_confusion"
	DomainForeignJurisdiction Domain = "foreign_jurisdiction"
	DomainGeneral             Domain = "general"
)

// Keyword tables for the classifier.  These are data, not code: each rule is
// a membership test over the normalized query, applied in precedence order.
var (
	criminalKeywords = []string{"jail", "arrest", "police", "criminal", "imprison"}

	foreignKeywords = []string{"usa", "uk", "california", "gdpr", "at will employment", "foreign law"}

	contractKeywords = []string{
		"neither party", "indemnify", "confidential", "confidentiality",
		"arbitration", "governing law", "damages", "liability",
	}

	employmentKeywords = []string{
		"employee", "employer", "salary", "termination", "resign", "non compete",
	}

	labourKeywords = []string{"labour", "workman", "retrench"}

	interrogativeStarts = []string{"is", "can", "does", "what"}
)

// ClassifyDomain maps free text to a legal domain via ordered keyword rules;
// the first match wins.  Criminal and foreign topics take highest precedence
// so that an employment query mentioning "jail" is refused upstream rather
// than routed to statute retrieval, and a query mentioning "confidential"
// under an employment framing still resolves to the contract family.
func ClassifyDomain(query string) Domain {
	q := Normalize(query)

	if containsAny(q, criminalKeywords) {
		return DomainCriminalConfusion
	}
	if containsAny(q, foreignKeywords) {
		return DomainForeignJurisdiction
	}
	if containsAny(q, contractKeywords) {
		if isInterrogative(query, q) {
			return DomainContractLaw
		}
		return DomainContractClause
	}
	if containsAny(q, employmentKeywords) {
		return DomainEmploymentContract
	}
	if containsAny(q, labourKeywords) {
		return DomainLabourLaw
	}
	return DomainGeneral
}

// isInterrogative distinguishes a legality question from declarative
// clause-like text.  The question mark is checked on the raw input because
// normalization strips punctuation; the leading-word check runs on the
// normalized form.
func isInterrogative(raw, normalized string) bool {
	if strings.Contains(raw, "?") {
		return true
	}
	first, _, _ := strings.Cut(normalized, " ")
	for _, w := range interrogativeStarts {
		if first == w {
			return true
		}
	}
	return false
}
