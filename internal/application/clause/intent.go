// Package clause implements the NDA clause pipeline: user intent detection,
// model-assisted drafting, the mandatory-disclosure guard, verification
// against the Indian-law engine, and the final accept/reject decision.
package clause

import "strings"

// Intent classifies what kind of NDA clause the user is asking for.
type Intent string

const (
	IntentConfidentiality    Intent = "nda_confidentiality"
	IntentBreachConsequence  Intent = "nda_breach_consequence"
	IntentSurvival           Intent = "nda_survival"
	IntentUnknown            Intent = "unknown"
)

var intentKeywords = []struct {
	intent   Intent
	keywords []string
}{
	{IntentConfidentiality, []string{"confidential", "nda", "non disclosure", "secret", "data", "information", "source code"}},
	{IntentBreachConsequence, []string{"penalty", "fine", "recover", "damages"}},
	{IntentSurvival, []string{"terminate", "termination", "after leaving", "post employment"}},
}

// DetectIntent maps a free-text request to a clause intent; the first keyword
// family that matches wins.
func DetectIntent(userInput string) Intent {
	t := strings.ToLower(userInput)
	for _, group := range intentKeywords {
		for _, k := range group.keywords {
			if strings.Contains(t, k) {
				return group.intent
			}
		}
	}
	return IntentUnknown
}

// ClauseIntent classifies drafted clause text, which decides which validator
// branch applies.
type ClauseIntent string

const (
	ClauseConfidentiality ClauseIntent = "confidentiality"
	ClauseNonCompete      ClauseIntent = "non_compete"
	ClauseOther           ClauseIntent = "other"
)

var confidentialityClauseKeywords = []string{
	"confidential", "nda", "non disclosure", "non-disclosure",
	"trade secret", "proprietary", "confidential information",
}

var nonCompeteClauseKeywords = []string{
	"non compete", "non-compete", "shall not compete", "not compete",
	"competing business", "engage in any business", "similar business", "compete with",
}

// DetectClauseIntent classifies drafted clause text.  Confidentiality is
// checked first: a clause mixing both families is treated as confidentiality,
// which is the only family with an approval carve-out.
func DetectClauseIntent(clauseText string) ClauseIntent {
	t := strings.ToLower(clauseText)
	for _, k := range confidentialityClauseKeywords {
		if strings.Contains(t, k) {
			return ClauseConfidentiality
		}
	}
	for _, k := range nonCompeteClauseKeywords {
		if strings.Contains(t, k) {
			return ClauseNonCompete
		}
	}
	return ClauseOther
}
