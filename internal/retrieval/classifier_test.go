package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  Domain
	}{
		{
			name:  "criminal outranks employment",
			query: "Can my employer send me to jail for resigning?",
			want:  DomainCriminalConfusion,
		},
		{
			name:  "foreign jurisdiction",
			query: "Does GDPR apply to my employment contract?",
			want:  DomainForeignJurisdiction,
		},
		{
			name:  "at will employment is foreign",
			query: "My contract says at-will employment",
			want:  DomainForeignJurisdiction,
		},
		{
			name:  "contract keyword with question mark",
			query: "Are confidentiality clauses enforceable?",
			want:  DomainContractLaw,
		},
		{
			name:  "contract keyword interrogative first word",
			query: "is an indemnify obligation valid in india",
			want:  DomainContractLaw,
		},
		{
			name:  "clause text without question",
			query: "Neither party shall disclose confidential information to third parties.",
			want:  DomainContractClause,
		},
		{
			name:  "contract outranks employment framing",
			query: "The employee shall keep all confidential information secret.",
			want:  DomainContractClause,
		},
		{
			name:  "employment",
			query: "My employer refused to pay my salary",
			want:  DomainEmploymentContract,
		},
		{
			name:  "labour",
			query: "A workman was retrenched without compensation",
			want:  DomainLabourLaw,
		},
		{
			name:  "general fallback",
			query: "Tell me about property registration",
			want:  DomainGeneral,
		},
		{
			name:  "empty query",
			query: "",
			want:  DomainGeneral,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ClassifyDomain(tt.query))
		})
	}
}

func TestIsInterrogative(t *testing.T) {
	t.Parallel()

	// The question mark lives on the raw input; normalization removes it.
	assert.True(t, isInterrogative("Valid?", Normalize("Valid?")))
	assert.True(t, isInterrogative("can this stand", "can this stand"))
	assert.True(t, isInterrogative("What happens next", "what happens next"))
	assert.False(t, isInterrogative("The party shall indemnify", "the party shall indemnify"))
}
