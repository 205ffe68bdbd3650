package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swarakshak/vidhaan/internal/retrieval"
)

func TestGenerateRefusal(t *testing.T) {
	t.Parallel()

	res := retrieval.Result{
		Status:  retrieval.StatusRefused,
		Domain:  retrieval.DomainCriminalConfusion,
		Verdict: retrieval.VerdictUnknown,
		Reason:  retrieval.ReasonCriminal,
	}
	lines := Generate(res)
	require.Len(t, lines, 2)
	assert.Equal(t, retrieval.ReasonCriminal, lines[0])
	assert.Equal(t, "Final Verdict: NOT CLEAR (Law does not give a clear answer.)", lines[1])
	assert.NotContains(t, lines[0], NonAdvicePrefix)
}

func TestGenerateNoSourceFallbackReason(t *testing.T) {
	t.Parallel()

	res := retrieval.Result{
		Status:  retrieval.StatusNoSource,
		Verdict: retrieval.VerdictUnknown,
	}
	lines := Generate(res)
	require.Len(t, lines, 2)
	assert.Equal(t, noSourceFallback, lines[0])
}

func TestGenerateBaseCasePassthrough(t *testing.T) {
	t.Parallel()

	res := retrieval.Result{
		Status:   retrieval.StatusIllegal,
		Domain:   retrieval.DomainEmploymentContract,
		Verdict:  retrieval.VerdictIllegal,
		Analysis: "Post-employment non-compete clauses are void under Indian law.",
	}
	lines := Generate(res)
	require.Len(t, lines, 2)
	assert.Equal(t, NonAdvicePrefix+"Post-employment non-compete clauses are void under Indian law.", lines[0])
	assert.Equal(t, "Final Verdict: NO (This is not legally allowed in most cases.)", lines[1])
}

func TestGenerateGenericByDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		domain retrieval.Domain
		want   string
	}{
		{retrieval.DomainEmploymentContract, "statutory labour protections"},
		{retrieval.DomainLabourLaw, "welfare legislation"},
		{retrieval.DomainContractClause, "public policy considerations"},
		{retrieval.DomainGeneral, "applicable Indian statutes and judicial precedents"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.domain), func(t *testing.T) {
			t.Parallel()
			lines := Generate(retrieval.Result{
				Status:  retrieval.StatusOK,
				Domain:  tt.domain,
				Verdict: retrieval.VerdictDepends,
			})
			require.Len(t, lines, 2)
			assert.True(t, strings.HasPrefix(lines[0], NonAdvicePrefix))
			assert.Contains(t, lines[0], tt.want)
		})
	}
}

func TestVerdictLineFallbacks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		res  retrieval.Result
		want string
	}{
		{
			name: "illegal status without verdict",
			res:  retrieval.Result{Status: retrieval.StatusIllegal},
			want: "Final Verdict: NO (This is not legally allowed in most cases.)",
		},
		{
			name: "high risk without verdict",
			res:  retrieval.Result{Status: retrieval.StatusOK, Risk: retrieval.RiskHigh},
			want: "Final Verdict: NO (This is not legally allowed in most cases.)",
		},
		{
			name: "legal status",
			res:  retrieval.Result{Status: retrieval.StatusLegal},
			want: "Final Verdict: YES (This is legally allowed under Indian law.)",
		},
		{
			name: "conditions",
			res:  retrieval.Result{Status: retrieval.StatusLegalWithConditions},
			want: "Final Verdict: DEPENDS (This depends on conditions and facts.)",
		},
		{
			name: "medium risk",
			res:  retrieval.Result{Status: retrieval.StatusOK, Risk: retrieval.RiskMedium},
			want: "Final Verdict: DEPENDS (This depends on conditions and facts.)",
		},
		{
			name: "no source",
			res:  retrieval.Result{Status: retrieval.StatusNoSource},
			want: "Final Verdict: NOT CLEAR (Law does not give a clear answer.)",
		},
		{
			name: "default",
			res:  retrieval.Result{Status: retrieval.StatusOK},
			want: "Final Verdict: DEPENDS (Outcome depends on legal details.)",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, VerdictLine(tt.res))
		})
	}
}
