package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildContextEmptySession(t *testing.T) {
	t.Parallel()

	ctx := BuildContext(nil, "contract_law")
	assert.Empty(t, ctx.EnrichmentText)
	assert.Empty(t, ctx.LockedDomain)
	assert.False(t, ctx.TopicSwitched)
}

func TestBuildContextEnrichment(t *testing.T) {
	t.Parallel()

	turns := []Turn{{
		LegalDomain:     "employment_contract",
		StatuteNames:    []string{"Industrial Disputes Act", "Indian Contract Act"},
		SectionNumbers:  []string{"27", "25F", "25G"},
		PrimaryDoctrine: "restraint of trade",
	}}
	ctx := BuildContext(turns, "employment_contract")

	assert.Equal(t, "employment_contract", ctx.LockedDomain)
	assert.False(t, ctx.TopicSwitched)
	// One act, at most two sorted sections, then the doctrine.
	assert.Equal(t,
		"employment Industrial Disputes Act Section 25F Section 25G restraint of trade",
		ctx.EnrichmentText)
}

func TestBuildContextLocksOnOldestTurn(t *testing.T) {
	t.Parallel()

	turns := []Turn{
		{LegalDomain: "labour_law"},
		{LegalDomain: "contract_law"},
	}
	ctx := BuildContext(turns, "labour_law")
	assert.Equal(t, "labour_law", ctx.LockedDomain)
	assert.Equal(t, "labour industrial", ctx.EnrichmentText)
}

func TestBuildContextTopicSwitchSuppressesEnrichment(t *testing.T) {
	t.Parallel()

	turns := []Turn{{
		LegalDomain:  "employment_contract",
		StatuteNames: []string{"Industrial Disputes Act"},
	}}
	ctx := BuildContext(turns, "contract_law")

	assert.True(t, ctx.TopicSwitched)
	assert.Empty(t, ctx.EnrichmentText)
	assert.Equal(t, "employment_contract", ctx.LockedDomain)
}

func TestBuildContextGeneralFollowUpKeepsLock(t *testing.T) {
	t.Parallel()

	turns := []Turn{{LegalDomain: "labour_law", SectionNumbers: []string{"25F"}}}
	ctx := BuildContext(turns, "general")

	assert.False(t, ctx.TopicSwitched)
	assert.Equal(t, "labour industrial Section 25F", ctx.EnrichmentText)
}
