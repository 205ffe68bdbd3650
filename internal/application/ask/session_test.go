package ask

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swarakshak/vidhaan/internal/domain/corpus"
	"github.com/swarakshak/vidhaan/internal/memory"
)

// unrelatedDocs yields no candidates for any domain, forcing unsourced
// outcomes so the locked-doctrine recovery path can be exercised.
func unrelatedDocs() []corpus.Document {
	return []corpus.Document{
		{
			Type:       corpus.TypeStatute,
			Identifier: "Section 10",
			Statute:    "Specific Relief Act, 1963",
			Source:     "SRA s10",
			Text:       "Specific performance of a contract shall be enforced by the court.",
		},
	}
}

func TestSessionAskRecordsTurnMetadata(t *testing.T) {
	t.Parallel()

	store := memory.NewLocalStore(5)
	svc := NewSessionService(newService(t, contractDocs(), nil), store, nil)
	ctx := context.Background()

	resp, err := svc.Ask(ctx, "Is an arbitration clause valid under Indian law?", "s1")
	require.NoError(t, err)
	assert.Equal(t, "legal", resp.Status)

	turns, err := store.Turns(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, "legal", turns[0].VerdictType)
	assert.Equal(t, "contract_law", turns[0].LegalDomain)
	assert.Equal(t, "Arbitration & Conciliation Act, 1996", turns[0].PrimaryDoctrine)
	assert.NotEmpty(t, turns[0].StatuteNames)
}

func TestSessionAskDefaultsSessionID(t *testing.T) {
	t.Parallel()

	store := memory.NewLocalStore(5)
	svc := NewSessionService(newService(t, contractDocs(), nil), store, nil)
	ctx := context.Background()

	_, err := svc.Ask(ctx, "Is an arbitration clause valid under Indian law?", "")
	require.NoError(t, err)

	turns, err := store.Turns(ctx, defaultSessionID)
	require.NoError(t, err)
	assert.NotEmpty(t, turns)
}

func TestSessionAskRecoversViaLockedDoctrine(t *testing.T) {
	t.Parallel()

	store := memory.NewLocalStore(5)
	svc := NewSessionService(newService(t, unrelatedDocs(), nil), store, nil)
	ctx := context.Background()

	// A prior turn locked the session to employment.
	require.NoError(t, store.Append(ctx, "s1", memory.Turn{
		VerdictType:     "illegal",
		LegalDomain:     "employment_contract",
		StatuteNames:    []string{"Indian Contract Act, 1872"},
		SectionNumbers:  []string{"27"},
		PrimaryDoctrine: "Indian Contract Act, Section 27",
	}))

	// The corpus offers no employment candidates, so the core pipeline
	// reports no source; the locked doctrine then resolves the follow-up.
	resp, err := svc.Ask(ctx, "can they still enforce the non compete against an employee", "s1")
	require.NoError(t, err)

	assert.Equal(t, "illegal", resp.Status)
	assert.Equal(t, "employment_contract", resp.Domain)
	assert.Equal(t, "high", resp.RiskLevel)
	assert.Equal(t, "Indian Contract Act, Section 27", resp.LawBasis)
	assert.Empty(t, resp.Citations)
	assert.Contains(t, resp.AnalysisRaw, "void under Indian law")
}

func TestSessionAskTopicSwitchDropsEnrichment(t *testing.T) {
	t.Parallel()

	store := memory.NewLocalStore(5)
	svc := NewSessionService(newService(t, contractDocs(), nil), store, nil)
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "s1", memory.Turn{
		LegalDomain:    "employment_contract",
		StatuteNames:   []string{"Industrial Disputes Act, 1947"},
		SectionNumbers: []string{"25F"},
	}))

	// A contract-law question switches topic; the employment enrichment must
	// not leak into retrieval, so the arbitration base case resolves cleanly.
	resp, err := svc.Ask(ctx, "Is an arbitration clause valid under Indian law?", "s1")
	require.NoError(t, err)
	assert.Equal(t, "legal", resp.Status)
	assert.Equal(t, "contract_law", resp.Domain)
}

func TestSessionClear(t *testing.T) {
	t.Parallel()

	store := memory.NewLocalStore(5)
	svc := NewSessionService(newService(t, contractDocs(), nil), store, nil)
	ctx := context.Background()

	_, err := svc.Ask(ctx, "Is an arbitration clause valid under Indian law?", "s1")
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, "s1"))

	turns, err := store.Turns(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

type countingObserver struct {
	recorded map[string]int
	errors   map[string]int
}

func newCountingObserver() *countingObserver {
	return &countingObserver{recorded: map[string]int{}, errors: map[string]int{}}
}

func (o *countingObserver) SessionTurnRecorded(backend string) { o.recorded[backend]++ }
func (o *countingObserver) SessionStoreError(operation string) { o.errors[operation]++ }

type failingStore struct{}

func (failingStore) Append(context.Context, string, memory.Turn) error {
	return fmt.Errorf("store down")
}

func (failingStore) Turns(context.Context, string) ([]memory.Turn, error) {
	return nil, fmt.Errorf("store down")
}

func (failingStore) Clear(context.Context, string) error {
	return fmt.Errorf("store down")
}

func TestSessionStoreObserverCountsTurns(t *testing.T) {
	t.Parallel()

	store := memory.NewLocalStore(5)
	svc := NewSessionService(newService(t, contractDocs(), nil), store, nil)
	obs := newCountingObserver()
	svc.SetStoreObserver(obs, "local")
	ctx := context.Background()

	_, err := svc.Ask(ctx, "Is an arbitration clause valid under Indian law?", "s1")
	require.NoError(t, err)

	assert.Equal(t, 1, obs.recorded["local"])
	assert.Empty(t, obs.errors)
}

func TestSessionStoreObserverCountsFailures(t *testing.T) {
	t.Parallel()

	svc := NewSessionService(newService(t, contractDocs(), nil), failingStore{}, nil)
	obs := newCountingObserver()
	svc.SetStoreObserver(obs, "redis")
	ctx := context.Background()

	// A broken store never fails the answer; both the read and the write
	// surface as counted errors instead.
	resp, err := svc.Ask(ctx, "Is an arbitration clause valid under Indian law?", "s1")
	require.NoError(t, err)
	assert.Equal(t, "legal", resp.Status)
	assert.Equal(t, 1, obs.errors["read"])
	assert.Equal(t, 1, obs.errors["append"])
	assert.Empty(t, obs.recorded)

	require.Error(t, svc.Clear(ctx, "s1"))
	assert.Equal(t, 1, obs.errors["clear"])
}
