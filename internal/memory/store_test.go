package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreAppendAndTurns(t *testing.T) {
	t.Parallel()

	s := NewLocalStore(5)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, "s1", Turn{LegalDomain: "contract_law"}))
	require.NoError(t, s.Append(ctx, "s1", Turn{LegalDomain: "contract_law", SectionNumbers: []string{"27"}}))

	turns, err := s.Turns(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, []string{"27"}, turns[1].SectionNumbers)
}

func TestLocalStoreEvictsOldest(t *testing.T) {
	t.Parallel()

	s := NewLocalStore(5)
	ctx := context.Background()

	for i := 1; i <= 6; i++ {
		require.NoError(t, s.Append(ctx, "s1", Turn{PrimaryDoctrine: fmt.Sprintf("d%d", i)}))
	}
	turns, err := s.Turns(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, turns, 5)
	assert.Equal(t, "d2", turns[0].PrimaryDoctrine)
	assert.Equal(t, "d6", turns[4].PrimaryDoctrine)
}

func TestLocalStoreDropsEmptyTurns(t *testing.T) {
	t.Parallel()

	s := NewLocalStore(5)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, "s1", Turn{}))
	turns, err := s.Turns(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestLocalStoreClear(t *testing.T) {
	t.Parallel()

	s := NewLocalStore(5)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, "s1", Turn{LegalDomain: "labour_law"}))
	require.NoError(t, s.Clear(ctx, "s1"))

	turns, err := s.Turns(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestLocalStoreTurnsReturnsCopy(t *testing.T) {
	t.Parallel()

	s := NewLocalStore(5)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, "s1", Turn{LegalDomain: "contract_law"}))
	turns, err := s.Turns(ctx, "s1")
	require.NoError(t, err)
	turns[0].LegalDomain = "mutated"

	again, err := s.Turns(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "contract_law", again[0].LegalDomain)
}

func TestLocalStoreConcurrentAppends(t *testing.T) {
	t.Parallel()

	s := NewLocalStore(5)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sid := fmt.Sprintf("s%d", i%4)
			_ = s.Append(ctx, sid, Turn{PrimaryDoctrine: fmt.Sprintf("d%d", i)})
		}(i)
	}
	wg.Wait()

	for i := 0; i < 4; i++ {
		turns, err := s.Turns(ctx, fmt.Sprintf("s%d", i))
		require.NoError(t, err)
		assert.Len(t, turns, 5)
	}
}

func TestLocalStoreSessionsAreIsolated(t *testing.T) {
	t.Parallel()

	s := NewLocalStore(5)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, "a", Turn{LegalDomain: "contract_law"}))

	turns, err := s.Turns(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, turns)
}
