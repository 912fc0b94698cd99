package briefingstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtnwx/avalanche-briefing/internal/domain/briefing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	record := briefing.SummaryRecord{
		Key:       "abc123",
		Date:      "2026-02-14",
		Summary:   "Widespread wind slab activity above treeline.",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.Save(ctx, record, time.Minute))

	got, ok, err := store.Get(ctx, "abc123")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, record, got)
}

func TestMemoryStoreMiss(t *testing.T) {
	store := NewMemoryStore()

	_, ok, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	record := briefing.SummaryRecord{Key: "short-lived", Summary: "stale"}
	require.NoError(t, store.Save(ctx, record, time.Millisecond))

	time.Sleep(5 * time.Millisecond)

	_, ok, err := store.Get(ctx, "short-lived")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreZeroTTLNeverExpires(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, briefing.SummaryRecord{Key: "pinned", Summary: "kept"}, 0))

	_, ok, err := store.Get(ctx, "pinned")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStoreEmptyKeyIgnored(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, briefing.SummaryRecord{Summary: "no key"}, time.Minute))
	_, ok, err := store.Get(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)
}
