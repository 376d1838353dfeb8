package refresh

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeKV is an in-memory stand-in for the Redis cache.
type fakeKV struct {
	data map[string][]byte
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string][]byte)}
}

func (f *fakeKV) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeKV) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = raw
	return nil
}

func metaStoreAt(kv *fakeKV, now time.Time) *MetaStore {
	return &MetaStore{cache: kv, now: func() time.Time { return now }}
}

func TestCheck_Freshness(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	threshold := 24 * time.Hour

	kv := newFakeKV()
	ms := metaStoreAt(kv, now)

	// No metadata at all.
	state, _, err := ms.Check(ctx, "ibex35", threshold)
	require.NoError(t, err)
	assert.Equal(t, Unknown, state)
	assert.True(t, state.NeedsRefresh())

	// Refreshed 23 hours ago: still fresh.
	require.NoError(t, ms.Save(ctx, Metadata{
		Market:      "ibex35",
		LastRefresh: now.Add(-23 * time.Hour),
	}))
	state, meta, err := ms.Check(ctx, "ibex35", threshold)
	require.NoError(t, err)
	assert.Equal(t, Fresh, state)
	assert.False(t, state.NeedsRefresh())
	assert.Equal(t, 23*time.Hour, meta.Age(now))

	// Refreshed 25 hours ago: stale.
	require.NoError(t, ms.Save(ctx, Metadata{
		Market:      "ibex35",
		LastRefresh: now.Add(-25 * time.Hour),
	}))
	state, _, err = ms.Check(ctx, "ibex35", threshold)
	require.NoError(t, err)
	assert.Equal(t, Stale, state)
	assert.True(t, state.NeedsRefresh())
}

func TestCheck_PerMarketIsolation(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	kv := newFakeKV()
	ms := metaStoreAt(kv, now)

	require.NoError(t, ms.Save(ctx, Metadata{Market: "nasdaq25", LastRefresh: now}))

	state, _, err := ms.Check(ctx, "nasdaq25", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, Fresh, state)

	state, _, err = ms.Check(ctx, "sp500_25", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, Unknown, state)
}
