package metadata

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/namebot/internal/migrations"

	_ "modernc.org/sqlite"
)

// setupTestDB creates an in-memory SQLite database with the full schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, migrations.Apply(context.Background(), db))

	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// fakeClock is a settable time source.
type fakeClock struct{ t time.Time }

func (f *fakeClock) Now() time.Time          { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestCache(t *testing.T) (*Cache, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	cache := NewCache(setupTestDB(t))
	cache.now = clock.Now
	return cache, clock
}

func TestCache_GetSet_RoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	value := []byte(`{"id": 123, "name": "Test Show"}`)
	require.NoError(t, cache.Set(ctx, "test-key", value, time.Hour))

	got, ok := cache.Get(ctx, "test-key")
	assert.True(t, ok, "expected to find cached value")
	assert.Equal(t, value, got)
}

func TestCache_Get_NotFound(t *testing.T) {
	cache, _ := newTestCache(t)

	got, ok := cache.Get(context.Background(), "nonexistent-key")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestCache_Get_Expired(t *testing.T) {
	cache, clock := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "expiring-key", []byte("v"), time.Minute))
	_, ok := cache.Get(ctx, "expiring-key")
	assert.True(t, ok)

	clock.Advance(time.Minute)
	got, ok := cache.Get(ctx, "expiring-key")
	assert.False(t, ok, "expected entry to expire")
	assert.Nil(t, got)
}

func TestCache_Set_OverwriteExtendsTTL(t *testing.T) {
	cache, clock := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("first"), time.Minute))
	clock.Advance(30 * time.Second)
	require.NoError(t, cache.Set(ctx, "k", []byte("second"), time.Hour))
	clock.Advance(time.Minute)

	got, ok := cache.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, []byte("second"), got)
}

func TestCache_Set_ZeroTTLSkipsWrite(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", []byte("v"), 0))
	n, err := cache.Len(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCache_Delete(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "delete-key", []byte("v"), time.Hour))
	require.NoError(t, cache.Delete(ctx, "delete-key"))

	_, ok := cache.Get(ctx, "delete-key")
	assert.False(t, ok)

	// Deleting a missing key is not an error.
	assert.NoError(t, cache.Delete(ctx, "nonexistent-key"))
}

func TestCache_Prune(t *testing.T) {
	cache, clock := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "short-1", []byte("1"), time.Minute))
	require.NoError(t, cache.Set(ctx, "short-2", []byte("2"), time.Minute))
	require.NoError(t, cache.Set(ctx, "long", []byte("3"), time.Hour))

	clock.Advance(2 * time.Minute)

	pruned, err := cache.Prune(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pruned)

	n, err := cache.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, ok := cache.Get(ctx, "long")
	assert.True(t, ok)
	assert.Equal(t, []byte("3"), got)

	pruned, err = cache.Prune(ctx)
	require.NoError(t, err)
	assert.Zero(t, pruned)
}
