package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tredis "github.com/Nixie-Tech-LLC/tarjumo/internal/redis"
)

func TestMemorySetGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(8, time.Hour)

	_, ok := m.Get(ctx, "missing")
	assert.False(t, ok)

	m.Set(ctx, "k", []byte("v"), 0)
	v, ok := m.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), v)

	m.Delete(ctx, "k")
	_, ok = m.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryHonoursEntryTTL(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(8, time.Hour)

	m.Set(ctx, "short", []byte("v"), 10*time.Millisecond)
	time.Sleep(25 * time.Millisecond)

	_, ok := m.Get(ctx, "short")
	assert.False(t, ok, "entry past its deadline must not be served")
	assert.Equal(t, 0, m.Len())
}

func TestMemoryEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(2, time.Hour)

	m.Set(ctx, "a", []byte("1"), 0)
	m.Set(ctx, "b", []byte("2"), 0)
	m.Get(ctx, "a")
	m.Set(ctx, "c", []byte("3"), 0)

	_, ok := m.Get(ctx, "b")
	assert.False(t, ok)
	_, ok = m.Get(ctx, "a")
	assert.True(t, ok)
}

func TestLayeredBackfillsLocal(t *testing.T) {
	ctx := context.Background()
	local := NewMemory(8, time.Hour)
	shared := NewMemory(8, time.Hour)
	l := NewLayered(local, shared, time.Minute)

	shared.Set(ctx, "k", []byte("from-shared"), 0)

	v, ok := l.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("from-shared"), v)

	v, ok = local.Get(ctx, "k")
	require.True(t, ok, "shared hit should be copied into the local layer")
	assert.Equal(t, []byte("from-shared"), v)

	l.Delete(ctx, "k")
	_, ok = shared.Get(ctx, "k")
	assert.False(t, ok)
}

func TestRedisRoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDRESS")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDRESS not set")
	}
	ctx := context.Background()

	rdb, err := tredis.Connect(ctx, addr, "", "")
	require.NoError(t, err)
	defer rdb.Close()

	r := NewRedis(rdb, "tarjumo:test:")
	r.Set(ctx, "k", []byte("v"), time.Minute)
	v, ok := r.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), v)

	r.Delete(ctx, "k")
	_, ok = r.Get(ctx, "k")
	assert.False(t, ok)
}
