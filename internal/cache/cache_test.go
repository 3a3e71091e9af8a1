package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dataverse/internal/testutil"
)

func openTestCache(t *testing.T) (*Cache, *testutil.ManualClock) {
	t.Helper()

	c, err := Open(filepath.Join(t.TempDir(), "cache.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	clock := testutil.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	c.now = clock.Now
	return c, clock
}

func TestCache_SetGet(t *testing.T) {
	c, _ := openTestCache(t)

	require.NoError(t, c.Set("key", []byte("value"), time.Minute))

	value, ok, err := c.Get("key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("value"), value)
}

func TestCache_GetMissing(t *testing.T) {
	c, _ := openTestCache(t)

	_, ok, err := c.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_SetOverwrites(t *testing.T) {
	c, _ := openTestCache(t)

	require.NoError(t, c.Set("key", []byte("first"), time.Minute))
	require.NoError(t, c.Set("key", []byte("second"), time.Minute))

	value, ok, err := c.Get("key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("second"), value)
}

func TestCache_Expiry(t *testing.T) {
	c, clock := openTestCache(t)

	require.NoError(t, c.Set("key", []byte("value"), time.Minute))

	clock.Advance(30 * time.Second)
	_, ok, err := c.Get("key")
	require.NoError(t, err)
	assert.True(t, ok)

	clock.Advance(31 * time.Second)
	_, ok, err = c.Get("key")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_Delete(t *testing.T) {
	c, _ := openTestCache(t)

	require.NoError(t, c.Set("key", []byte("value"), time.Minute))
	require.NoError(t, c.Delete("key"))

	_, ok, err := c.Get("key")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_Clear(t *testing.T) {
	c, _ := openTestCache(t)

	require.NoError(t, c.Set("a", []byte("1"), time.Minute))
	require.NoError(t, c.Set("b", []byte("2"), time.Minute))
	require.NoError(t, c.Clear())

	for _, key := range []string{"a", "b"} {
		_, ok, err := c.Get(key)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}
