package ecs

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureCacheBucketChaining(t *testing.T) {
	c := newSignatureCache()
	c.hash = func(string) uint64 { return 42 }

	a := []EntityID{uuid.New()}
	b := []EntityID{uuid.New(), uuid.New()}

	c.putIfAbsent("Renderable", a)
	c.putIfAbsent("Solid_User", b)

	got, ok := c.get("Renderable")
	require.True(t, ok)
	assert.Equal(t, a, got)

	got, ok = c.get("Solid_User")
	require.True(t, ok)
	assert.Equal(t, b, got)

	_, ok = c.get("Hud")
	assert.False(t, ok)

	bucket, ok := c.buckets.Get(42)
	require.True(t, ok)
	assert.Len(t, bucket, 2)

	t.Run("first entry wins", func(t *testing.T) {
		c.putIfAbsent("Renderable", b)
		got, _ := c.get("Renderable")
		assert.Equal(t, a, got)
		assert.Equal(t, 2, c.len())
	})

	t.Run("entries in population order", func(t *testing.T) {
		entries := c.entries()
		require.Len(t, entries, 2)
		assert.Equal(t, "Renderable", entries[0].Signature)
		assert.Equal(t, "Solid_User", entries[1].Signature)
		assert.Equal(t, b, entries[1].IDs)
	})

	t.Run("clear", func(t *testing.T) {
		c.clear()
		assert.Zero(t, c.len())
		_, ok := c.get("Renderable")
		assert.False(t, ok)
	})
}
