package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCatalogCacheSetGet(t *testing.T) {
	c := NewCatalogCache()

	c.Set("pipelines", []string{"a", "b"}, DefaultTTL)

	got, found := c.Get("pipelines")
	assert.True(t, found)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestCatalogCacheMiss(t *testing.T) {
	c := NewCatalogCache()

	_, found := c.Get("stages_99")
	assert.False(t, found)
}

func TestCatalogCacheExpiry(t *testing.T) {
	c := NewCatalogCache()

	c.Set("pipelines", "v1", 20*time.Millisecond)
	time.Sleep(40 * time.Millisecond)

	_, found := c.Get("pipelines")
	assert.False(t, found)

	// Stays absent until a new Set
	_, found = c.Get("pipelines")
	assert.False(t, found)

	c.Set("pipelines", "v2", DefaultTTL)
	got, found := c.Get("pipelines")
	assert.True(t, found)
	assert.Equal(t, "v2", got)
}
