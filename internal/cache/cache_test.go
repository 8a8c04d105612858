package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Abba-Jere11/properties-sub001/internal/cache"
)

func TestViews_PutGet(t *testing.T) {
	v := cache.New()

	_, ok := cache.Get[[]string](v, cache.KindDocuments, "a")
	assert.False(t, ok)

	cache.Put(v, cache.KindDocuments, "a", []string{"x", "y"})

	got, ok := cache.Get[[]string](v, cache.KindDocuments, "a")
	assert.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, got)

	// Same kind, different fingerprint.
	_, ok = cache.Get[[]string](v, cache.KindDocuments, "b")
	assert.False(t, ok)
}

func TestViews_InvalidateIsKindScoped(t *testing.T) {
	v := cache.New()

	cache.Put(v, cache.KindDocuments, "a", 1)
	cache.Put(v, cache.KindReceipts, "a", 2)
	cache.Put(v, cache.KindNotifications, "a", 3)

	v.Invalidate(cache.KindDocuments, cache.KindReceipts)

	_, ok := cache.Get[int](v, cache.KindDocuments, "a")
	assert.False(t, ok)

	_, ok = cache.Get[int](v, cache.KindReceipts, "a")
	assert.False(t, ok)

	got, ok := cache.Get[int](v, cache.KindNotifications, "a")
	assert.True(t, ok)
	assert.Equal(t, 3, got)
}

func TestViews_GetWrongTypeMisses(t *testing.T) {
	v := cache.New()

	cache.Put(v, cache.KindProfiles, "a", "string value")

	_, ok := cache.Get[int](v, cache.KindProfiles, "a")
	assert.False(t, ok)
}
