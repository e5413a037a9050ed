// internal/cache/cache_test.go
package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stapubox-search/internal/common/config"
	"stapubox-search/internal/common/database"
	"stapubox-search/internal/common/logger"
	"stapubox-search/internal/query"
	"stapubox-search/internal/search"
)

func newTestCache(t *testing.T) (*ResponseCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb, err := database.NewRedis(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })

	return New(rdb, time.Minute, logger.NewTestLogger(t)), mr
}

func TestKeyIsStableAndDiscriminating(t *testing.T) {
	a := query.Translate(query.Input{Text: "u16 cricket"})
	b := query.Translate(query.Input{Text: "u16 cricket"})
	c := query.Translate(query.Input{Text: "u16 football"})

	assert.Equal(t, Key("stapubox", a), Key("stapubox", b))
	assert.NotEqual(t, Key("stapubox", a), Key("stapubox", c))
	assert.NotEqual(t, Key("stapubox", a), Key("other", a))
}

func TestKeyIncludesGeoAnchor(t *testing.T) {
	loc := &query.LatLng{Lat: 12.9716, Lng: 77.5946}
	with := query.Translate(query.Input{Text: "venues near me", UserLocation: loc})
	without := query.Translate(query.Input{Text: "venues near me"})

	assert.NotEqual(t, Key("stapubox", with), Key("stapubox", without))
}

func TestCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	q := query.Translate(query.Input{Text: "cricket coach"})
	key := Key("stapubox", q)

	assert.Nil(t, c.Get(ctx, key))

	stored := &search.Response{
		Hits:        []search.Hit{{"objectID": "coach_1"}},
		NbHits:      1,
		HitsPerPage: 20,
		Backend:     "elasticsearch",
	}
	c.Set(ctx, key, stored)

	got := c.Get(ctx, key)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.NbHits)
	require.Len(t, got.Hits, 1)
	assert.Equal(t, "coach_1", got.Hits[0]["objectID"])
}

func TestCacheEntryExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	q := query.Translate(query.Input{Text: "chess"})
	key := Key("stapubox", q)

	c.Set(ctx, key, &search.Response{NbHits: 3})
	require.NotNil(t, c.Get(ctx, key))

	mr.FastForward(2 * time.Minute)
	assert.Nil(t, c.Get(ctx, key))
}

func TestCacheTreatsRedisFailureAsMiss(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	mr.Close()
	assert.Nil(t, c.Get(ctx, "search:whatever"))
}
