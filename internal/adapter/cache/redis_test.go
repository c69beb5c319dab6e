package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"showscout/internal/config"
	"showscout/internal/domain/event"
)

func TestSearchKeyDeterministic(t *testing.T) {
	params := event.SearchParams{
		Lat: 40.7, Lng: -74.0, Radius: 25,
		Keyword: "jazz", Page: 0, Size: 20, Sort: event.SortDate,
	}

	require.Equal(t, SearchKey(params), SearchKey(params))

	other := params
	other.Keyword = "rock"
	require.NotEqual(t, SearchKey(params), SearchKey(other))

	require.Contains(t, SearchKey(params), "search:")
}

func TestDisabledCacheAlwaysMisses(t *testing.T) {
	c, err := NewRedisCache(config.RedisConfig{})
	require.NoError(t, err)
	require.False(t, c.Enabled())

	var result event.AggregatedResult
	require.ErrorIs(t, c.GetSearch(context.Background(), "search:x", &result), ErrMiss)
	require.NoError(t, c.SetSearch(context.Background(), "search:x", result))
	require.NoError(t, c.Close())
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *RedisCache

	var result event.AggregatedResult
	require.False(t, c.Enabled())
	require.ErrorIs(t, c.GetSearch(context.Background(), "search:x", &result), ErrMiss)
	require.NoError(t, c.SetSearch(context.Background(), "search:x", result))
	require.NoError(t, c.Close())
}
