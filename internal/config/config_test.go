package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TICKETMASTER_API_KEY", "tm-key")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "tm-key", cfg.Sources.TicketmasterAPIKey)
	require.Equal(t, 25.0, cfg.Search.DefaultRadius)
	require.Equal(t, 100.0, cfg.Search.MaxRadius)
	require.Equal(t, 20, cfg.Search.DefaultSize)
	require.Equal(t, 50, cfg.Search.MaxSize)
	require.Empty(t, cfg.Database.Host, "favorites are opt-in")
	require.Empty(t, cfg.Redis.Host, "caching is opt-in")
	require.Empty(t, cfg.NATS.URL, "analytics are opt-in")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TICKETMASTER_API_KEY", "tm-key")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_READ_TIMEOUT", "5s")
	t.Setenv("SERVER_CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("SEARCH_MAX_RADIUS", "50")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CorsOrigins)
	require.Equal(t, 50.0, cfg.Search.MaxRadius)
}

func TestLoadRequiresTicketmasterKey(t *testing.T) {
	t.Setenv("TICKETMASTER_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "TICKETMASTER_API_KEY")
}
