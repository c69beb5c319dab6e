package analytics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"showscout/internal/config"
)

func TestNilPublisherIsSafe(t *testing.T) {
	var p *Publisher

	require.NotPanics(t, func() {
		p.PublishSearch(SearchEvent{Keyword: "jazz", ResultCount: 3})
		p.Close()
	})
}

func TestNewPublisherDisabledWithoutURL(t *testing.T) {
	p, err := NewPublisher(config.NATSConfig{})
	require.NoError(t, err)
	require.Nil(t, p)
}
