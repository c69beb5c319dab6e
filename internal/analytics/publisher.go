// internal/analytics/publisher.go

// Package analytics publishes search activity onto NATS for downstream
// consumers. Publishing is fire-and-forget; a failed publish never
// fails the request that triggered it.
package analytics

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"showscout/internal/config"
)

// SearchEvent describes one executed search
type SearchEvent struct {
	Keyword     string    `json:"keyword,omitempty"`
	EventType   string    `json:"eventType,omitempty"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	Radius      float64   `json:"radius"`
	ResultCount int       `json:"resultCount"`
	Duplicates  int       `json:"duplicates"`
	AIAssisted  bool      `json:"aiAssisted"`
	Timestamp   time.Time `json:"timestamp"`
}

// Publisher publishes search events. A nil Publisher is valid and
// drops everything, so callers never need to branch on configuration.
type Publisher struct {
	conn  *nats.Conn
	topic string
}

// NewPublisher connects to NATS and returns a publisher. An empty URL
// returns (nil, nil): analytics disabled.
func NewPublisher(cfg config.NATSConfig) (*Publisher, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	conn, err := nats.Connect(
		cfg.URL,
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
	)
	if err != nil {
		return nil, err
	}

	return &Publisher{
		conn:  conn,
		topic: cfg.SearchTopic,
	}, nil
}

// PublishSearch publishes a search event
func (p *Publisher) PublishSearch(ev SearchEvent) {
	if p == nil {
		return
	}

	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(ev)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to marshal search event")
		return
	}

	if err := p.conn.Publish(p.topic, data); err != nil {
		log.Warn().Err(err).Str("topic", p.topic).Msg("Failed to publish search event")
	}
}

// Close drains the connection
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	p.conn.Close()
}
