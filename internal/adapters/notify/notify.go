// Package notify publishes a single "run finished" event over NATS once
// a correlation run completes, so an external scheduler can trigger the
// next stage (e.g. a site rebuild) without polling. Dependency pulled
// from Ljubo32-acars-parser's go.mod; no file in the pack exercises NATS
// directly, so this client follows nats.go's own documented connect/
// publish/drain idiom rather than an in-pack example.
package notify

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/travelmapping/hwdata/internal/infrastructure/config"
)

// RunSummary is the payload published when a run finishes.
type RunSummary struct {
	SystemCount   int     `json:"system_count"`
	RouteCount    int     `json:"route_count"`
	DatacheckCount int    `json:"datacheck_count"`
	TotalMiles    float64 `json:"total_miles"`
	DurationMs    int64   `json:"duration_ms"`
}

// Publisher wraps a NATS connection used only to fire the completion
// event; it is never subscribed to.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

// NewPublisher connects to cfg.URL. Returns (nil, nil) when cfg.Enabled
// is false so callers can skip notification without branching on a flag
// everywhere.
func NewPublisher(cfg config.NotifyConfig) (*Publisher, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	conn, err := nats.Connect(cfg.URL, nats.Timeout(5*time.Second), nats.RetryOnFailedConnect(true))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", cfg.URL, err)
	}
	return &Publisher{conn: conn, subject: cfg.Subject}, nil
}

// Publish sends the run summary and flushes before returning.
func (p *Publisher) Publish(summary RunSummary) error {
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal run summary: %w", err)
	}
	if err := p.conn.Publish(p.subject, payload); err != nil {
		return fmt.Errorf("failed to publish run summary to %s: %w", p.subject, err)
	}
	return p.conn.FlushTimeout(5 * time.Second)
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	if p.conn == nil {
		return
	}
	_ = p.conn.Drain()
}
