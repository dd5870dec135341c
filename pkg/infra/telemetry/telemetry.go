package telemetry

import (
	"context"
	"time"
)

// DecisionEvent is emitted once per pipeline evaluation.
type DecisionEvent struct {
	RequestID  string    `json:"request_id"`
	Verdict    string    `json:"verdict"`
	Category   string    `json:"category,omitempty"`
	Suppressed bool      `json:"suppressed"`
	CreatedAt  time.Time `json:"created_at"`
}

// Exporter ships decision events somewhere durable. Export failures are the
// exporter's problem to report; moderation never blocks on telemetry.
type Exporter interface {
	Name() string
	Handle(ctx context.Context, evt *DecisionEvent) error
	Close()
}

// NoopExporter is used when telemetry is disabled.
type NoopExporter struct{}

func (NoopExporter) Name() string { return "noop" }

func (NoopExporter) Handle(ctx context.Context, evt *DecisionEvent) error { return nil }

func (NoopExporter) Close() {}
