package engine

import (
	"context"
	"log/slog"
)

// Telemetry event names. One event is emitted per successful mutating
// call; events are a side channel for off-chain observers and carry no
// delivery guarantee beyond that.
const (
	EventManualBurn    = "burn.manual"
	EventDynamicBurn   = "burn.cycle"
	EventOracleUpdated = "config.oracle_updated"
	EventPauseToggled  = "config.pause_toggled"
	EventCapUpdated    = "config.cap_updated"
)

// Event is a structured telemetry record: a name plus key/value fields.
// Events are not persisted state; the audit ledger is the sole
// historical record.
type Event struct {
	Name   string         `json:"name"`
	Fields map[string]any `json:"fields"`
}

// Emitter receives telemetry events from the engine.
//
// Emit must not block: the engine calls it synchronously inside the
// single-writer section. Implementations that ship events elsewhere
// should hand off to their own queue.
type Emitter interface {
	Emit(ctx context.Context, ev Event)
}

// SlogEmitter logs every event through a structured logger.
// This is the production emitter for standalone deployments.
type SlogEmitter struct {
	logger *slog.Logger
}

// NewSlogEmitter creates an emitter writing to the given logger.
func NewSlogEmitter(logger *slog.Logger) *SlogEmitter {
	return &SlogEmitter{logger: logger}
}

// Emit implements Emitter.
func (e *SlogEmitter) Emit(ctx context.Context, ev Event) {
	attrs := make([]any, 0, len(ev.Fields)*2)
	for k, v := range ev.Fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	e.logger.LogAttrs(ctx, slog.LevelInfo, ev.Name, slog.Group("event", attrs...))
}

// NopEmitter discards all events. Default when no emitter is configured.
type NopEmitter struct{}

// Emit implements Emitter.
func (NopEmitter) Emit(context.Context, Event) {}
