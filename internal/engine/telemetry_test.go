package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogEmitter_LogsEventWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	emitter := NewSlogEmitter(logger)

	emitter.Emit(context.Background(), Event{
		Name: EventManualBurn,
		Fields: map[string]any{
			"caller": "alice",
			"amount": uint64(500),
		},
	})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	assert.Equal(t, EventManualBurn, line["msg"])

	event, ok := line["event"].(map[string]any)
	require.True(t, ok, "fields grouped under event")
	assert.Equal(t, "alice", event["caller"])
	assert.Equal(t, float64(500), event["amount"])
}

func TestNopEmitter_Discards(t *testing.T) {
	assert.NotPanics(t, func() {
		NopEmitter{}.Emit(context.Background(), Event{Name: EventDynamicBurn})
	})
}
