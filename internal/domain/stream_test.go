package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelectionEvent(t *testing.T) {
	tests := []struct {
		name      string
		candidate *LocationCandidate
		cleared   bool
		kind      string
	}{
		{
			name:      "selection",
			candidate: &LocationCandidate{ID: "1", Label: "Paris, France", Category: "city"},
			cleared:   false,
			kind:      "selected",
		},
		{
			name:      "clear",
			candidate: nil,
			cleared:   true,
			kind:      "cleared",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := NewSelectionEvent("session-1", tt.candidate)

			assert.Equal(t, "session-1", event.SessionID)
			assert.Equal(t, tt.cleared, event.Cleared)
			assert.Equal(t, tt.kind, event.Kind())
			assert.NotEmpty(t, event.EventID.String())
			assert.False(t, event.OccurredAt.IsZero())
		})
	}
}

func TestSelectionEvent_JSONRoundTripKeepsRaw(t *testing.T) {
	raw := json.RawMessage(`{"place_id":1,"extratags":{"wikidata":"Q90"}}`)
	event := NewSelectionEvent("s", &LocationCandidate{ID: "1", Label: "Paris", Category: "city", Raw: raw})

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded SelectionEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.NotNil(t, decoded.Candidate)
	assert.JSONEq(t, string(raw), string(decoded.Candidate.Raw))
}
