package domain

import (
	"time"

	"github.com/google/uuid"
)

// StreamLocationSelected - стрим с событиями выбора локации для хост-приложений
const StreamLocationSelected = "stream:location:selected"

// SelectionEvent - событие выбора (или сброса выбора) в сессии поиска
type SelectionEvent struct {
	EventID    uuid.UUID          `json:"event_id"`
	SessionID  string             `json:"session_id"`
	Candidate  *LocationCandidate `json:"candidate,omitempty"`
	Cleared    bool               `json:"cleared"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// NewSelectionEvent создает событие; nil кандидат означает сброс выбора
func NewSelectionEvent(sessionID string, candidate *LocationCandidate) *SelectionEvent {
	return &SelectionEvent{
		EventID:    uuid.New(),
		SessionID:  sessionID,
		Candidate:  candidate,
		Cleared:    candidate == nil,
		OccurredAt: time.Now().UTC(),
	}
}

// Kind - "selected" или "cleared", используется в логах и метриках
func (e *SelectionEvent) Kind() string {
	if e.Cleared {
		return "cleared"
	}
	return "selected"
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
