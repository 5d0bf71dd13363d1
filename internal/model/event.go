package model

import (
	"time"

	"github.com/google/uuid"
)

// Event is a domain change notification published after a committed write.
type Event struct {
	ID         uuid.UUID   `json:"id"`
	Type       string      `json:"type"`
	EntityID   uuid.UUID   `json:"entity_id"`
	Payload    interface{} `json:"payload,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}
