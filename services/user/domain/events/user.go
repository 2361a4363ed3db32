package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/liveboard/services/user/domain/models"
)

// Watermill topics published by the postgres user store.
const (
	TopicUserCreated = "user.created"
	TopicUserUpdated = "user.updated"
	TopicUserDeleted = "user.deleted"
)

// UserChangedEvent is published after a user mutation is persisted.
type UserChangedEvent struct {
	EventID    uuid.UUID    `json:"event_id"`
	Version    int          `json:"version"`
	Action     string       `json:"action"` // created | updated | deleted
	User       *models.User `json:"user"`
	OccurredAt time.Time    `json:"occurred_at"`
}
