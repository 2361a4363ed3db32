package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/liveboard/services/project/domain/models"
)

// Watermill topics published by the postgres project store, one per
// mutation kind. Consumers subscribe via Bus.Subscribe.
const (
	TopicProjectCreated = "project.created"
	TopicProjectUpdated = "project.updated"
	TopicProjectDeleted = "project.deleted"
)

// ProjectChangedEvent is published after a project mutation is persisted.
// It carries a full snapshot so consumers (cache warmers) need no lookback.
type ProjectChangedEvent struct {
	EventID    uuid.UUID       `json:"event_id"` // unique publish-time identifier for deduplication
	Version    int             `json:"version"`  // schema version; increment on breaking changes
	Action     string          `json:"action"`   // created | updated | deleted
	Project    *models.Project `json:"project"`
	OccurredAt time.Time       `json:"occurred_at"`
}
