package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/liveboard/services/food/domain/models"
)

// Watermill topics published by the postgres food store.
const (
	TopicFoodCreated = "food.created"
	TopicFoodUpdated = "food.updated"
	TopicFoodDeleted = "food.deleted"
)

// FoodChangedEvent is published after a food item mutation is persisted.
type FoodChangedEvent struct {
	EventID    uuid.UUID        `json:"event_id"`
	Version    int              `json:"version"`
	Action     string           `json:"action"` // created | updated | deleted
	Food       *models.FoodItem `json:"food"`
	OccurredAt time.Time        `json:"occurred_at"`
}
