package services

import (
	"time"

	"github.com/ghuser/liveboard/pkg/app"
	"github.com/ghuser/liveboard/pkg/cache"
	"github.com/ghuser/liveboard/pkg/crud"
	"github.com/ghuser/liveboard/pkg/logger"
	"github.com/ghuser/liveboard/pkg/realtime"
	"github.com/ghuser/liveboard/services/food/domain/models"
	"github.com/ghuser/liveboard/services/food/infrastructure/persistence/postgres"
)

// Services is the application-layer container for the food menu bounded
// context.
type Services struct {
	Food *crud.Service[*models.FoodItem]
	Hub  *realtime.Hub
	Log  logger.Logger
}

// New wires the food service with infrastructure from the Application container.
func New(a *app.Application) *Services {
	var store crud.Store[*models.FoodItem]
	if a.Db != nil {
		store = postgres.NewFoodStore(a.Db, a.EventBus)
	} else {
		var seed []*models.FoodItem
		if a.Cfg == nil || a.Cfg.SeedData {
			seed = seedFoodItems()
		}
		store = crud.NewMemoryStore(seed,
			crud.WithSearch((*models.FoodItem).Matches),
			crud.WithSort[*models.FoodItem](models.Compare),
		)
	}

	var opts []crud.ServiceOption[*models.FoodItem]
	if a.Redis != nil {
		opts = append(opts, crud.WithCache[*models.FoodItem](cache.New[*models.FoodItem](a.Redis, "food")))
	}

	return &Services{
		Food: crud.NewService("Food item", store, (*models.FoodItem).Validate, opts...),
		Hub:  a.Hub,
		Log:  a.Logger,
	}
}

// seedFoodItems returns the demo menu loaded into the in-memory store at
// start-up when SEED_DATA is enabled.
func seedFoodItems() []*models.FoodItem {
	now := time.Now().UTC()
	return []*models.FoodItem{
		{ID: "1", Name: "Margherita Pizza", Category: "Pizza", Price: 12.99, Description: "Classic pizza with tomato and mozzarella", IsAvailable: true, CreatedAt: now, UpdatedAt: now},
		{ID: "2", Name: "Caesar Salad", Category: "Salad", Price: 8.50, Description: "Romaine lettuce with caesar dressing", IsAvailable: true, CreatedAt: now, UpdatedAt: now},
	}
}
