package services

import (
	"github.com/ghuser/liveboard/pkg/app"
	"github.com/ghuser/liveboard/pkg/cache"
	"github.com/ghuser/liveboard/pkg/crud"
	"github.com/ghuser/liveboard/pkg/logger"
	"github.com/ghuser/liveboard/pkg/realtime"
	"github.com/ghuser/liveboard/services/user/domain/models"
	"github.com/ghuser/liveboard/services/user/infrastructure/persistence/postgres"
)

// Services is the application-layer container for the users bounded context.
type Services struct {
	Users *crud.Service[*models.User]
	Hub   *realtime.Hub
	Log   logger.Logger
}

// New wires the user service with infrastructure from the Application
// container. Users start empty in the memory backend; there are no seeds.
func New(a *app.Application) *Services {
	var store crud.Store[*models.User]
	if a.Db != nil {
		store = postgres.NewUserStore(a.Db, a.EventBus)
	} else {
		store = crud.NewMemoryStore[*models.User](nil,
			crud.WithSearch((*models.User).Matches),
			crud.WithSort[*models.User](models.Compare),
		)
	}

	var opts []crud.ServiceOption[*models.User]
	if a.Redis != nil {
		opts = append(opts, crud.WithCache[*models.User](cache.New[*models.User](a.Redis, "user")))
	}

	return &Services{
		Users: crud.NewService("User", store, (*models.User).Validate, opts...),
		Hub:   a.Hub,
		Log:   a.Logger,
	}
}
