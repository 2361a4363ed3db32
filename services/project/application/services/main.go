package services

import (
	"context"
	"strings"
	"time"

	"github.com/ghuser/liveboard/pkg/app"
	"github.com/ghuser/liveboard/pkg/cache"
	"github.com/ghuser/liveboard/pkg/crud"
	"github.com/ghuser/liveboard/pkg/logger"
	"github.com/ghuser/liveboard/pkg/realtime"
	"github.com/ghuser/liveboard/services/project/domain/models"
	"github.com/ghuser/liveboard/services/project/infrastructure/persistence/postgres"
)

// Services is the application-layer container for the projects bounded
// context. The store backend and optional collaborators are resolved from
// the Application container: postgres + cache when a database is wired,
// a seeded in-memory store otherwise.
type Services struct {
	Projects *crud.Service[*models.Project]
	Hub      *realtime.Hub
	Log      logger.Logger
}

// New wires the project service with infrastructure from the Application container.
func New(a *app.Application) *Services {
	var store crud.Store[*models.Project]
	if a.Db != nil {
		store = postgres.NewProjectStore(a.Db, a.EventBus)
	} else {
		var seed []*models.Project
		if a.Cfg == nil || a.Cfg.SeedData {
			seed = seedProjects()
		}
		store = crud.NewMemoryStore(seed,
			crud.WithSearch((*models.Project).Matches),
			crud.WithSort[*models.Project](models.Compare),
		)
	}

	opts := []crud.ServiceOption[*models.Project]{
		crud.WithBeforeSave[*models.Project](uniqueName),
	}
	if a.Redis != nil {
		opts = append(opts, crud.WithCache[*models.Project](cache.New[*models.Project](a.Redis, "project")))
	}

	return &Services{
		Projects: crud.NewService("Project", store, (*models.Project).Validate, opts...),
		Hub:      a.Hub,
		Log:      a.Logger,
	}
}

// uniqueName rejects a create whose name collides with an existing project,
// ignoring case and surrounding whitespace. The postgres backend also guards
// this with a unique index; the hook keeps the in-memory backend honest.
func uniqueName(ctx context.Context, s crud.Store[*models.Project], candidate *models.Project) error {
	existing, _, err := s.List(ctx, crud.Query{Search: candidate.Name})
	if err != nil {
		return err
	}
	want := strings.TrimSpace(strings.ToLower(candidate.Name))
	for _, p := range existing {
		if strings.TrimSpace(strings.ToLower(p.Name)) == want {
			return crud.Conflict("A project with this title already exists")
		}
	}
	return nil
}

// seedProjects returns the demo projects loaded into the in-memory store at
// start-up when SEED_DATA is enabled. Fixed ids keep the demo pages stable.
func seedProjects() []*models.Project {
	now := time.Now().UTC()
	return []*models.Project{
		{ID: "1", Name: "Project 1", Description: "First project", Status: models.StatusActive, CreatedAt: now, UpdatedAt: now},
		{ID: "2", Name: "Project 2", Description: "Second project", Status: models.StatusCompleted, CreatedAt: now, UpdatedAt: now},
	}
}
