package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/liveboard/pkg/app"
	"github.com/ghuser/liveboard/services/project/application/handlers"
	appsvcs "github.com/ghuser/liveboard/services/project/application/services"
)

// ProjectRoutes registers project endpoints on the provided chi router.
func ProjectRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", handlers.NewGetProjectsHandler(svcs).Execute)
			r.Post("/", handlers.NewPostProjectHandler(svcs).Execute)
			r.Get("/{id}", handlers.NewGetProjectHandler(svcs).Execute)
			r.Put("/{id}", handlers.NewPutProjectHandler(svcs).Execute)
			r.Delete("/{id}", handlers.NewDeleteProjectHandler(svcs).Execute)
		})
	})
}
