package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/liveboard/pkg/app"
	"github.com/ghuser/liveboard/services/food/application/handlers"
	appsvcs "github.com/ghuser/liveboard/services/food/application/services"
)

// FoodRoutes registers food menu endpoints on the provided chi router.
func FoodRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/food", func(r chi.Router) {
			r.Get("/", handlers.NewGetFoodItemsHandler(svcs).Execute)
			r.Post("/", handlers.NewPostFoodItemHandler(svcs).Execute)
			r.Get("/{id}", handlers.NewGetFoodItemHandler(svcs).Execute)
			r.Put("/{id}", handlers.NewPutFoodItemHandler(svcs).Execute)
			r.Delete("/{id}", handlers.NewDeleteFoodItemHandler(svcs).Execute)
		})
	})
}
