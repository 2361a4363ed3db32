package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/liveboard/pkg/errhttp"
	"github.com/ghuser/liveboard/pkg/httpx"
	"github.com/ghuser/liveboard/pkg/realtime"
	appsvcs "github.com/ghuser/liveboard/services/food/application/services"
)

// DeleteFoodItemHandler handles DELETE /food/{id} requests.
type DeleteFoodItemHandler struct {
	svc *appsvcs.Services
}

// NewDeleteFoodItemHandler returns a DeleteFoodItemHandler backed by the given services.
func NewDeleteFoodItemHandler(svc *appsvcs.Services) *DeleteFoodItemHandler {
	return &DeleteFoodItemHandler{svc: svc}
}

func (h *DeleteFoodItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Food.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteError(r.Context(), w, h.svc.Log, err)
		return
	}
	httpx.Deleted(w, "Food item deleted successfully", item)

	h.svc.Hub.Broadcast(realtime.NewEvent("foodDeleted", "A food item was deleted", item))
	h.svc.Hub.ToRoom("food", realtime.NewEvent("foodItemDeleted", "A food item was deleted", item))
}
