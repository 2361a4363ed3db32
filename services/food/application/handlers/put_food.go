package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/liveboard/pkg/errhttp"
	"github.com/ghuser/liveboard/pkg/httpx"
	"github.com/ghuser/liveboard/pkg/realtime"
	pkgvalidator "github.com/ghuser/liveboard/pkg/validator"
	appsvcs "github.com/ghuser/liveboard/services/food/application/services"
	"github.com/ghuser/liveboard/services/food/domain/models"
)

// UpdateFoodItemRequest is the PUT /food/{id} body. All fields are optional;
// absent fields keep their stored values.
type UpdateFoodItemRequest struct {
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
	IsAvailable *bool    `json:"isAvailable"`
}

// PutFoodItemHandler handles PUT /food/{id} requests.
type PutFoodItemHandler struct {
	svc *appsvcs.Services
}

// NewPutFoodItemHandler returns a PutFoodItemHandler backed by the given services.
func NewPutFoodItemHandler(svc *appsvcs.Services) *PutFoodItemHandler {
	return &PutFoodItemHandler{svc: svc}
}

func (h *PutFoodItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[UpdateFoodItemRequest](w, r)
	if !ok {
		return
	}

	patch := models.Patch{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Description: req.Description,
		IsAvailable: req.IsAvailable,
	}

	item, err := h.svc.Food.Update(r.Context(), chi.URLParam(r, "id"), func(f *models.FoodItem) *models.FoodItem {
		return f.Apply(patch)
	})
	if err != nil {
		errhttp.WriteError(r.Context(), w, h.svc.Log, err)
		return
	}
	httpx.OK(w, item)

	h.svc.Hub.Broadcast(realtime.NewEvent("foodUpdated", "A food item was updated", item))
	h.svc.Hub.ToRoom("food", realtime.NewEvent("foodItemUpdated", "A food item was updated", item))
}
