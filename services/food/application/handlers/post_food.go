package handlers

import (
	"net/http"

	"github.com/ghuser/liveboard/pkg/errhttp"
	"github.com/ghuser/liveboard/pkg/httpx"
	"github.com/ghuser/liveboard/pkg/realtime"
	pkgvalidator "github.com/ghuser/liveboard/pkg/validator"
	appsvcs "github.com/ghuser/liveboard/services/food/application/services"
	"github.com/ghuser/liveboard/services/food/domain/models"
)

// CreateFoodItemRequest is the POST /food body. Price is a pointer so a
// missing price is a required-field error rather than a silent zero.
type CreateFoodItemRequest struct {
	Name        string   `json:"name" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Description string   `json:"description" validate:"required"`
	IsAvailable *bool    `json:"isAvailable"`
}

// PostFoodItemHandler handles POST /food requests.
type PostFoodItemHandler struct {
	svc *appsvcs.Services
}

// NewPostFoodItemHandler returns a PostFoodItemHandler backed by the given services.
func NewPostFoodItemHandler(svc *appsvcs.Services) *PostFoodItemHandler {
	return &PostFoodItemHandler{svc: svc}
}

func (h *PostFoodItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateFoodItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Food.Create(r.Context(), models.NewFoodItem(req.Name, req.Category, *req.Price, req.Description, req.IsAvailable))
	if err != nil {
		errhttp.WriteError(r.Context(), w, h.svc.Log, err)
		return
	}
	httpx.Created(w, item)

	h.svc.Hub.Broadcast(realtime.NewEvent("foodAdded", "A new food item was added", item))
	h.svc.Hub.ToRoom("food", realtime.NewEvent("newFoodItem", "A new food item was added", item))
}
