package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/liveboard/pkg/crud"
	"github.com/ghuser/liveboard/pkg/errhttp"
	"github.com/ghuser/liveboard/pkg/httpx"
	appsvcs "github.com/ghuser/liveboard/services/food/application/services"
)

// GetFoodItemsHandler handles GET /food requests.
type GetFoodItemsHandler struct {
	svc *appsvcs.Services
}

// NewGetFoodItemsHandler returns a GetFoodItemsHandler backed by the given services.
func NewGetFoodItemsHandler(svc *appsvcs.Services) *GetFoodItemsHandler {
	return &GetFoodItemsHandler{svc: svc}
}

func (h *GetFoodItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	q := crud.ParseQuery(r.URL.Query())
	items, total, err := h.svc.Food.List(r.Context(), q)
	if err != nil {
		errhttp.WriteError(r.Context(), w, h.svc.Log, err)
		return
	}
	httpx.List(w, items, total, httpx.NewPagination(q.Page, q.Limit, total))
}

// GetFoodItemHandler handles GET /food/{id} requests.
type GetFoodItemHandler struct {
	svc *appsvcs.Services
}

// NewGetFoodItemHandler returns a GetFoodItemHandler backed by the given services.
func NewGetFoodItemHandler(svc *appsvcs.Services) *GetFoodItemHandler {
	return &GetFoodItemHandler{svc: svc}
}

func (h *GetFoodItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	item, err := h.svc.Food.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteError(r.Context(), w, h.svc.Log, err)
		return
	}
	httpx.OK(w, item)
}
