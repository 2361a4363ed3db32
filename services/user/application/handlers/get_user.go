package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/liveboard/pkg/crud"
	"github.com/ghuser/liveboard/pkg/errhttp"
	"github.com/ghuser/liveboard/pkg/httpx"
	appsvcs "github.com/ghuser/liveboard/services/user/application/services"
)

// GetUsersHandler handles GET /users requests.
type GetUsersHandler struct {
	svc *appsvcs.Services
}

// NewGetUsersHandler returns a GetUsersHandler backed by the given services.
func NewGetUsersHandler(svc *appsvcs.Services) *GetUsersHandler {
	return &GetUsersHandler{svc: svc}
}

func (h *GetUsersHandler) Execute(w http.ResponseWriter, r *http.Request) {
	q := crud.ParseQuery(r.URL.Query())
	users, total, err := h.svc.Users.List(r.Context(), q)
	if err != nil {
		errhttp.WriteError(r.Context(), w, h.svc.Log, err)
		return
	}
	httpx.List(w, users, total, httpx.NewPagination(q.Page, q.Limit, total))
}

// GetUserHandler handles GET /users/{id} requests.
type GetUserHandler struct {
	svc *appsvcs.Services
}

// NewGetUserHandler returns a GetUserHandler backed by the given services.
func NewGetUserHandler(svc *appsvcs.Services) *GetUserHandler {
	return &GetUserHandler{svc: svc}
}

func (h *GetUserHandler) Execute(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteError(r.Context(), w, h.svc.Log, err)
		return
	}
	httpx.OK(w, user)
}
