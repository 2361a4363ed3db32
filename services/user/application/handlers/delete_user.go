package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/liveboard/pkg/errhttp"
	"github.com/ghuser/liveboard/pkg/httpx"
	"github.com/ghuser/liveboard/pkg/realtime"
	appsvcs "github.com/ghuser/liveboard/services/user/application/services"
)

// DeleteUserHandler handles DELETE /users/{id} requests.
type DeleteUserHandler struct {
	svc *appsvcs.Services
}

// NewDeleteUserHandler returns a DeleteUserHandler backed by the given services.
func NewDeleteUserHandler(svc *appsvcs.Services) *DeleteUserHandler {
	return &DeleteUserHandler{svc: svc}
}

func (h *DeleteUserHandler) Execute(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Users.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteError(r.Context(), w, h.svc.Log, err)
		return
	}
	httpx.Deleted(w, "User deleted successfully", user)

	h.svc.Hub.Broadcast(realtime.NewEvent("userDeleted", "A user was deleted", user))
	h.svc.Hub.ToRoom("users", realtime.NewEvent("userRemoved", "A user was deleted", user))
}
