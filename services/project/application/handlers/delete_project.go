package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/liveboard/pkg/errhttp"
	"github.com/ghuser/liveboard/pkg/httpx"
	"github.com/ghuser/liveboard/pkg/realtime"
	appsvcs "github.com/ghuser/liveboard/services/project/application/services"
)

// DeleteProjectHandler handles DELETE /projects/{id} requests.
type DeleteProjectHandler struct {
	svc *appsvcs.Services
}

// NewDeleteProjectHandler returns a DeleteProjectHandler backed by the given services.
func NewDeleteProjectHandler(svc *appsvcs.Services) *DeleteProjectHandler {
	return &DeleteProjectHandler{svc: svc}
}

func (h *DeleteProjectHandler) Execute(w http.ResponseWriter, r *http.Request) {
	project, err := h.svc.Projects.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteError(r.Context(), w, h.svc.Log, err)
		return
	}
	httpx.Deleted(w, "Project deleted successfully", project)

	h.svc.Hub.Broadcast(realtime.NewEvent("projectDeleted", "A project was deleted", project))
	h.svc.Hub.ToRoom("projects", realtime.NewEvent("projectRemoved", "A project was deleted", project))
}
