package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/liveboard/pkg/errhttp"
	"github.com/ghuser/liveboard/pkg/httpx"
	"github.com/ghuser/liveboard/pkg/realtime"
	pkgvalidator "github.com/ghuser/liveboard/pkg/validator"
	appsvcs "github.com/ghuser/liveboard/services/project/application/services"
	"github.com/ghuser/liveboard/services/project/domain/models"
)

// UpdateProjectRequest is the PUT /projects/{id} body. All fields are
// optional; absent fields keep their stored values.
type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=active completed on-hold"`
}

// PutProjectHandler handles PUT /projects/{id} requests.
type PutProjectHandler struct {
	svc *appsvcs.Services
}

// NewPutProjectHandler returns a PutProjectHandler backed by the given services.
func NewPutProjectHandler(svc *appsvcs.Services) *PutProjectHandler {
	return &PutProjectHandler{svc: svc}
}

func (h *PutProjectHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[UpdateProjectRequest](w, r)
	if !ok {
		return
	}

	patch := models.Patch{Name: req.Name, Description: req.Description}
	if req.Status != nil {
		status := models.Status(*req.Status)
		patch.Status = &status
	}

	project, err := h.svc.Projects.Update(r.Context(), chi.URLParam(r, "id"), func(p *models.Project) *models.Project {
		return p.Apply(patch)
	})
	if err != nil {
		errhttp.WriteError(r.Context(), w, h.svc.Log, err)
		return
	}
	httpx.OK(w, project)

	h.svc.Hub.Broadcast(realtime.NewEvent("projectUpdated", "A project was updated", project))
	h.svc.Hub.ToRoom("projects", realtime.NewEvent("projectModified", "A project was updated", project))
}
