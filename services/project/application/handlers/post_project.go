package handlers

import (
	"net/http"

	"github.com/ghuser/liveboard/pkg/errhttp"
	"github.com/ghuser/liveboard/pkg/httpx"
	"github.com/ghuser/liveboard/pkg/realtime"
	pkgvalidator "github.com/ghuser/liveboard/pkg/validator"
	appsvcs "github.com/ghuser/liveboard/services/project/application/services"
	"github.com/ghuser/liveboard/services/project/domain/models"
)

// CreateProjectRequest is the POST /projects body.
type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Status      string `json:"status" validate:"omitempty,oneof=active completed on-hold"`
}

// PostProjectHandler handles POST /projects requests.
type PostProjectHandler struct {
	svc *appsvcs.Services
}

// NewPostProjectHandler returns a PostProjectHandler backed by the given services.
func NewPostProjectHandler(svc *appsvcs.Services) *PostProjectHandler {
	return &PostProjectHandler{svc: svc}
}

func (h *PostProjectHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateProjectRequest](w, r)
	if !ok {
		return
	}

	project, err := h.svc.Projects.Create(r.Context(), models.NewProject(req.Name, req.Description, models.Status(req.Status)))
	if err != nil {
		errhttp.WriteError(r.Context(), w, h.svc.Log, err)
		return
	}
	httpx.Created(w, project)

	h.svc.Hub.Broadcast(realtime.NewEvent("projectAdded", "A new project was created", project))
	h.svc.Hub.ToRoom("projects", realtime.NewEvent("newProject", "A new project was created", project))
}
