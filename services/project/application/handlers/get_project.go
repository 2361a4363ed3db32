package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/liveboard/pkg/crud"
	"github.com/ghuser/liveboard/pkg/errhttp"
	"github.com/ghuser/liveboard/pkg/httpx"
	appsvcs "github.com/ghuser/liveboard/services/project/application/services"
)

// GetProjectsHandler handles GET /projects requests: the full listing plus
// optional ?search, ?sortBy/?sortOrder, and ?page/?limit pagination.
type GetProjectsHandler struct {
	svc *appsvcs.Services
}

// NewGetProjectsHandler returns a GetProjectsHandler backed by the given services.
func NewGetProjectsHandler(svc *appsvcs.Services) *GetProjectsHandler {
	return &GetProjectsHandler{svc: svc}
}

func (h *GetProjectsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	q := crud.ParseQuery(r.URL.Query())
	projects, total, err := h.svc.Projects.List(r.Context(), q)
	if err != nil {
		errhttp.WriteError(r.Context(), w, h.svc.Log, err)
		return
	}
	httpx.List(w, projects, total, httpx.NewPagination(q.Page, q.Limit, total))
}

// GetProjectHandler handles GET /projects/{id} requests.
type GetProjectHandler struct {
	svc *appsvcs.Services
}

// NewGetProjectHandler returns a GetProjectHandler backed by the given services.
func NewGetProjectHandler(svc *appsvcs.Services) *GetProjectHandler {
	return &GetProjectHandler{svc: svc}
}

func (h *GetProjectHandler) Execute(w http.ResponseWriter, r *http.Request) {
	project, err := h.svc.Projects.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteError(r.Context(), w, h.svc.Log, err)
		return
	}
	httpx.OK(w, project)
}
