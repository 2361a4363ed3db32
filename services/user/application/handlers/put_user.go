package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/liveboard/pkg/errhttp"
	"github.com/ghuser/liveboard/pkg/httpx"
	"github.com/ghuser/liveboard/pkg/realtime"
	pkgvalidator "github.com/ghuser/liveboard/pkg/validator"
	appsvcs "github.com/ghuser/liveboard/services/user/application/services"
	"github.com/ghuser/liveboard/services/user/domain/models"
)

// UpdateUserRequest is the PUT /users/{id} body. All fields are optional;
// absent fields keep their stored values.
type UpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"omitempty,email"`
	Age   *int    `json:"age" validate:"omitempty,gte=0"`
}

// PutUserHandler handles PUT /users/{id} requests.
type PutUserHandler struct {
	svc *appsvcs.Services
}

// NewPutUserHandler returns a PutUserHandler backed by the given services.
func NewPutUserHandler(svc *appsvcs.Services) *PutUserHandler {
	return &PutUserHandler{svc: svc}
}

func (h *PutUserHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[UpdateUserRequest](w, r)
	if !ok {
		return
	}

	patch := models.Patch{Name: req.Name, Email: req.Email, Age: req.Age}

	user, err := h.svc.Users.Update(r.Context(), chi.URLParam(r, "id"), func(u *models.User) *models.User {
		return u.Apply(patch)
	})
	if err != nil {
		errhttp.WriteError(r.Context(), w, h.svc.Log, err)
		return
	}
	httpx.OK(w, user)

	h.svc.Hub.Broadcast(realtime.NewEvent("userUpdated", "A user was updated", user))
	h.svc.Hub.ToRoom("users", realtime.NewEvent("userModified", "A user was updated", user))
}
