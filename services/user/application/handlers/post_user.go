package handlers

import (
	"net/http"

	"github.com/ghuser/liveboard/pkg/errhttp"
	"github.com/ghuser/liveboard/pkg/httpx"
	"github.com/ghuser/liveboard/pkg/realtime"
	pkgvalidator "github.com/ghuser/liveboard/pkg/validator"
	appsvcs "github.com/ghuser/liveboard/services/user/application/services"
	"github.com/ghuser/liveboard/services/user/domain/models"
)

// CreateUserRequest is the POST /users body. Age is optional.
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Age   int    `json:"age" validate:"omitempty,gte=0"`
}

// PostUserHandler handles POST /users requests.
type PostUserHandler struct {
	svc *appsvcs.Services
}

// NewPostUserHandler returns a PostUserHandler backed by the given services.
func NewPostUserHandler(svc *appsvcs.Services) *PostUserHandler {
	return &PostUserHandler{svc: svc}
}

func (h *PostUserHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateUserRequest](w, r)
	if !ok {
		return
	}

	user, err := h.svc.Users.Create(r.Context(), models.NewUser(req.Name, req.Email, req.Age))
	if err != nil {
		errhttp.WriteError(r.Context(), w, h.svc.Log, err)
		return
	}
	httpx.Created(w, user)

	h.svc.Hub.Broadcast(realtime.NewEvent("userCreated", "A new user was created", user))
	h.svc.Hub.ToRoom("users", realtime.NewEvent("newUser", "A new user was created", user))
}
