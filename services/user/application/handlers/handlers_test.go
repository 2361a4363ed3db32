package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/liveboard/pkg/app"
	"github.com/ghuser/liveboard/pkg/config"
	"github.com/ghuser/liveboard/pkg/logger"
	"github.com/ghuser/liveboard/services/user/application/api"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Count   *int            `json:"count"`
}

type userDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{LogLevel: "error"}
	a := &app.Application{Cfg: cfg, Logger: logger.New(cfg)}

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		api.UserRoutes(r, a)
	})
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), "body: %s", rr.Body.String())
	return rr, env
}

// Users start empty: there are no seed users.
func TestUsers_listStartsEmpty(t *testing.T) {
	srv := newTestServer(t)

	rr, env := doJSON(t, srv, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, env.Count)
	assert.Equal(t, 0, *env.Count)
}

func TestUsers_createAndFetch(t *testing.T) {
	srv := newTestServer(t)

	rr, env := doJSON(t, srv, http.MethodPost, "/api/users",
		`{"name":"Ada","email":"ada@example.com","age":36}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created userDTO
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEmpty(t, created.ID)

	rr, env = doJSON(t, srv, http.MethodGet, "/api/users/"+created.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var fetched userDTO
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, created, fetched)
}

func TestUsers_emailValidation(t *testing.T) {
	srv := newTestServer(t)

	rr, env := doJSON(t, srv, http.MethodPost, "/api/users",
		`{"name":"Ada","email":"not-an-email"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Validation failed", env.Error)
}

func TestUsers_ageIsOptional(t *testing.T) {
	srv := newTestServer(t)

	rr, _ := doJSON(t, srv, http.MethodPost, "/api/users",
		`{"name":"Ada","email":"ada@example.com"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
}

func TestUsers_updateAndDelete(t *testing.T) {
	srv := newTestServer(t)

	_, env := doJSON(t, srv, http.MethodPost, "/api/users",
		`{"name":"Ada","email":"ada@example.com","age":36}`)
	var created userDTO
	require.NoError(t, json.Unmarshal(env.Data, &created))

	rr, env := doJSON(t, srv, http.MethodPut, "/api/users/"+created.ID,
		`{"email":"lovelace@example.com"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var updated userDTO
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "lovelace@example.com", updated.Email)
	assert.Equal(t, "Ada", updated.Name)

	rr, env = doJSON(t, srv, http.MethodDelete, "/api/users/"+created.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "User deleted successfully", env.Message)

	rr, env = doJSON(t, srv, http.MethodGet, "/api/users/"+created.ID, "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "User not found", env.Error)
}
