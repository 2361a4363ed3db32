// Package errhttp maps CRUD sentinel errors to HTTP envelope responses.
package errhttp

import (
	"context"
	"errors"
	"net/http"

	"github.com/ghuser/liveboard/pkg/crud"
	"github.com/ghuser/liveboard/pkg/httpx"
	"github.com/ghuser/liveboard/pkg/logger"
)

// WriteError maps err to an HTTP status and writes a failure envelope.
// Validation failures surface as 400 with the joined violation list,
// missing entities as 404 with the resource-specific message, uniqueness
// violations as 409. Anything else is an unexpected error: the client gets
// a generic 500 message and the real cause is logged server-side only.
func WriteError(ctx context.Context, w http.ResponseWriter, log logger.Logger, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		if log != nil {
			log.ErrorContext(ctx, "unexpected error", "error", err)
		}
		httpx.Fail(w, status, "Something went wrong!")
		return
	}
	httpx.Fail(w, status, err.Error())
}

// StatusOf resolves the HTTP status for err using errors.Is(), so wrapped
// sentinel errors are matched correctly. Unrecognized errors map to 500.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, crud.ErrValidation):
		return http.StatusBadRequest // 400
	case errors.Is(err, crud.ErrNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, crud.ErrConflict):
		return http.StatusConflict // 409
	default:
		return http.StatusInternalServerError // 500
	}
}
