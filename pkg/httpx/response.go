package httpx

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform JSON wrapper for every API response:
// {success, data?, error?, message?, count?, pagination?}.
type Envelope struct {
	Success    bool              `json:"success"`
	Data       any               `json:"data,omitempty"`
	Error      string            `json:"error,omitempty"`
	Message    string            `json:"message,omitempty"`
	Count      *int              `json:"count,omitempty"`
	Pagination *Pagination       `json:"pagination,omitempty"`
	Fields     map[string]string `json:"fields,omitempty"`
}

// Pagination describes the page window of a list response.
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// NewPagination computes the page window for a listing. It returns nil when
// limit <= 0 (pagination disabled), so it can feed List directly.
func NewPagination(page, limit, total int) *Pagination {
	if limit <= 0 {
		return nil
	}
	if page < 1 {
		page = 1
	}
	pages := (total + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}
	return &Pagination{
		CurrentPage:  page,
		TotalPages:   pages,
		TotalItems:   total,
		ItemsPerPage: limit,
	}
}

// JSON writes v as JSON with the given status code. Content-Type and
// X-Content-Type-Options headers are set automatically. Encoding errors are
// silently discarded — use this for handler responses, not for streaming.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes a 200 envelope carrying data.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a 201 envelope carrying the created entity.
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, Envelope{Success: true, Data: data})
}

// List writes a 200 envelope carrying the data array and its count.
// pagination may be nil for unpaginated listings.
func List(w http.ResponseWriter, data any, count int, pagination *Pagination) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data, Count: &count, Pagination: pagination})
}

// Deleted writes a 200 envelope carrying a message plus the removed entity.
func Deleted(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Fail writes a {success:false, error:message} envelope with the given status.
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Success: false, Error: message})
}

// FailFields writes a failure envelope with a per-field detail map,
// used for request-shape validation errors.
func FailFields(w http.ResponseWriter, status int, message string, fields map[string]string) {
	JSON(w, status, Envelope{Success: false, Error: message, Fields: fields})
}

// NotFoundHandler responds with the fixed 404 route envelope. It is mounted
// as both the NotFound and the MethodNotAllowed handler: an unsupported verb
// on a known path falls through to the same "Route not found" response.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		Fail(w, http.StatusNotFound, "Route not found")
	}
}
