package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/render"

	"github.com/buildy/tablemaker/internal/grid"
)

// errResponse is the JSON error shape.
type errResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// respond writes v as JSON with the given status.
func respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// respondError maps the domain error taxonomy onto HTTP statuses. Every
// failure surfaces with a readable message; nothing is swallowed.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validation *grid.ValidationError
		parse      *grid.ParseError
		backend    *grid.BackendError
	)
	switch {
	case errors.Is(err, grid.ErrNotFound):
		respond(w, r, http.StatusNotFound, errResponse{Error: err.Error(), Code: "NOT_FOUND"})
	case errors.As(err, &validation):
		respond(w, r, http.StatusBadRequest, errResponse{Error: err.Error(), Code: "VALIDATION_ERROR"})
	case errors.As(err, &parse):
		respond(w, r, http.StatusBadRequest, errResponse{Error: err.Error(), Code: "PARSE_ERROR"})
	case errors.As(err, &backend):
		respond(w, r, http.StatusBadGateway, errResponse{Error: err.Error(), Code: "BACKEND_ERROR"})
	default:
		log.Printf("internal error: %v", err)
		respond(w, r, http.StatusInternalServerError, errResponse{Error: "internal server error", Code: "INTERNAL_ERROR"})
	}
}

// badRequest reports a malformed request body.
func badRequest(w http.ResponseWriter, r *http.Request, err error) {
	respond(w, r, http.StatusBadRequest, errResponse{Error: err.Error(), Code: "BAD_REQUEST"})
}
