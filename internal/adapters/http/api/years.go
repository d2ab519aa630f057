// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
)

// YearsDependencies defines the interface for per-year reads.
type YearsDependencies interface {
	Years(ctx context.Context) ([]YearCount, error)
	Year(ctx context.Context, year int) (YearDetail, error)
}

// YearsHandler handles year requests.
type YearsHandler struct {
	deps YearsDependencies
}

// NewYearsHandler creates a new years handler.
func NewYearsHandler(deps YearsDependencies) *YearsHandler {
	return &YearsHandler{deps: deps}
}

// HandleGetYears handles GET /years requests.
func (h *YearsHandler) HandleGetYears(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_years"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	years, err := h.deps.Years(r.Context())
	if err != nil {
		respondError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, years)
}

// HandleGetYear handles GET /years/{year} requests.
func (h *YearsHandler) HandleGetYear(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_year"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		respondError(w, WrapKind(op, ErrBadRequest, errors.New("year must be an integer")))
		return
	}
	detail, err := h.deps.Year(r.Context(), year)
	if err != nil {
		respondError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
