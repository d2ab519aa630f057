// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// SummaryDependencies defines the interface for summary reads.
type SummaryDependencies interface {
	Summary(ctx context.Context) (Summary, error)
}

// SummaryHandler handles summary requests.
type SummaryHandler struct {
	deps SummaryDependencies
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(deps SummaryDependencies) *SummaryHandler {
	return &SummaryHandler{deps: deps}
}

// HandleGetSummary handles GET /summary requests.
func (h *SummaryHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_summary"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	sum, err := h.deps.Summary(r.Context())
	if err != nil {
		respondError(w, Wrap(op, err))
		return
	}
	if notModified(w, r, sum.SnapshotID) {
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
