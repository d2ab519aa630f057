// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
)

// HistogramDependencies defines the interface for histogram reads.
type HistogramDependencies interface {
	Histogram(ctx context.Context) (Histogram, error)
	Bin(ctx context.Context, i int) (BinDetail, error)
}

// HistogramHandler handles histogram requests.
type HistogramHandler struct {
	deps HistogramDependencies
}

// NewHistogramHandler creates a new histogram handler.
func NewHistogramHandler(deps HistogramDependencies) *HistogramHandler {
	return &HistogramHandler{deps: deps}
}

// HandleGetHistogram handles GET /histogram requests.
func (h *HistogramHandler) HandleGetHistogram(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_histogram"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	hist, err := h.deps.Histogram(r.Context())
	if err != nil {
		respondError(w, Wrap(op, err))
		return
	}
	if notModified(w, r, hist.Summary.SnapshotID) {
		return
	}
	writeJSON(w, http.StatusOK, hist.Bins)
}

// HandleGetBin handles GET /histogram/{index} requests.
func (h *HistogramHandler) HandleGetBin(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_bin"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	i, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || i < 0 {
		respondError(w, WrapKind(op, ErrBadRequest, errors.New("index must be a non-negative integer")))
		return
	}
	bin, err := h.deps.Bin(r.Context(), i)
	if err != nil {
		respondError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, bin)
}
