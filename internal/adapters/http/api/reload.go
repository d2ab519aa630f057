// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
)

// ReloadDependencies defines the interface for dataset reloads.
type ReloadDependencies interface {
	Reload(ctx context.Context) (Summary, error)
}

// ReloadHandler handles reload requests.
type ReloadHandler struct {
	deps ReloadDependencies
}

// NewReloadHandler creates a new reload handler.
func NewReloadHandler(deps ReloadDependencies) *ReloadHandler {
	return &ReloadHandler{deps: deps}
}

// HandlePostReload handles POST /reload requests. A failed reload leaves the
// previous snapshot in place.
func (h *ReloadHandler) HandlePostReload(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_reload"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	sum, err := h.deps.Reload(r.Context())
	if err != nil {
		respondError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
