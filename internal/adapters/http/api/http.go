// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/medalhist/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	SummaryDependencies
	HistogramDependencies
	YearsDependencies
	ReloadDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	summaryHandler   *SummaryHandler
	histogramHandler *HistogramHandler
	yearsHandler     *YearsHandler
	reloadHandler    *ReloadHandler
	chartHandler     *ChartHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		summaryHandler:   NewSummaryHandler(deps),
		histogramHandler: NewHistogramHandler(deps),
		yearsHandler:     NewYearsHandler(deps),
		reloadHandler:    NewReloadHandler(deps),
		chartHandler:     NewChartHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/summary", MetricsMiddleware(s.summaryHandler.HandleGetSummary, "summary"))
	mux.HandleFunc("/histogram", MetricsMiddleware(s.histogramHandler.HandleGetHistogram, "histogram"))
	mux.HandleFunc("/histogram/{index}", MetricsMiddleware(s.histogramHandler.HandleGetBin, "histogram_bin"))
	mux.HandleFunc("/years", MetricsMiddleware(s.yearsHandler.HandleGetYears, "years"))
	mux.HandleFunc("/years/{year}", MetricsMiddleware(s.yearsHandler.HandleGetYear, "year"))
	mux.HandleFunc("/reload", MetricsMiddleware(s.reloadHandler.HandlePostReload, "reload"))
	mux.HandleFunc("/chart", MetricsMiddleware(s.chartHandler.HandleChartHTML, "chart"))
	mux.HandleFunc("/chart.png", MetricsMiddleware(s.chartHandler.HandleChartPNG, "chart_png"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// respondError writes err with the status its kind maps to.
func respondError(w http.ResponseWriter, err error) {
	status, code := statusOf(err)
	writeError(w, status, code, err)
}

// notModified sets the ETag of snapshot id and reports whether the client
// copy is current, in which case a 304 has been written.
func notModified(w http.ResponseWriter, r *http.Request, id string) bool {
	etag := `"` + id + `"`
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

// Read shapes returned by the handlers.
type (
	Summary    = types.Summary
	Histogram  = types.Histogram
	Bin        = types.Bin
	BinDetail  = types.BinDetail
	YearCount  = types.YearCount
	YearDetail = types.YearDetail
)
