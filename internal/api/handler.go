package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/akorchak/pathfinder/internal/dispatch"
	"github.com/akorchak/pathfinder/internal/graph"
	"github.com/akorchak/pathfinder/internal/metrics"
	"github.com/akorchak/pathfinder/internal/query"
	"github.com/akorchak/pathfinder/internal/solver"
)

// maxBodyBytes caps the request body for POST /v1/paths. A path query is a
// few node IDs and constraints; anything near this limit is malformed.
const maxBodyBytes = 1 << 20

// Handler holds all HTTP handler dependencies.
type Handler struct {
	disp   *dispatch.Dispatcher
	store  *graph.Store
	loader *graph.Loader
	mux    *http.ServeMux
}

// New creates an HTTP handler and registers all routes.
func New(disp *dispatch.Dispatcher, store *graph.Store, loader *graph.Loader) http.Handler {
	h := &Handler{disp: disp, store: store, loader: loader, mux: http.NewServeMux()}

	h.mux.HandleFunc("POST /v1/paths", h.solvePath)
	h.mux.HandleFunc("GET /v1/graph", h.graphInfo)
	h.mux.HandleFunc("POST /v1/graph/reload", h.reloadGraph)
	h.mux.HandleFunc("GET /healthz", h.healthz)
	h.mux.HandleFunc("GET /readyz", h.readyz)
	h.mux.Handle("GET /metrics", promhttp.Handler())

	return loggingMiddleware(h.mux)
}

// pathResponse is the envelope for POST /v1/paths. Exactly one of Result and
// Failure is set; a missing path is a valid negative answer, not an error.
type pathResponse struct {
	QueryID string        `json:"query_id"`
	Result  *query.Result `json:"result,omitempty"`
	Failure string        `json:"failure,omitempty"`
}

// POST /v1/paths — synchronous path query.
func (h *Handler) solvePath(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var q query.Query
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
		return
	}
	if q.Source == "" {
		writeError(w, http.StatusBadRequest, "source is required")
		return
	}
	if len(q.Targets) == 0 {
		writeError(w, http.StatusBadRequest, "at least one target is required")
		return
	}
	if q.Requester == "" {
		q.Requester = clientIP(r)
	}
	queryID := uuid.New().String()

	res, err := h.disp.Handle(r.Context(), &q)
	if err != nil {
		switch {
		case errors.Is(err, solver.ErrNoPathFound):
			writeJSON(w, http.StatusOK, pathResponse{QueryID: queryID, Failure: "no_path"})
		case errors.Is(err, solver.ErrNodeNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, dispatch.ErrRateLimited):
			writeError(w, http.StatusTooManyRequests, err.Error())
		case errors.Is(err, dispatch.ErrTimeout):
			writeError(w, http.StatusGatewayTimeout, err.Error())
		case errors.Is(err, dispatch.ErrNotReady):
			writeError(w, http.StatusServiceUnavailable, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "internal fault")
		}
		return
	}
	writeJSON(w, http.StatusOK, pathResponse{QueryID: queryID, Result: res})
}

// GET /v1/graph — active snapshot stats.
func (h *Handler) graphInfo(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Current()
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, "graph not loaded")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"version": snap.Version(),
		"nodes":   snap.NodeCount(),
		"edges":   snap.EdgeCount(),
	})
}

// POST /v1/graph/reload — force reload from disk. A failed reload keeps the
// previous snapshot active.
func (h *Handler) reloadGraph(w http.ResponseWriter, r *http.Request) {
	def, err := h.loader.Load()
	if err != nil {
		metrics.GraphReloads.WithLabelValues("error").Inc()
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	snap, err := h.store.Load(def)
	if err != nil {
		metrics.GraphReloads.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	metrics.GraphReloads.WithLabelValues("ok").Inc()
	metrics.GraphNodes.Set(float64(snap.NodeCount()))
	metrics.GraphVersion.Set(float64(snap.Version()))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reloaded": true,
		"version":  snap.Version(),
		"nodes":    snap.NodeCount(),
	})
}

// GET /healthz — always 200 (liveness probe).
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /readyz — 503 until a graph snapshot is loaded.
func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	if h.store.Current() == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "no graph"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ready",
		"inflight": h.disp.Inflight(),
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
