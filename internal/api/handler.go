package api

import (
	"NetInsights/internal/insights"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

const defaultUpdateTimeout = 30 * time.Second

// Insights is the slice of the aggregator the API depends on.
type Insights interface {
	CurrentSnapshot() *insights.Snapshot
	Reset()
	Subscribe() (subID uint64, signals <-chan struct{})
	Unsubscribe(subID uint64)
}

// Handler holds the dependencies for the API handlers.
type Handler struct {
	insights Insights
}

// NewRouter builds the HTTP router for the insights API.
func NewRouter(ins Insights) *mux.Router {
	h := &Handler{insights: ins}

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/insights/snapshot", h.snapshotHandler).Methods("GET")
	r.HandleFunc("/api/v1/insights/updates", h.updatesHandler).Methods("GET")
	r.HandleFunc("/api/v1/insights/reset", h.resetHandler).Methods("POST")
	r.HandleFunc("/healthz", h.healthHandler).Methods("GET")
	return r
}

// snapshotHandler returns the latest published snapshot.
func (h *Handler) snapshotHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.insights.CurrentSnapshot())
}

// updatesHandler long-polls the change signal: it responds with the new
// snapshot as soon as one is published, or with 204 when the timeout expires
// first. The timeout can be shortened with a "timeout" query parameter, e.g.
// ?timeout=5s.
func (h *Handler) updatesHandler(w http.ResponseWriter, r *http.Request) {
	timeout := defaultUpdateTimeout
	if raw := r.URL.Query().Get("timeout"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			http.Error(w, fmt.Sprintf("invalid timeout %q", raw), http.StatusBadRequest)
			return
		}
		if d < timeout {
			timeout = d
		}
	}

	subID, signals := h.insights.Subscribe()
	defer h.insights.Unsubscribe(subID)

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-signals:
		writeJSON(w, h.insights.CurrentSnapshot())
	case <-timer.C:
		w.WriteHeader(http.StatusNoContent)
	case <-r.Context().Done():
		// Client went away; nothing to write.
	}
}

// resetHandler clears all accumulated statistics.
func (h *Handler) resetHandler(w http.ResponseWriter, r *http.Request) {
	h.insights.Reset()
	log.Println("Insights statistics reset via API.")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to marshal response: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(jsonBytes)
}
