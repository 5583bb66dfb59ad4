package rest

import (
	"context"
	"net/http"
	"time"
)

const probeTimeout = 3 * time.Second

type dbPinger interface {
	Ping(ctx context.Context) error
}

// sweepStatus reports the outcome of the most recent scheduled fine sweep.
type sweepStatus interface {
	LastRun() (time.Time, error)
}

// HealthHandler serves the liveness, readiness and health probes.
type HealthHandler struct {
	db      dbPinger
	sweeper sweepStatus
	clock   timeSource
	version string
}

// NewHealthHandler creates a HealthHandler that reports only the database.
func NewHealthHandler(db dbPinger, clock timeSource, version string) *HealthHandler {
	return &HealthHandler{db: db, clock: clock, version: version}
}

// WithSweeper adds the background fine sweep to the health report.
func (h *HealthHandler) WithSweeper(s sweepStatus) *HealthHandler {
	h.sweeper = s
	return h
}

// HealthResponse is the body of every probe.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of one dependency.
type CompStatus struct {
	Status  string     `json:"status"`
	Latency string     `json:"latency,omitempty"`
	LastRun *time.Time `json:"lastRun,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// Live always answers 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: h.clock.Now()})
}

// Ready answers 503 while the database is unreachable.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "down", Timestamp: h.clock.Now()})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: h.clock.Now()})
}

// Health reports every component. A failing sweep degrades the service but
// keeps it serving; an unreachable database takes it down.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	components := make(map[string]CompStatus, 2)
	overall := "ok"

	start := time.Now()
	err := h.db.Ping(ctx)
	latency := time.Since(start)
	if err != nil {
		components["database"] = CompStatus{Status: "down"}
		overall = "down"
	} else {
		components["database"] = CompStatus{Status: "ok", Latency: latency.String()}
	}

	if h.sweeper != nil {
		comp := sweeperComponent(h.sweeper)
		components["fine_sweeper"] = comp
		if comp.Status == "failing" && overall == "ok" {
			overall = "degraded"
		}
	}

	status := http.StatusOK
	if overall == "down" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: components,
		Timestamp:  h.clock.Now(),
	})
}

func sweeperComponent(s sweepStatus) CompStatus {
	at, err := s.LastRun()
	if at.IsZero() {
		return CompStatus{Status: "pending"}
	}
	comp := CompStatus{Status: "ok", LastRun: &at}
	if err != nil {
		comp.Status = "failing"
		comp.Error = err.Error()
	}
	return comp
}
