package handlers

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/MatthewCK/CALBOT/internal/domain"
	"github.com/MatthewCK/CALBOT/internal/metrics"
	"github.com/MatthewCK/CALBOT/internal/notify"
	"github.com/MatthewCK/CALBOT/internal/providers"
	"github.com/MatthewCK/CALBOT/internal/scheduler"
	"github.com/MatthewCK/CALBOT/internal/tracker"
)

type nowFunc func() time.Time

// Engine is the slice of the scheduler the HTTP surface reads from.
type Engine interface {
	Status() scheduler.Status
	IsReady() bool
}

// Deps are the collaborators the HTTP surface exposes.
type Deps struct {
	Engine   Engine
	Tracker  *tracker.Tracker
	Notifier notify.Notifier
	Metrics  *metrics.Recorder
	Provider providers.DataProvider
	PlayerID int64
	Season   int
	Service  string
	Logger   *slog.Logger
}

// Handler wires HTTP routes to the polling engine.
type Handler struct {
	deps Deps
	now  nowFunc
}

// NewHandler constructs a Handler with defaults.
func NewHandler(deps Deps) *Handler {
	if deps.Notifier == nil {
		deps.Notifier = notify.Nop{}
	}
	return &Handler{deps: deps, now: time.Now}
}

type rootResponse struct {
	OK        bool       `json:"ok"`
	Service   string     `json:"service"`
	Tracking  *int64     `json:"tracking_game,omitempty"`
	Phase     string     `json:"phase"`
	Engaged   bool       `json:"engaged"`
	LastCycle *time.Time `json:"last_cycle,omitempty"`
	NextWake  *time.Time `json:"next_wake,omitempty"`
	Timestamp string     `json:"timestamp"`
}

// Root reports a compact liveness summary, mirroring what the bot would
// answer if asked "are you up and what are you watching".
func (h *Handler) Root(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.URL.Path != "/" {
		writeError(w, r, nethttp.StatusNotFound, "not found", h.deps.Logger)
		return
	}
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.deps.Logger)
		return
	}
	status := h.deps.Engine.Status()
	resp := rootResponse{
		OK:        true,
		Service:   h.deps.Service,
		Tracking:  status.GamePk,
		Phase:     string(status.Phase),
		Engaged:   status.Engaged,
		Timestamp: h.now().UTC().Format(time.RFC3339),
	}
	if !status.LastCycle.IsZero() {
		resp.LastCycle = &status.LastCycle
	}
	if !status.NextWake.IsZero() {
		resp.NextWake = &status.NextWake
	}
	writeJSON(w, nethttp.StatusOK, resp, h.deps.Logger)
}

func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.deps.Logger)
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.deps.Logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.deps.Logger)
}

// Ready reports readiness for traffic. The loop must be armed and not in a
// persistent failure streak.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.deps.Logger)
		return
	}
	if h.deps.Engine.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.deps.Logger)
		return
	}
	msg := h.deps.Engine.Status().LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.deps.Logger)
}

type statsResponse struct {
	Scheduler scheduler.Status    `json:"scheduler"`
	AtBat     *tracker.Snapshot   `json:"at_bat,omitempty"`
	Season    *domain.SeasonStats `json:"season,omitempty"`
	Upstream  *upstreamStats      `json:"upstream,omitempty"`
}

type upstreamStats struct {
	Calls         int   `json:"calls"`
	Errors        int   `json:"errors"`
	LastLatencyMS int64 `json:"last_latency_ms"`
}

const statsTimeout = 10 * time.Second

// Stats exposes the loop state, the subject's season line, and upstream call
// counters. The season fetch is best effort; the rest of the payload is
// served even when the upstream is down.
func (h *Handler) Stats(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodGet {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.deps.Logger)
		return
	}
	resp := statsResponse{Scheduler: h.deps.Engine.Status()}
	if h.deps.Tracker != nil {
		snap := h.deps.Tracker.Snapshot()
		resp.AtBat = &snap
	}
	if h.deps.Provider != nil {
		ctx, cancel := context.WithTimeout(r.Context(), statsTimeout)
		defer cancel()
		if season, err := h.deps.Provider.FetchSeasonStats(ctx, h.deps.PlayerID, h.deps.Season); err == nil {
			resp.Season = &season
		} else if logger := loggerFromContext(r, h.deps.Logger); logger != nil {
			logger.Warn("season stats unavailable", "err", err)
		}
	}
	if h.deps.Metrics != nil {
		snap := h.deps.Metrics.Snapshot("statsapi")
		resp.Upstream = &upstreamStats{
			Calls:         snap.Calls,
			Errors:        snap.Errors,
			LastLatencyMS: snap.LastCallLatency.Milliseconds(),
		}
	}
	writeJSON(w, nethttp.StatusOK, resp, h.deps.Logger)
}

const testNotifyTimeout = 10 * time.Second

// TestNotify sends a throwaway message through the configured channel so an
// operator can verify delivery end to end.
func (h *Handler) TestNotify(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodPost {
		writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.deps.Logger)
		return
	}
	logger := loggerFromContext(r, h.deps.Logger)

	ctx, cancel := context.WithTimeout(r.Context(), testNotifyTimeout)
	defer cancel()

	text := "🧪 Test notification from " + h.deps.Service + " at " + h.now().UTC().Format(time.RFC3339)
	if err := h.deps.Notifier.Send(ctx, text); err != nil {
		if logger != nil {
			logger.Error("test notification failed", "err", err)
		}
		writeError(w, r, nethttp.StatusBadGateway, "notification failed", h.deps.Logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "sent"}, h.deps.Logger)
}
