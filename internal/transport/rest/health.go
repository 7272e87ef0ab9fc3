package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/frahmantamala/interview-dashboard/internal/transport"
	"github.com/jmoiron/sqlx"
)

type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthUnhealthy HealthStatus = "unhealthy"
)

type HealthResponse struct {
	Status     HealthStatus          `json:"status"`
	CheckedAt  time.Time             `json:"checked_at"`
	Components map[string]CheckEntry `json:"components"`
}

type CheckEntry struct {
	Status     HealthStatus   `json:"status"`
	Message    string         `json:"message,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	CheckedAt  time.Time      `json:"checked_at"`
	DurationMs int64          `json:"duration_ms"`
}

// HealthHandler reports on the session storage backend. A nil db means the
// process keeps sessions in memory, which is always ready.
type HealthHandler struct {
	*transport.BaseHandler
	db *sqlx.DB
}

func NewHealthHandler(base *transport.BaseHandler, db *sqlx.DB) *HealthHandler {
	return &HealthHandler{BaseHandler: base, db: db}
}

func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	name, entry := h.checkStorage(r.Context())

	resp := HealthResponse{
		Status:     entry.Status,
		CheckedAt:  time.Now(),
		Components: map[string]CheckEntry{name: entry},
	}

	status := http.StatusOK
	if entry.Status == HealthUnhealthy {
		h.Logger.Warn("Health: storage unreachable", "component", name, "error", entry.Message)
		status = http.StatusServiceUnavailable
	}
	h.WriteJSON(w, status, resp)
}

func (h *HealthHandler) checkStorage(ctx context.Context) (string, CheckEntry) {
	start := time.Now()
	if h.db == nil {
		return "memory", CheckEntry{Status: HealthHealthy, CheckedAt: start}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	entry := CheckEntry{Status: HealthHealthy}
	var entries int64
	if err := h.db.GetContext(ctx, &entries, "SELECT COUNT(*) FROM storage_entries"); err != nil {
		entry.Status = HealthUnhealthy
		entry.Message = err.Error()
	} else {
		stats := h.db.Stats()
		entry.Details = map[string]any{
			"entries":          entries,
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
		}
	}
	entry.CheckedAt = time.Now()
	entry.DurationMs = time.Since(start).Milliseconds()

	return h.db.DriverName(), entry
}
