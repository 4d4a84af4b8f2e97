package dashboard

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shalinibhavi525-sudo/border-incident-reporter/internal/domain"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type IncidentQuerier interface {
	List(ctx context.Context, filter domain.IncidentFilter) ([]*domain.Incident, error)
	Get(ctx context.Context, id int64) (*domain.Incident, error)
	UpdateStatus(ctx context.Context, id int64, status domain.IncidentStatus) error
}

type StatsGetter interface {
	GetStats(ctx context.Context) (*domain.IncidentStats, error)
}

type Handler struct {
	logger    *slog.Logger
	Incidents IncidentQuerier
	Stats     StatsGetter
}

func NewHandler(logger *slog.Logger, incidents IncidentQuerier, stats StatsGetter) *Handler {
	return &Handler{
		logger:    logger,
		Incidents: incidents,
		Stats:     stats,
	}
}

// IncidentList handles GET /api/incidents with optional severity/type/status
// query filters.
func (h *Handler) IncidentList(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	filter := domain.IncidentFilter{
		Severity: r.URL.Query().Get("severity"),
		Type:     r.URL.Query().Get("type"),
		Status:   r.URL.Query().Get("status"),
	}

	incidents, err := h.Incidents.List(r.Context(), filter)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Debug("incidents listed", slog.Int("count", len(incidents)))
	h.writeJSON(w, http.StatusOK, listResponse{
		Success:   true,
		Incidents: toIncidentResponses(incidents),
	})
}

func (h *Handler) IncidentGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.incidentID(w, r)
	if !ok {
		return
	}

	incident, err := h.Incidents.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, getResponse{
		Success:  true,
		Incident: toIncidentResponse(incident),
	})
}

// IncidentStatusUpdate handles PUT /api/incident/{id}/status with a JSON
// body {"status": "..."}.
func (h *Handler) IncidentStatusUpdate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	id, ok := h.incidentID(w, r)
	if !ok {
		return
	}

	var req domain.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := h.Incidents.UpdateStatus(r.Context(), id, req.Status); err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, messageResponse{
		Success: true,
		Message: "Status updated successfully",
	})
}

func (h *Handler) IncidentStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Stats.GetStats(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, statsResponse{
		Success: true,
		Stats:   stats,
	})
}

// incidentID parses the {id} route parameter. A non-numeric id gets the
// same 404 envelope as a missing record.
func (h *Handler) incidentID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		h.log(r).Warn("invalid incident id", slog.String("id", idStr))
		h.writeError(w, http.StatusNotFound, "incident not found")
		return 0, false
	}
	return id, true
}
