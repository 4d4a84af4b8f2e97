package dashboard

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/shalinibhavi525-sudo/border-incident-reporter/internal/domain"
	"github.com/shalinibhavi525-sudo/border-incident-reporter/pkg/e"
)

const reportedAtLayout = "2006-01-02 15:04:05"

// incidentResponse is the wire form of an incident. location_accuracy and
// reporter_contact are stored but deliberately not exposed here.
type incidentResponse struct {
	ID           int64   `json:"id"`
	Type         string  `json:"type"`
	Severity     string  `json:"severity"`
	Description  string  `json:"description"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Photo        *string `json:"photo"`
	ReporterName string  `json:"reporter_name"`
	ReporterUnit string  `json:"reporter_unit"`
	ReportedAt   string  `json:"reported_at"`
	Status       string  `json:"status"`
}

type listResponse struct {
	Success   bool               `json:"success"`
	Incidents []incidentResponse `json:"incidents"`
}

type getResponse struct {
	Success  bool             `json:"success"`
	Incident incidentResponse `json:"incident"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type statsResponse struct {
	Success bool                  `json:"success"`
	Stats   *domain.IncidentStats `json:"stats"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func toIncidentResponse(inc *domain.Incident) incidentResponse {
	return incidentResponse{
		ID:           inc.ID,
		Type:         inc.Type,
		Severity:     inc.Severity,
		Description:  inc.Description,
		Latitude:     inc.Latitude,
		Longitude:    inc.Longitude,
		Photo:        inc.PhotoFilename,
		ReporterName: inc.ReporterName,
		ReporterUnit: inc.ReporterUnit,
		ReportedAt:   inc.ReportedAt.UTC().Format(reportedAtLayout),
		Status:       string(inc.Status),
	}
}

func toIncidentResponses(src []*domain.Incident) []incidentResponse {
	out := make([]incidentResponse, 0, len(src))
	for _, inc := range src {
		out = append(out, toIncidentResponse(inc))
	}
	return out
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	l := h.log(r)

	var status int
	switch {
	case errors.Is(err, e.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, e.ErrInvalidInput):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}

	l.Warn("request failed", slog.Int("status", status), slog.String("error", err.Error()))
	h.writeError(w, status, err.Error())
}

func (h *Handler) writeError(w http.ResponseWriter, code int, message string) {
	h.writeJSON(w, code, errorResponse{Success: false, Message: message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("json encode failed", slog.Any("error", err))
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}
