package public

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/shalinibhavi525-sudo/border-incident-reporter/pkg/e"
)

type submitResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	IncidentID int64  `json:"incident_id"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// parseMultipartLimited caps the request body before the multipart parser
// touches it. 32 KiB of form values stay in memory; file parts spill to
// temp files.
func (h *Handler) parseMultipartLimited(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	return r.ParseMultipartForm(32 << 10)
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	l := h.log(r)

	var status int
	switch {
	case errors.Is(err, e.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, e.ErrNotFound):
		status = http.StatusNotFound
	default:
		status = http.StatusInternalServerError
	}

	l.Warn("report rejected", slog.Int("status", status), slog.String("error", err.Error()))
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
