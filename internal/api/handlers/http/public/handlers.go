package public

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shalinibhavi525-sudo/border-incident-reporter/internal/domain"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type ReportSubmitter interface {
	SubmitReport(ctx context.Context, req domain.SubmitReportRequest, photo *domain.PhotoUpload) (int64, error)
}

type Handler struct {
	logger         *slog.Logger
	Intake         ReportSubmitter
	maxUploadBytes int64
}

func NewHandler(logger *slog.Logger, intake ReportSubmitter, maxUploadBytes int64) *Handler {
	return &Handler{
		logger:         logger,
		Intake:         intake,
		maxUploadBytes: maxUploadBytes,
	}
}

// ReportSubmit handles POST /api/report. The body is a multipart form with
// an optional "photo" part; the size cap is enforced here, before any
// intake logic runs.
func (h *Handler) ReportSubmit(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	if err := h.parseMultipartLimited(w, r); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			l.Warn("upload too large", slog.Int64("limit", maxErr.Limit))
			h.writeError(w, http.StatusRequestEntityTooLarge, "uploaded file is too large")
			return
		}
		l.Warn("invalid form", slog.String("error", err.Error()))
		h.writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	req := domain.SubmitReportRequest{
		Type:            r.FormValue("type"),
		Severity:        r.FormValue("severity"),
		Description:     r.FormValue("description"),
		Latitude:        r.FormValue("latitude"),
		Longitude:       r.FormValue("longitude"),
		Accuracy:        r.FormValue("accuracy"),
		ReporterName:    r.FormValue("reporter_name"),
		ReporterUnit:    r.FormValue("reporter_unit"),
		ReporterContact: r.FormValue("reporter_contact"),
	}

	var photo *domain.PhotoUpload
	if file, header, err := r.FormFile("photo"); err == nil {
		defer file.Close()
		photo = &domain.PhotoUpload{
			Filename: header.Filename,
			File:     file,
		}
	}

	id, err := h.Intake.SubmitReport(r.Context(), req, photo)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("report accepted", slog.Int64("incident_id", id))
	h.writeJSON(w, http.StatusCreated, submitResponse{
		Success:    true,
		Message:    "Incident reported successfully",
		IncidentID: id,
	})
}
