package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shalinibhavi525-sudo/border-incident-reporter/internal/domain"
	"github.com/shalinibhavi525-sudo/border-incident-reporter/internal/storage/photostore"
	"github.com/shalinibhavi525-sudo/border-incident-reporter/pkg/e"
	"github.com/shalinibhavi525-sudo/border-incident-reporter/pkg/validator"
)

type ReportIntake struct {
	repo   IncidentRepository
	photos PhotoStore
	stats  StatsCache
	logger *slog.Logger
}

func NewReportIntake(
	repo IncidentRepository,
	photos PhotoStore,
	stats StatsCache,
	logger *slog.Logger,
) *ReportIntake {
	return &ReportIntake{
		repo:   repo,
		photos: photos,
		stats:  stats,
		logger: logger,
	}
}

// SubmitReport validates a submission and persists it. The photo, when
// accepted, is committed to storage before the record is inserted; a failed
// insert removes the file again so no orphan survives this path.
func (s *ReportIntake) SubmitReport(ctx context.Context, req domain.SubmitReportRequest, photo *domain.PhotoUpload) (int64, error) {
	const op = "service.ReportIntake.SubmitReport"

	if strings.TrimSpace(req.Type) == "" {
		return 0, fmt.Errorf("%s: type is required: %w", op, e.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Severity) == "" {
		return 0, fmt.Errorf("%s: severity is required: %w", op, e.ErrInvalidInput)
	}
	if strings.TrimSpace(req.Description) == "" {
		return 0, fmt.Errorf("%s: description is required: %w", op, e.ErrInvalidInput)
	}

	lat, err := parseCoord(req.Latitude)
	if err != nil {
		return 0, fmt.Errorf("%s: latitude: %w", op, e.ErrInvalidInput)
	}
	lng, err := parseCoord(req.Longitude)
	if err != nil {
		return 0, fmt.Errorf("%s: longitude: %w", op, e.ErrInvalidInput)
	}
	if err := validator.ValidateStruct(domain.Coordinates{Latitude: lat, Longitude: lng}); err != nil {
		return 0, fmt.Errorf("%s: coordinates out of range: %w", op, e.ErrInvalidInput)
	}

	var accuracy *float64
	if strings.TrimSpace(req.Accuracy) != "" {
		a, err := parseCoord(req.Accuracy)
		if err != nil {
			return 0, fmt.Errorf("%s: accuracy: %w", op, e.ErrInvalidInput)
		}
		accuracy = &a
	}

	reporterName := req.ReporterName
	if reporterName == "" {
		reporterName = "Anonymous"
	}

	now := time.Now().UTC()

	var photoName *string
	if photo != nil && photo.Filename != "" &&
		s.photos.Allowed(photo.Filename) && photostore.Sanitize(photo.Filename) != "" {
		name := photostore.FinalName(now, photo.Filename)
		if err := s.photos.Save(photo.File, name); err != nil {
			s.logger.Error("photo save failed", slog.String("op", op), slog.Any("error", err))
			return 0, fmt.Errorf("%s: photo: %v: %w", op, err, e.ErrUnavailable)
		}
		photoName = &name
	}

	incident := &domain.Incident{
		Type:             req.Type,
		Severity:         req.Severity,
		Description:      req.Description,
		Latitude:         lat,
		Longitude:        lng,
		LocationAccuracy: accuracy,
		PhotoFilename:    photoName,
		ReporterName:     reporterName,
		ReporterUnit:     req.ReporterUnit,
		ReporterContact:  req.ReporterContact,
		ReportedAt:       now,
		Status:           domain.StatusOpen,
	}

	if err := s.repo.Create(ctx, incident); err != nil {
		if photoName != nil {
			s.photos.Remove(*photoName)
		}
		return 0, err
	}

	if err := s.stats.Invalidate(ctx); err != nil {
		s.logger.Warn("stats cache invalidate failed", slog.Any("error", err))
	}

	s.logger.Info("incident reported",
		slog.Int64("id", incident.ID),
		slog.String("type", incident.Type),
		slog.String("severity", incident.Severity),
	)

	return incident.ID, nil
}

func parseCoord(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
