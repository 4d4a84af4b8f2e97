package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shalinibhavi525-sudo/border-incident-reporter/internal/domain"
	"github.com/shalinibhavi525-sudo/border-incident-reporter/pkg/e"
)

type IncidentQuery struct {
	repo   IncidentRepository
	stats  StatsCache
	logger *slog.Logger
}

func NewIncidentQuery(repo IncidentRepository, stats StatsCache, logger *slog.Logger) *IncidentQuery {
	return &IncidentQuery{
		repo:   repo,
		stats:  stats,
		logger: logger,
	}
}

func (s *IncidentQuery) List(ctx context.Context, filter domain.IncidentFilter) ([]*domain.Incident, error) {
	return s.repo.List(ctx, filter)
}

func (s *IncidentQuery) Get(ctx context.Context, id int64) (*domain.Incident, error) {
	return s.repo.Get(ctx, id)
}

// UpdateStatus rejects anything outside Open/Investigating/Resolved before
// touching the store, so an invalid value never mutates the record.
func (s *IncidentQuery) UpdateStatus(ctx context.Context, id int64, status domain.IncidentStatus) error {
	const op = "service.IncidentQuery.UpdateStatus"

	if !status.Valid() {
		return fmt.Errorf("%s: status %q: %w", op, status, e.ErrInvalidInput)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	if err := s.stats.Invalidate(ctx); err != nil {
		s.logger.Warn("stats cache invalidate failed", slog.Any("error", err))
	}

	s.logger.Info("incident status updated",
		slog.Int64("id", id),
		slog.String("status", string(status)),
	)

	return nil
}
