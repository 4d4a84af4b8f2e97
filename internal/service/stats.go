package service

import (
	"context"
	"log/slog"

	"github.com/shalinibhavi525-sudo/border-incident-reporter/internal/domain"
)

type Stats struct {
	repo   IncidentRepository
	cache  StatsCache
	logger *slog.Logger
}

func NewStats(repo IncidentRepository, cache StatsCache, logger *slog.Logger) *Stats {
	return &Stats{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// GetStats returns the dashboard snapshot. The four counts run as separate
// queries and may observe different instants; they are not required to be
// mutually atomic. Cache trouble degrades to a live recount.
func (s *Stats) GetStats(ctx context.Context) (*domain.IncidentStats, error) {
	if snap, err := s.cache.Get(ctx); err != nil {
		s.logger.Warn("stats cache read failed", slog.Any("error", err))
	} else if snap != nil {
		return snap, nil
	}

	total, err := s.repo.Count(ctx, domain.IncidentFilter{})
	if err != nil {
		return nil, err
	}
	critical, err := s.repo.Count(ctx, domain.IncidentFilter{Severity: domain.SeverityCritical})
	if err != nil {
		return nil, err
	}
	high, err := s.repo.Count(ctx, domain.IncidentFilter{Severity: domain.SeverityHigh})
	if err != nil {
		return nil, err
	}
	open, err := s.repo.Count(ctx, domain.IncidentFilter{Status: string(domain.StatusOpen)})
	if err != nil {
		return nil, err
	}

	stats := &domain.IncidentStats{
		Total:    total,
		Critical: critical,
		High:     high,
		Open:     open,
	}

	if err := s.cache.Set(ctx, stats); err != nil {
		s.logger.Warn("stats cache write failed", slog.Any("error", err))
	}

	return stats, nil
}
