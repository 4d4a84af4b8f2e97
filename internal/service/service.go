package service

import (
	"context"
	"io"

	"github.com/shalinibhavi525-sudo/border-incident-reporter/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

// ReportIntakeService is the validate-and-persist submission path.
type ReportIntakeService interface {
	SubmitReport(ctx context.Context, req domain.SubmitReportRequest, photo *domain.PhotoUpload) (int64, error)
}

// IncidentQueryService is the read side plus the single allowed mutation.
type IncidentQueryService interface {
	List(ctx context.Context, filter domain.IncidentFilter) ([]*domain.Incident, error)
	Get(ctx context.Context, id int64) (*domain.Incident, error)
	UpdateStatus(ctx context.Context, id int64, status domain.IncidentStatus) error
}

type StatsService interface {
	GetStats(ctx context.Context) (*domain.IncidentStats, error)
}

type IncidentRepository interface {
	Create(ctx context.Context, incident *domain.Incident) error
	Get(ctx context.Context, id int64) (*domain.Incident, error)
	List(ctx context.Context, filter domain.IncidentFilter) ([]*domain.Incident, error)
	UpdateStatus(ctx context.Context, id int64, status domain.IncidentStatus) error
	Count(ctx context.Context, filter domain.IncidentFilter) (int64, error)
}

type PhotoStore interface {
	Allowed(filename string) bool
	Save(src io.Reader, finalName string) error
	Remove(name string)
}

type StatsCache interface {
	Get(ctx context.Context) (*domain.IncidentStats, error)
	Set(ctx context.Context, stats *domain.IncidentStats) error
	Invalidate(ctx context.Context) error
}

type Service struct {
	ReportIntakeService  ReportIntakeService
	IncidentQueryService IncidentQueryService
	StatsService         StatsService
}

func NewService(
	reportIntake ReportIntakeService,
	incidentQuery IncidentQueryService,
	stats StatsService,
) *Service {
	return &Service{
		ReportIntakeService:  reportIntake,
		IncidentQueryService: incidentQuery,
		StatsService:         stats,
	}
}
