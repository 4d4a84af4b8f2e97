package postgres

import (
	"context"

	"github.com/shalinibhavi525-sudo/border-incident-reporter/internal/domain"
)

type IncidentRepository interface {
	Create(ctx context.Context, incident *domain.Incident) error
	Get(ctx context.Context, id int64) (*domain.Incident, error)
	List(ctx context.Context, filter domain.IncidentFilter) ([]*domain.Incident, error)
	UpdateStatus(ctx context.Context, id int64, status domain.IncidentStatus) error
	Count(ctx context.Context, filter domain.IncidentFilter) (int64, error)
}
