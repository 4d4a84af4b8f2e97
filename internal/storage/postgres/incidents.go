package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shalinibhavi525-sudo/border-incident-reporter/internal/domain"
	"github.com/shalinibhavi525-sudo/border-incident-reporter/pkg/e"
)

type IncidentRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewIncidentRepo(pool *pgxpool.Pool, logger *slog.Logger) *IncidentRepo {
	return &IncidentRepo{pool: pool, logger: logger}
}

const incidentColumns = `
	id, incident_type, severity, description,
	latitude, longitude, location_accuracy, photo_filename,
	reporter_name, reporter_unit, reporter_contact,
	reported_at, status
`

func (p *IncidentRepo) Create(ctx context.Context, incident *domain.Incident) error {
	const op = "postgres.Incident.Create"

	if incident.ReportedAt.IsZero() {
		incident.ReportedAt = time.Now().UTC()
	}
	if incident.Status == "" {
		incident.Status = domain.StatusOpen
	}

	const query = `
		INSERT INTO incidents (
			incident_type, severity, description,
			latitude, longitude, location_accuracy, photo_filename,
			reporter_name, reporter_unit, reporter_contact,
			reported_at, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	err := p.pool.QueryRow(ctx, query,
		incident.Type,
		incident.Severity,
		incident.Description,
		incident.Latitude,
		incident.Longitude,
		incident.LocationAccuracy,
		incident.PhotoFilename,
		incident.ReporterName,
		incident.ReporterUnit,
		incident.ReporterContact,
		incident.ReportedAt,
		incident.Status,
	).Scan(&incident.ID)
	if err != nil {
		p.logger.Error("db insert failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}

	return nil
}

func (p *IncidentRepo) Get(ctx context.Context, id int64) (*domain.Incident, error) {
	const op = "postgres.Incident.Get"

	query := fmt.Sprintf(`SELECT %s FROM incidents WHERE id = $1`, incidentColumns)

	row := p.pool.QueryRow(ctx, query, id)
	incident, err := scanIncident(row)
	if err != nil {
		if err != pgx.ErrNoRows {
			p.logger.Error("db queryrow failed", slog.String("op", op), slog.Any("error", err))
		}
		return nil, e.WrapError(ctx, op, err)
	}

	return incident, nil
}

func (p *IncidentRepo) List(ctx context.Context, filter domain.IncidentFilter) ([]*domain.Incident, error) {
	const op = "postgres.Incident.List"

	where, args := buildFilter(filter)
	query := fmt.Sprintf(
		`SELECT %s FROM incidents %s ORDER BY reported_at DESC, id DESC`,
		incidentColumns, where,
	)

	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	incidents := make([]*domain.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			p.logger.Error("db scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	return incidents, nil
}

func (p *IncidentRepo) UpdateStatus(ctx context.Context, id int64, status domain.IncidentStatus) error {
	const op = "postgres.Incident.UpdateStatus"

	const query = `UPDATE incidents SET status = $1 WHERE id = $2`

	tag, err := p.pool.Exec(ctx, query, status, id)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: id %d: %w", op, id, e.ErrNotFound)
	}

	return nil
}

func (p *IncidentRepo) Count(ctx context.Context, filter domain.IncidentFilter) (int64, error) {
	const op = "postgres.Incident.Count"

	where, args := buildFilter(filter)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM incidents %s`, where)

	var cnt int64
	if err := p.pool.QueryRow(ctx, query, args...).Scan(&cnt); err != nil {
		p.logger.Error("db count failed", slog.String("op", op), slog.Any("error", err))
		return 0, e.WrapError(ctx, op, err)
	}

	return cnt, nil
}

// buildFilter renders the exact-match AND conditions for list/count. Empty
// filter fields add no condition.
func buildFilter(filter domain.IncidentFilter) (string, []any) {
	conds := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if filter.Severity != "" {
		args = append(args, filter.Severity)
		conds = append(conds, fmt.Sprintf("severity = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conds = append(conds, fmt.Sprintf("incident_type = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

func scanIncident(row pgx.Row) (*domain.Incident, error) {
	var inc domain.Incident
	err := row.Scan(
		&inc.ID,
		&inc.Type,
		&inc.Severity,
		&inc.Description,
		&inc.Latitude,
		&inc.Longitude,
		&inc.LocationAccuracy,
		&inc.PhotoFilename,
		&inc.ReporterName,
		&inc.ReporterUnit,
		&inc.ReporterContact,
		&inc.ReportedAt,
		&inc.Status,
	)
	if err != nil {
		return nil, err
	}
	return &inc, nil
}
