package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shalinibhavi525-sudo/border-incident-reporter/internal/config"
	"github.com/shalinibhavi525-sudo/border-incident-reporter/pkg/e"
)

type Postgres struct {
	Pool     *pgxpool.Pool
	Incident IncidentRepository
}

func NewPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Postgres, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Database,
		cfg.Postgres.SSLMode,
	)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("failed to parse pgx config", slog.String("error", err.Error()))
		return nil, e.Wrap("storage.pg.NewPostgres.ParseConfig", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		logger.Error("failed to create pgx pool", slog.String("error", err.Error()))
		return nil, e.Wrap("storage.pg.NewPostgres.NewWithConfig", err)
	}

	if err := pool.Ping(ctx); err != nil {
		logger.Error("failed to ping postgres", slog.String("error", err.Error()))
		pool.Close()
		return nil, e.Wrap("storage.pg.NewPostgres.Ping", err)
	}

	if err := ensureSchema(ctx, pool); err != nil {
		logger.Error("failed to bootstrap schema", slog.String("error", err.Error()))
		pool.Close()
		return nil, e.Wrap("storage.pg.NewPostgres.ensureSchema", err)
	}
	logger.Info("connected to postgres, schema ready")

	return &Postgres{
		Pool:     pool,
		Incident: NewIncidentRepo(pool, logger),
	}, nil
}

// ensureSchema creates the incidents table on boot. There are no
// versioned migrations, the schema is a single table.
func ensureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS incidents (
			id                BIGSERIAL PRIMARY KEY,
			incident_type     TEXT NOT NULL,
			severity          TEXT NOT NULL,
			description       TEXT NOT NULL,
			latitude          DOUBLE PRECISION NOT NULL,
			longitude         DOUBLE PRECISION NOT NULL,
			location_accuracy DOUBLE PRECISION,
			photo_filename    TEXT,
			reporter_name     TEXT NOT NULL DEFAULT 'Anonymous',
			reporter_unit     TEXT NOT NULL DEFAULT '',
			reporter_contact  TEXT NOT NULL DEFAULT '',
			reported_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
			status            TEXT NOT NULL DEFAULT 'Open'
		);

		CREATE INDEX IF NOT EXISTS idx_incidents_reported_at
			ON incidents (reported_at DESC);
	`)
	return err
}

func (p *Postgres) Close() {
	p.Pool.Close()
}

func (p *Postgres) Incidents() IncidentRepository { return p.Incident }
