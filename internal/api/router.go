package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/shalinibhavi525-sudo/border-incident-reporter/internal/api/handlers/http/dashboard"
	"github.com/shalinibhavi525-sudo/border-incident-reporter/internal/api/handlers/http/public"
	"github.com/shalinibhavi525-sudo/border-incident-reporter/internal/api/handlers/http/system"
	"github.com/shalinibhavi525-sudo/border-incident-reporter/internal/config"
	"github.com/shalinibhavi525-sudo/border-incident-reporter/internal/middleware"
	"github.com/shalinibhavi525-sudo/border-incident-reporter/internal/service"
)

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

func NewServer(cfg *config.Config, logger *slog.Logger, svc *service.Service) *Server {
	publicHandler := public.NewHandler(logger, svc.ReportIntakeService, cfg.Upload.MaxBytes)
	dashboardHandler := dashboard.NewHandler(logger, svc.IncidentQueryService, svc.StatsService)
	systemHandler := system.NewHandler(logger)

	r := InitRouter(cfg, publicHandler, dashboardHandler, systemHandler, logger)

	return &Server{
		logger: logger,
		router: r,
		cfg:    *cfg,
	}
}

func InitRouter(
	cfg *config.Config,
	publicHandler *public.Handler,
	dashboardHandler *dashboard.Handler,
	systemHandler *system.Handler,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)

	r.Route("/api", func(api chi.Router) {
		// generous limit, submissions only: repeated form posts from one
		// field device should never starve the dashboard reads
		api.With(middleware.Limit(5, 10, 10*time.Minute, logger)).
			Post("/report", publicHandler.ReportSubmit)

		api.Get("/incidents", dashboardHandler.IncidentList)

		api.Route("/incident/{id}", func(ir chi.Router) {
			ir.Get("/", dashboardHandler.IncidentGet)
			ir.Put("/status", dashboardHandler.IncidentStatusUpdate)
		})

		api.Get("/stats", dashboardHandler.IncidentStats)

		api.Get("/health", systemHandler.SystemHealth)
	})

	// stored photos for dashboard detail views
	uploads := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Upload.Dir)))
	r.Get("/uploads/*", uploads.ServeHTTP)

	return r
}

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Http.ReadTimeout,
		WriteTimeout: s.cfg.Http.WriteTimeout,
		IdleTimeout:  30 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
			slog.Duration("write_timeout", s.cfg.Http.WriteTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
