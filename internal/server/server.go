// Package server defines the Server container that composes the app's
// shared dependencies and owns their lifecycle:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - database pool (pgx or database/sql)
//   - optional redis client and the flash store built on it
//   - optional background job service (asynq)
//   - Prometheus metrics
//   - http.Server
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/zombies/internal/config"
	"github.com/deppfellow/zombies/internal/database"
	"github.com/deppfellow/zombies/internal/flash"
	"github.com/deppfellow/zombies/internal/lib/job"
	"github.com/deppfellow/zombies/internal/metrics"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/deppfellow/zombies/internal/logger"
)

// Server is the application container. It is not the HTTP server itself.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService

	DB *database.Database

	// Redis is nil when no address is configured.
	Redis *redis.Client

	// Flash keeps one-redirect messages: Redis when available, memory
	// otherwise.
	Flash flash.Store

	Metrics *metrics.Metrics

	// Job is nil unless obituaries are enabled.
	Job *job.JobService

	httpServer *http.Server
}

// New opens the database and the optional Redis client and starts the
// job worker.
//
// A Redis ping failure does not block startup: flashes fall back to
// memory. A job service start failure does.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
		Flash:         flash.NewMemoryStore(cfg.Session.TTL),
		Metrics:       metrics.New(),
	}

	if cfg.Redis.Address != "" {
		server.Redis = newRedis(cfg, logger, loggerService)
		if server.Redis != nil {
			server.Flash = flash.NewRedisStore(server.Redis, cfg.Session.TTL)
		}
	}

	if cfg.ObituariesEnabled() {
		jobService := job.NewJobService(logger, cfg)
		jobService.InitHandlers(cfg, logger)

		if err := jobService.Start(); err != nil {
			return nil, fmt.Errorf("failed to start job service: %w", err)
		}
		server.Job = jobService
	}

	return server, nil
}

// newRedis returns a connected client or nil when Redis does not answer.
func newRedis(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Address,
	})

	if loggerService != nil && loggerService.GetApplication() != nil {
		client.AddHook(nrredis.NewHook(client.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error().Err(err).Str("address", cfg.Redis.Address).
			Msg("Failed to connect to Redis, keeping flash messages in memory")
		_ = client.Close()
		return nil
	}

	logger.Info().Str("address", cfg.Redis.Address).Msg("connected to Redis")
	return client
}

// SetupHTTPServer configures the internal net/http server around handler.
// Config timeouts are seconds.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:         ":" + s.Config.Server.Port,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start blocks serving HTTP. SetupHTTPServer must run first.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Str("database", s.DB.Driver).
		Bool("redis", s.Redis != nil).
		Bool("jobs", s.Job != nil).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown stops the HTTP server, then the job worker, then closes the
// pools.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown HTTP server: %w", err)
		}
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			s.Logger.Warn().Err(err).Msg("failed to close redis client")
		}
	}

	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	return nil
}
