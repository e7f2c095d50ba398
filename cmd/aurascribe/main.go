// Command aurascribe runs the clinical dictation service: the REST API,
// the WebSocket streaming ingest gateway and the agent orchestration
// pipeline, backed by Redis-stored sessions and a Deepgram-compatible
// speech backend.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillsenselab/aurascribe/agent"
	"github.com/skillsenselab/aurascribe/agent/clinical"
	"github.com/skillsenselab/aurascribe/audit"
	"github.com/skillsenselab/aurascribe/auth"
	"github.com/skillsenselab/aurascribe/config"
	"github.com/skillsenselab/aurascribe/gateway"
	"github.com/skillsenselab/aurascribe/logger"
	"github.com/skillsenselab/aurascribe/observability"
	"github.com/skillsenselab/aurascribe/orchestrator"
	"github.com/skillsenselab/aurascribe/redis"
	"github.com/skillsenselab/aurascribe/server"
	"github.com/skillsenselab/aurascribe/server/handlers"
	"github.com/skillsenselab/aurascribe/server/middleware"
	"github.com/skillsenselab/aurascribe/session"
	"github.com/skillsenselab/aurascribe/transcription/deepgram"
)

const gracefulTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "aurascribe: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg appConfig
	if err := config.Load("aurascribe", &cfg); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	logger.Init(cfg.Logging)
	log := logger.GetGlobalLogger()
	log.Info("starting", logger.Fields(
		"service", cfg.Name,
		"version", cfg.Version,
		"environment", cfg.Environment,
	))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing is optional; the service runs without a collector.
	if cfg.Observability.Enabled {
		tp, err := observability.InitTracer(ctx, cfg.Observability, cfg.Name, cfg.Version)
		if err != nil {
			log.Warn("tracing disabled", logger.Fields(logger.FieldError, err.Error()))
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := tp.Shutdown(shutdownCtx); err != nil {
					log.Warn("tracer shutdown", logger.Fields(logger.FieldError, err.Error()))
				}
			}()
		}
	}

	// Redis is optional; sessions fall back to the in-process store.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		client, err := redis.New(cfg.Redis, log)
		if err != nil {
			log.Warn("redis unavailable, using in-process session store",
				logger.Fields(logger.FieldError, err.Error()))
		} else {
			redisClient = client
			defer redisClient.Close()
		}
	}

	sessions, err := session.NewStore(cfg.Session, redisClient, log)
	if err != nil {
		return fmt.Errorf("session store: %w", err)
	}

	provider, err := deepgram.New(cfg.Deepgram, log)
	if err != nil {
		return fmt.Errorf("transcription provider: %w", err)
	}

	registry := agent.NewRegistry(log)
	clinical.Register(registry)

	orch, err := orchestrator.New(cfg.Orchestrator, registry, log)
	if err != nil {
		return fmt.Errorf("orchestrator: %w", err)
	}

	authSvc, err := auth.NewService(cfg.Auth, log)
	if err != nil {
		return fmt.Errorf("auth service: %w", err)
	}
	users := auth.NewUserStore(redisClient, log)

	// Audit events fan out to Kafka (when configured) and to an
	// in-memory ring served over the API.
	trail := audit.NewRing(cfg.AuditTrailSize)
	kafkaPub, err := audit.NewPublisher(cfg.Audit, log)
	if err != nil {
		return fmt.Errorf("audit publisher: %w", err)
	}
	auditPub := audit.Multi{trail, kafkaPub}
	defer auditPub.Close()

	srv := server.New(cfg.Server, log)
	engine := srv.GinEngine()
	engine.Use(
		middleware.Recovery(log),
		middleware.RequestID(),
		middleware.CORS(cfg.Server.CORS),
		middleware.RateLimit(middleware.RateLimitConfig{RequestsPerMinute: cfg.Server.RequestsPerMinute}),
		middleware.RequestLogger(log),
		middleware.Authenticate(authSvc, handlers.PublicPaths()),
	)

	h := handlers.New(handlers.Deps{
		Log:          log,
		Sessions:     sessions,
		Provider:     provider,
		Deepgram:     provider,
		Agents:       registry,
		Orchestrator: orch,
		Auth:         authSvc,
		Users:        users,
		Audit:        auditPub,
		Trail:        trail,
		ServiceName:  cfg.Name,
		Version:      cfg.Version,
	})
	h.Register(engine)

	ws, err := gateway.NewHandler(cfg.Gateway, sessions, provider, authSvc, auditPub, log)
	if err != nil {
		return fmt.Errorf("gateway: %w", err)
	}
	srv.Handle(cfg.Gateway.Path, ws)

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server start: %w", err)
	}
	log.Info("ready", logger.Fields(
		"addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		"gateway_path", cfg.Gateway.Path,
	))

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gracefulTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("server stop: %w", err)
	}
	log.Info("stopped")
	return nil
}
