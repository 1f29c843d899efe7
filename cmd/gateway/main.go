package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/appshell/session-gateway/internal/api"
	"github.com/appshell/session-gateway/internal/core/ports"
	"github.com/appshell/session-gateway/internal/core/service"
	apiclient "github.com/appshell/session-gateway/internal/infrastructure/api"
	"github.com/appshell/session-gateway/internal/infrastructure/config"
	"github.com/appshell/session-gateway/internal/infrastructure/notify"
	filestorage "github.com/appshell/session-gateway/internal/infrastructure/storage/file"
	memorystorage "github.com/appshell/session-gateway/internal/infrastructure/storage/memory"
	redisstorage "github.com/appshell/session-gateway/internal/infrastructure/storage/redis"
	"github.com/appshell/session-gateway/pkg/logger"
)

func main() {
	// Missing .env is fine; the environment itself still applies.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := buildStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise session storage")
	}

	client := apiclient.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, logger.Component("backend"))
	notifier := notify.NewLog(logger.Component("notify"))

	session := service.NewSessionStore(client, client, storage, notifier, logger.Component("session"))
	client.SetTokenSource(session.Token)

	profile := service.NewProfileStore(client, session, notifier, logger.Component("profile"))
	guard := service.NewNavigationGuard(session, logger.Component("guard"))

	bootstrapSession(ctx, session)

	e := api.NewRouter(cfg, session, profile, guard, storage, prometheus.DefaultRegisterer, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend.BaseURL).Msg("session gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}

// bootstrapSession brings durable state in before the first navigation
// arrives. A restored token is validated against the backend right away:
// if it no longer authorizes profile access the whole session is purged
// instead of being admitted by the guard until a later API call fails.
func bootstrapSession(ctx context.Context, session ports.SessionStore) {
	session.EnsureHydrated(ctx)
	if session.Token() != "" {
		session.InitUser(ctx)
	}
}

func buildStorage(ctx context.Context, cfg *config.Config) (ports.Storage, error) {
	switch cfg.Storage.Backend {
	case "redis":
		client, err := redisstorage.Connect(ctx, redisstorage.Config{
			Addr: cfg.Storage.Redis.Addr,
			DB:   cfg.Storage.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		return redisstorage.NewStore(client), nil
	case "memory":
		return memorystorage.NewStore(), nil
	default:
		return filestorage.Open(cfg.Storage.FilePath)
	}
}
