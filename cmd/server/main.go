package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Skotchmaster/accounts_admin/internal/config"
	"github.com/Skotchmaster/accounts_admin/internal/db"
	"github.com/Skotchmaster/accounts_admin/internal/events"
	"github.com/Skotchmaster/accounts_admin/internal/hash"
	"github.com/Skotchmaster/accounts_admin/internal/httpserver"
	"github.com/Skotchmaster/accounts_admin/internal/logging"
	"github.com/Skotchmaster/accounts_admin/internal/middleware/auth"
	"github.com/Skotchmaster/accounts_admin/internal/repo"
	"github.com/Skotchmaster/accounts_admin/internal/service"
	"github.com/Skotchmaster/accounts_admin/internal/session"
	"github.com/Skotchmaster/accounts_admin/internal/tokens"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx := context.Background()

	gdb, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db_init_failed", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(ctx, gdb); err != nil {
		logger.Error("db_migrate_failed", "error", err)
		os.Exit(1)
	}

	rp := repo.New(gdb)
	if cfg.AdminEmail != "" {
		seedAdmin(ctx, logger, rp, cfg.AdminEmail, cfg.AdminPassword)
	}

	publisher := newPublisher(logger, cfg)

	issuer := tokens.NewIssuer(cfg.JWTSecret, cfg.JWTExpiration)
	cookie := session.CookieConfig{
		Name:   cfg.CookieName,
		Domain: cfg.CookieDomain,
		MaxAge: cfg.CookieMaxAge,
		Secure: cfg.CookieSecure,
	}

	e := httpserver.New(httpserver.Options{
		Logger:      logger,
		Cookie:      cookie,
		CORSOrigins: cfg.CORSOrigins,
	})

	deps := httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{
			Svc:    &service.AuthService{Repo: rp, Tokens: issuer, Events: publisher},
			Cookie: cookie,
		},
		AccountsHandler: &httpserver.AccountsHTTP{Svc: &service.AccountService{Repo: rp}},
		AuthGuard:       auth.NewAuthGuard(issuer, rp, cfg.CookieName),
		Roles:           httpserver.DefaultRouteRoles(),
		Ready:           rp.Ping,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("http_server_started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	go func() {
		<-quit
		logger.Warn("force exit")
		os.Exit(1)
	}()

	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}

	if err := db.Close(gdb); err != nil {
		logger.Error("db_close_error", "error", err)
	}

	if err := publisher.Close(); err != nil {
		logger.Error("kafka_close_error", "error", err)
	}

	logger.Info("shutdown complete")
}

func seedAdmin(ctx context.Context, logger *slog.Logger, rp *repo.GormRepo, email, password string) {
	pwHash, err := hash.HashPassword(password)
	if err != nil {
		logger.Error("admin_seed_failed", "reason", "cannot hash the password", "error", err)
		os.Exit(1)
	}

	created, err := rp.SeedAdmin(ctx, email, pwHash)
	if err != nil {
		logger.Error("admin_seed_failed", "error", err)
		os.Exit(1)
	}
	if created {
		logger.Info("admin_seeded", "email", email)
	}
}

func newPublisher(logger *slog.Logger, cfg config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("events_disabled", "reason", "KAFKA_BROKERS is empty")
		return events.Noop{}
	}

	if err := events.EnsureTopic(cfg.KafkaBrokers, cfg.EventsTopic); err != nil {
		logger.Warn("kafka_topic_check_failed", "topic", cfg.EventsTopic, "error", err)
	}

	prod, err := events.NewProducer(cfg.KafkaBrokers, cfg.EventsTopic)
	if err != nil {
		logger.Error("kafka_init_failed", "error", err)
		return events.Noop{}
	}
	return prod
}
