package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fintrack-platform/internal/audit"
	"fintrack-platform/internal/auth"
	"fintrack-platform/internal/config"
	"fintrack-platform/internal/employees"
	"fintrack-platform/internal/goals"
	"fintrack-platform/internal/httpapi"
	"fintrack-platform/internal/loans"
	"fintrack-platform/internal/organization"
	"fintrack-platform/internal/profiles"
	"fintrack-platform/internal/repayments"
	"fintrack-platform/internal/savings"
	"fintrack-platform/pkg/logger"
	"fintrack-platform/pkg/utils"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Local .env is optional; real deployments inject env directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	authManager, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	db, err := utils.OpenPostgres(rootCtx, "pgx", cfg.PostgresDSN(), utils.PoolSettings{
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		log.Error("postgres init failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb, err := utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
	if err != nil {
		log.Error("redis init failed", "err", err)
		os.Exit(1)
	}
	defer rdb.Close()

	// Services over Postgres repositories.
	userSvc := employees.NewService(employees.NewPostgresRepo(db))
	orgSvc := organization.NewService(organization.NewPostgresRepo(db), userSvc)
	profileSvc := profiles.NewService(profiles.NewPostgresRepo(db))
	savingSvc := savings.NewService(savings.NewPostgresRepo(db))
	loanSvc := loans.NewService(loans.NewPostgresRepo(db))
	repaymentSvc := repayments.NewService(repayments.NewPostgresRepo(db), loanSvc)
	goalSvc := goals.NewService(goals.NewPostgresRepo(db))

	h := httpapi.Handlers{
		Auth:    authManager,
		Limiter: auth.NewLoginLimiter(rdb),
		Resets:  auth.NewResetStore(rdb, cfg.Auth.ResetTokenTTL),
		// Reset tokens reach the log only outside production.
		LogResetTokens: !cfg.IsProduction(),
		Orgs:           orgSvc,
		Users:          userSvc,
		Profiles:       profileSvc,
		Savings:        savingSvc,
		Loans:          loanSvc,
		Repayments:     repaymentSvc,
		Goals:          goalSvc,
		Audit:          audit.NewService(audit.NewPostgresRepo(db)),
	}

	// Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger(log))

	registerRoutes(r, h, auth.RequireToken(authManager))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}
