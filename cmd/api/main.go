// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/carterperez-dev/course-marketplace/internal/admin"
	"github.com/carterperez-dev/course-marketplace/internal/auth"
	"github.com/carterperez-dev/course-marketplace/internal/category"
	"github.com/carterperez-dev/course-marketplace/internal/config"
	"github.com/carterperez-dev/course-marketplace/internal/core"
	"github.com/carterperez-dev/course-marketplace/internal/course"
	"github.com/carterperez-dev/course-marketplace/internal/health"
	"github.com/carterperez-dev/course-marketplace/internal/learning"
	"github.com/carterperez-dev/course-marketplace/internal/middleware"
	"github.com/carterperez-dev/course-marketplace/internal/quiz"
	"github.com/carterperez-dev/course-marketplace/internal/server"
	"github.com/carterperez-dev/course-marketplace/internal/subscription"
	"github.com/carterperez-dev/course-marketplace/internal/user"
)

const (
	drainDelay = 5 * time.Second

	credentialRequestsPerMinute = 10
	credentialBurst             = 5
)

func main() {
	configPath := flag.String("config", "", "path to an optional YAML config file")
	genKeys := flag.Bool("genkeys", false, "write a new ES256 key pair to the configured paths and exit")
	privateKey := flag.String("private-key", "keys/private.pem", "private key path for -genkeys")
	publicKey := flag.String("public-key", "keys/public.pem", "public key path for -genkeys")
	flag.Parse()

	if *genKeys {
		if err := writeKeys(*privateKey, *publicKey); err != nil {
			slog.Error("generate keys", "error", err)
			os.Exit(1)
		}
		slog.Info("key pair written", "private", *privateKey, "public", *publicKey)
		return
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", "error", err)
	}

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func writeKeys(privatePath, publicPath string) error {
	for _, p := range []string{privatePath, publicPath} {
		if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
			return fmt.Errorf("create key directory: %w", err)
		}
	}
	return auth.GenerateKeyPair(privatePath, publicPath)
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.AutoMigrate {
		applied, migrateErr := core.Migrate(ctx, db.DB)
		if migrateErr != nil {
			return migrateErr
		}
		logger.Info("migrations applied", "versions", applied)
	}

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
		"key_prefix", cfg.Redis.KeyPrefix,
	)

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	userSvc := user.NewService(user.NewRepository(db.DB))
	passwords := core.NewPasswordHasher(core.PasswordParams{
		MemoryKiB:   cfg.Password.MemoryKiB,
		Iterations:  cfg.Password.Iterations,
		Parallelism: cfg.Password.Parallelism,
	})
	authSvc := auth.NewService(jwtManager, userSvc, passwords)
	if cfg.Admin.Email != "" {
		created, seedErr := authSvc.EnsureAdmin(ctx, auth.AdminSeed{
			Username: cfg.Admin.Username,
			Email:    cfg.Admin.Email,
			Password: cfg.Admin.Password,
		})
		if seedErr != nil {
			return seedErr
		}
		logger.Info("super admin seed checked", "email", cfg.Admin.Email, "created", created)
	}
	categorySvc := category.NewService(category.NewRepository(db.DB))
	courseSvc := course.NewService(course.NewRepository(db.DB))
	learningSvc := learning.NewService(learning.NewRepository(db.DB), courseSvc)
	quizSvc := quiz.NewService(quiz.NewRepository(db.DB), courseSvc)
	subscriptionSvc := subscription.NewService(subscription.NewRepository(db.DB), userSvc)

	healthHandler := health.NewHandler(
		health.Dependency{Name: "database", Checker: db},
		health.Dependency{Name: "redis", Checker: redis},
	)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Counts:     admin.NewRepository(db.DB),
	})

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer(logger))
	var limitMetrics *middleware.RateLimitMetrics
	if cfg.Metrics.Enabled {
		router.Use(middleware.NewMetrics(registry).Handler)
		limitMetrics = middleware.NewRateLimitMetrics(registry)
	}
	router.Use(
		middleware.NewRateLimiter(redis, middleware.RateLimitConfig{
			Name: "global",
			Limit: middleware.PerWindow(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			FailOpen: true,
			Metrics:  limitMetrics,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	if cfg.Metrics.Enabled {
		router.Handle(cfg.Metrics.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	router.Get("/.well-known/jwks.json", jwtManager.GetJWKSHandler())

	authenticator := middleware.Authenticator(jwtManager)
	adminOnly := middleware.RequireAdmin

	credentialLimit := middleware.NewRateLimiter(redis, middleware.RateLimitConfig{
		Name:     "credentials",
		Limit:    middleware.PerWindow(credentialRequestsPerMinute, credentialBurst, time.Minute),
		KeyFunc:  middleware.KeyByIPAndEndpoint,
		FailOpen: true,
		Metrics:  limitMetrics,
	}).Handler

	authHandler := auth.NewHandler(authSvc)
	authHandler.RegisterRoutes(router, authenticator, credentialLimit)
	authHandler.RegisterAdminRoutes(router, authenticator, adminOnly)

	userHandler := user.NewHandler(userSvc)
	userHandler.RegisterRoutes(router, authenticator)
	userHandler.RegisterAdminRoutes(router, authenticator, adminOnly)

	category.NewHandler(categorySvc).RegisterRoutes(router, authenticator, adminOnly)
	course.NewHandler(courseSvc).RegisterRoutes(router, authenticator)
	learning.NewHandler(learningSvc).RegisterRoutes(router, authenticator)
	quiz.NewHandler(quizSvc).RegisterRoutes(router, authenticator)
	subscription.NewHandler(subscriptionSvc).RegisterRoutes(router, authenticator)

	adminHandler.RegisterRoutes(router, authenticator, adminOnly)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
