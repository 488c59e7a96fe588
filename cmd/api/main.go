// Package main is the entry point for the European Living API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/pkordes/european-living/internal/cache"
	"github.com/pkordes/european-living/internal/config"
	"github.com/pkordes/european-living/internal/geocode"
	"github.com/pkordes/european-living/internal/handler"
	"github.com/pkordes/european-living/internal/middleware"
	"github.com/pkordes/european-living/internal/repo"
	"github.com/pkordes/european-living/internal/service"
	"github.com/pkordes/european-living/internal/signup"
	"github.com/pkordes/european-living/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON output to stdout, or to a size-rotated file when LOG_FILE is set.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		}
		defer rotator.Close()
		out = rotator
	}
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	if cfg.MigrateOnStart {
		if err := migrate(context.Background(), pool); err != nil {
			slog.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
	}

	// --- Cache ------------------------------------------------------------
	var store cache.Store = cache.Noop{}
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			// The cache is optional; run uncached rather than refuse to start.
			slog.Warn("redis unreachable, caching disabled", "addr", cfg.Redis.Addr, "error", err)
		} else {
			store = cache.NewRedis(rdb, "el:")
			slog.Info("redis cache enabled", "addr", cfg.Redis.Addr)
		}
	}

	// --- Services ---------------------------------------------------------
	articleRepo := repo.NewArticleRepo(pool)
	businessRepo := repo.NewBusinessRepo(pool)
	reviewRepo := repo.NewReviewRepo(pool)

	articles := service.NewArticleService(articleRepo, store, logger)
	httpClient := &http.Client{Timeout: 10 * time.Second}

	srv := handler.NewServer(handler.Services{
		Articles:   articles,
		Businesses: service.NewBusinessService(businessRepo, reviewRepo),
		Reviews:    service.NewReviewService(reviewRepo),
		DayTrips:   service.NewDayTripService(repo.NewDayTripRepo(pool), repo.NewSavedTripRepo(pool)),
		Tags:       service.NewTagService(repo.NewTagRepo(pool)),
		Phrases:    service.NewPhraseService(repo.NewPhraseRepo(pool)),
		Geocoder:   geocode.New(httpClient, cfg.GeocoderURL, cfg.GeocoderCountry, store),
		Signup:     signup.New(httpClient, cfg.SignupRelayURL),
	}, logger)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body limit → selected base.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy),
	// which the write rate limiter keys on.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Use(middleware.SelectedBase)

	opts := handler.RouterOptions{AdminSecret: []byte(cfg.AdminJWTSecret)}
	if cfg.RateLimitPerMinute > 0 {
		opts.WriteLimiter = middleware.NewRateLimiter(cfg.RateLimitPerMinute, logger).Handler
	}
	if len(opts.AdminSecret) == 0 {
		slog.Warn("ADMIN_JWT_SECRET not set, admin routes disabled")
	}
	r.Mount("/", srv.Routes(opts))

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	// Let pending view-count writes land before the pool closes.
	articles.Wait()
	slog.Info("server stopped")
}

// migrate applies every pending goose migration through a database/sql
// handle borrowed from the pool.
func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return err
	}
	for _, res := range results {
		slog.Info("migration applied", "version", res.Source.Version, "duration", res.Duration)
	}
	return nil
}
