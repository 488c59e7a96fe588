// Package main imports the legacy markdown articles into the database and
// moves their images into object storage.
//
// It is safe to run repeatedly: articles whose slug already exists are
// skipped and images are stored under content-addressed names.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pkordes/european-living/internal/config"
	"github.com/pkordes/european-living/internal/migrate"
	"github.com/pkordes/european-living/internal/repo"
	"github.com/pkordes/european-living/internal/storage"
)

func main() {
	imagesDir := flag.String("images", envOr("IMAGES_DIR", "./public/images"), "directory holding the local images")
	contentDir := flag.String("content", envOr("CONTENT_DIR", "./src/data/content"), "directory holding the markdown articles")
	mappingFile := flag.String("mapping", "image-mapping.json", "where to write the image mapping (empty to skip)")
	concurrency := flag.Int("concurrency", 4, "parallel image uploads")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}
	st, err := config.LoadStorage()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	objects := storage.New(&http.Client{Timeout: 30 * time.Second}, st.URL, st.Key)
	m := migrate.New(repo.NewArticleRepo(pool), objects, migrate.Options{
		Bucket:      st.Bucket,
		ImagesDir:   *imagesDir,
		ContentDir:  *contentDir,
		MappingFile: *mappingFile,
		Concurrency: *concurrency,
	}, os.Stdout, logger)

	sum, err := m.Run(ctx)
	if err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("migration finished", "success", sum.Success, "skipped", sum.Skipped, "failed", sum.Failed)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
