// Package main prints the public URL of every object in the image bucket.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/pkordes/european-living/internal/config"
	"github.com/pkordes/european-living/internal/migrate"
	"github.com/pkordes/european-living/internal/storage"
)

func main() {
	st, err := config.LoadStorage()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client := storage.New(&http.Client{Timeout: 30 * time.Second}, st.URL, st.Key)
	if _, err := migrate.ListImageURLs(ctx, client, st.Bucket, os.Stdout); err != nil {
		slog.Error("failed to list images", "bucket", st.Bucket, "error", err)
		os.Exit(1)
	}
}
