package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/playperu/moneybags/internal/blobstore"
	"github.com/playperu/moneybags/internal/cli"
	"github.com/playperu/moneybags/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Keep the terminal quiet unless LOG_LEVEL asks otherwise.
	level := slog.LevelWarn
	if _, ok := os.LookupEnv("LOG_LEVEL"); ok {
		level = cfg.LogLevel
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	blobs, closeBlobs, err := blobstore.Open(ctx, cfg.BlobOptions())
	if err != nil {
		return err
	}
	defer closeBlobs()

	root := cli.NewRootCommand(logger, cli.Options{
		Blobs:     blobs,
		Key:       cfg.StateKey,
		PublicURL: cfg.PublicURL,
	})
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}
