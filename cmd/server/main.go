package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/playperu/moneybags/internal/autosave"
	"github.com/playperu/moneybags/internal/blobstore"
	"github.com/playperu/moneybags/internal/config"
	"github.com/playperu/moneybags/internal/gamestate"
	"github.com/playperu/moneybags/internal/handler/health"
	"github.com/playperu/moneybags/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- Blob store ---
	blobs, closeBlobs, err := blobstore.Open(ctx, cfg.BlobOptions())
	if err != nil {
		return err
	}
	defer closeBlobs()
	logger.Info("opened blob store", "backend", cfg.StoreBackend)

	// --- Game ---
	store := gamestate.New()
	if err := autosave.Restore(ctx, store, blobs, cfg.StateKey, logger); err != nil {
		return err
	}
	if cfg.SeedDemo {
		if err := server.SeedDemo(logger, store); err != nil {
			return fmt.Errorf("seeding demo game: %w", err)
		}
	}

	saver := autosave.NewSaver(blobs, cfg.StateKey, logger)
	broker := server.NewBroker()
	store.Subscribe(saver.Notify)
	store.Subscribe(broker.Publish)

	// Seeding ran before the saver was subscribed.
	if cfg.SeedDemo {
		saver.Notify(store.State())
	}

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Options{
		Store:     store,
		Broker:    broker,
		PublicURL: cfg.PublicURL,
		SPADir:    cfg.SPADir,
		Mount: func(r chi.Router) {
			r.Mount("/healthz", health.NewHandler(logger, map[string]health.Checker{
				"store": health.CheckerFunc(blobs.Ping),
			}).Routes())
		},
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	g.Go(func() error {
		return saver.Run(gctx)
	})

	return g.Wait()
}
