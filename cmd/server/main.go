package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fuseagg/fuse/pkg/api"
	"github.com/fuseagg/fuse/pkg/config"
	"github.com/fuseagg/fuse/pkg/lib/log"
	"github.com/fuseagg/fuse/pkg/sources"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := log.NewLogger(&cfg.Log, os.Stderr)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}

	server, err := initServer(logger, cfg)
	if err != nil {
		return fmt.Errorf("initialize server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", server.Addr()).Msg("Starting server")
		if err := server.Start(); err != nil {
			return fmt.Errorf("start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info().Msg("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func initServer(logger *zerolog.Logger, config *config.Config) (*api.Server, error) {
	sourceRegistry := sources.NewRegistry(logger)

	server, err := api.NewServer(logger, &config.API, &config.Providers, sourceRegistry)
	if err != nil {
		return nil, fmt.Errorf("create server: %w", err)
	}

	return server, nil
}
