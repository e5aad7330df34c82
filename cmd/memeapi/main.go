package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/memevault/meme-api/internal/app"
	"github.com/memevault/meme-api/internal/pkg/config"
	"github.com/memevault/meme-api/pkg/logger"
)

func main() {
	cliApp := &cli.App{
		Name:  "memeapi",
		Usage: "Meme sharing API with token authentication",
		Commands: []*cli.Command{
			serveCmd(),
			migrateCmd(),
		},
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := cliApp.RunContext(ctx, os.Args); err != nil {
		log.Error().Err(err).Msg("Application failed")
		os.Exit(1)
	}
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP API",
		Action: func(c *cli.Context) error {
			ctx := c.Context
			cfg, err := setup(ctx)
			if err != nil {
				return err
			}
			l := logger.Get()

			a, err := app.New(ctx, cfg, l)
			if err != nil {
				return err
			}
			defer func() {
				if err := a.Close(context.Background()); err != nil {
					l.Error().Err(err).Msg("Unable to release resources")
				}
			}()

			l.Info().
				Str("store", cfg.StoreDriver).
				Str("cache", cfg.Cache.Backend).
				Str("env", cfg.Env).
				Msg("meme api ready")
			return a.Serve(ctx, app.Addr(cfg.Port))
		},
	}
}

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply the store schema (SQL migrations or Mongo indexes) and exit",
		Action: func(c *cli.Context) error {
			ctx := c.Context
			cfg, err := setup(ctx)
			if err != nil {
				return err
			}
			l := logger.Get()

			store, err := app.OpenStore(ctx, cfg, l)
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(context.Background()); err != nil {
					l.Error().Err(err).Msg("Unable to close store")
				}
			}()

			if err := store.Migrate(ctx); err != nil {
				return err
			}
			l.Info().Str("store", cfg.StoreDriver).Msg("schema up to date")
			return nil
		},
	}
}

// setup loads configuration and initialises the process logger.
func setup(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "memeapi",
	})
	return cfg, nil
}
