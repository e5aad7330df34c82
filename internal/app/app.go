// Package app assembles the meme API from configuration: it picks the
// store and cache backends, builds the services and returns the router.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/memevault/meme-api/internal/api"
	"github.com/memevault/meme-api/internal/api/handler"
	"github.com/memevault/meme-api/internal/api/metrics"
	"github.com/memevault/meme-api/internal/core/ports"
	"github.com/memevault/meme-api/internal/core/service"
	"github.com/memevault/meme-api/internal/infrastructure/cache"
	"github.com/memevault/meme-api/internal/infrastructure/db/memory"
	mongostore "github.com/memevault/meme-api/internal/infrastructure/db/mongo"
	"github.com/memevault/meme-api/internal/infrastructure/db/postgres"
	"github.com/memevault/meme-api/internal/infrastructure/queue"
	rediscache "github.com/memevault/meme-api/internal/infrastructure/db/redis"
	"github.com/memevault/meme-api/internal/infrastructure/security"
	"github.com/memevault/meme-api/internal/pkg/config"
)

// App owns the HTTP router and every resource opened to serve it.
type App struct {
	Echo *echo.Echo

	log     zerolog.Logger
	closers []closer
}

type closer struct {
	name string
	fn   func(context.Context) error
}

// Store is the persistence backend selected by STORE_DRIVER.
type Store struct {
	users   ports.UserRepository
	memes   ports.MemeRepository
	pinger  handler.Pinger
	migrate func(context.Context) error
	close   func(context.Context) error
}

// Option customises New.
type Option func(*options)

type options struct {
	registry *prometheus.Registry
}

// WithRegistry registers the HTTP metrics on r instead of the default
// Prometheus registry.
func WithRegistry(r *prometheus.Registry) Option {
	return func(o *options) { o.registry = r }
}

// New connects to the configured store and cache, applies schema, and wires
// the router. Resources opened before a failure are released.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	a := &App{log: log}

	tokens, err := security.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return nil, err
	}

	store, err := OpenStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, closer{name: cfg.StoreDriver, fn: store.close})

	if err := store.migrate(ctx); err != nil {
		_ = a.Close(ctx)
		return nil, fmt.Errorf("prepare %s schema: %w", cfg.StoreDriver, err)
	}

	readiness := map[string]handler.Pinger{"store": store.pinger}

	memeCache, err := a.openCache(ctx, cfg, readiness)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	if memeCache != nil {
		writer := queue.NewWriteBehind(memeCache, cfg.Cache.Writers, log.With().Str("component", "cache-writer").Logger())
		writer.Start()
		a.closers = append(a.closers, closer{name: "cache-writer", fn: func(context.Context) error {
			writer.Close()
			return nil
		}})
		memeCache = writer
	}

	authService := service.NewAuthService(
		store.users,
		security.NewBcryptHasher(cfg.BcryptCost),
		tokens,
		log.With().Str("component", "auth").Logger(),
	)
	memeService := service.NewMemeService(
		store.memes,
		memeCache,
		log.With().Str("component", "memes").Logger(),
	)

	a.Echo = api.NewRouter(api.Dependencies{
		AuthService:   authService,
		MemeService:   memeService,
		TokenVerifier: tokens,
		Readiness:     readiness,
		Logger:        log,
		Registry:      o.registry,
	})
	return a, nil
}

// OpenStore connects to the store named by cfg.StoreDriver.
func OpenStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Store, error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, err
		}
		s := mongostore.NewStore(client, db)
		return &Store{
			users:   s.Users(),
			memes:   s.Memes(),
			pinger:  s,
			migrate: s.EnsureIndexes,
			close:   s.Close,
		}, nil

	case config.StorePostgres:
		s, err := postgres.Open(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		return &Store{
			users:  s.Users(),
			memes:  s.Memes(),
			pinger: s,
			migrate: func(ctx context.Context) error {
				return s.Migrate(ctx, log)
			},
			close: func(context.Context) error { return s.Close() },
		}, nil

	case config.StoreMemory:
		s := memory.New()
		return &Store{
			users:   s.Users(),
			memes:   s.Memes(),
			pinger:  s,
			migrate: func(context.Context) error { return nil },
			close:   func(context.Context) error { return nil },
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// Migrate applies the store schema (mongo indexes or SQL migrations).
func (b *Store) Migrate(ctx context.Context) error { return b.migrate(ctx) }

// Close releases the store connection.
func (b *Store) Close(ctx context.Context) error { return b.close(ctx) }

func (a *App) openCache(ctx context.Context, cfg *config.Config, readiness map[string]handler.Pinger) (ports.MemeCache, error) {
	switch cfg.Cache.Backend {
	case config.CacheRedis:
		client, err := rediscache.Connect(ctx, rediscache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, closer{name: "redis", fn: func(context.Context) error { return client.Close() }})
		c := rediscache.NewMemeCache(client, cfg.Cache.TTL)
		readiness["cache"] = c
		return metrics.InstrumentCache(c), nil

	case config.CacheMemory:
		c, err := cache.NewMemory(cfg.Cache.TTL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, closer{name: "bigcache", fn: func(context.Context) error { return c.Close() }})
		return metrics.InstrumentCache(c), nil
	}
	return nil, nil
}

// Close releases every resource in reverse order of acquisition.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		c := a.closers[i]
		if err := c.fn(ctx); err != nil {
			a.log.Error().Err(err).Str("resource", c.name).Msg("close failed")
			errs = append(errs, fmt.Errorf("close %s: %w", c.name, err))
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
