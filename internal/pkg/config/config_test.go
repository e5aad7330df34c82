package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.JWTTTL != time.Hour {
		t.Errorf("expected 1h token ttl, got %s", cfg.JWTTTL)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("expected bcrypt cost 10, got %d", cfg.BcryptCost)
	}
	if cfg.StoreDriver != StoreMongo || cfg.Cache.Backend != CacheRedis {
		t.Errorf("unexpected drivers: %q %q", cfg.StoreDriver, cfg.Cache.Backend)
	}
	if cfg.Mongo.Database != "memedb" {
		t.Errorf("expected memedb, got %q", cfg.Mongo.Database)
	}
	if cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("expected 5m cache ttl, got %s", cfg.Cache.TTL)
	}
	if cfg.Cache.Writers != 4 {
		t.Errorf("expected 4 cache writers, got %d", cfg.Cache.Writers)
	}
	if !cfg.IsDevelopment() {
		t.Errorf("expected development env by default")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":    "s3cret",
		"PORT":          "9090",
		"STORE_DRIVER":  "postgres",
		"POSTGRES_DSN":  "postgres://u:p@db/memes",
		"CACHE_BACKEND": "memory",
		"CACHE_TTL":     "30s",
		"REDIS_DB":      "2",
	}))
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}
	if cfg.Port != "9090" || cfg.StoreDriver != StorePostgres || cfg.Postgres.DSN != "postgres://u:p@db/memes" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Cache.Backend != CacheMemory || cfg.Cache.TTL != 30*time.Second || cfg.Redis.DB != 2 {
		t.Errorf("cache overrides not applied: %+v %+v", cfg.Cache, cfg.Redis)
	}
}

func TestLoadFrom_MissingSecret(t *testing.T) {
	for _, env := range []map[string]string{{}, {"JWT_SECRET": ""}} {
		_, err := LoadFrom(context.Background(), envconfig.MapLookuper(env))
		if !errors.Is(err, ErrMissingJWTSecret) {
			t.Fatalf("expected ErrMissingJWTSecret, got %v", err)
		}
	}
}

func TestLoadFrom_UnknownDrivers(t *testing.T) {
	tests := map[string]map[string]string{
		"store": {"JWT_SECRET": "s", "STORE_DRIVER": "sqlite"},
		"cache": {"JWT_SECRET": "s", "CACHE_BACKEND": "memcached"},
	}
	for name, env := range tests {
		if _, err := LoadFrom(context.Background(), envconfig.MapLookuper(env)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
