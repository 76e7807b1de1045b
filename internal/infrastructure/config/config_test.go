package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected server defaults: %+v", cfg)
	}
	if cfg.DB.Driver != "postgres" || cfg.DB.MaxOpenConns != 10 {
		t.Fatalf("unexpected db defaults: %+v", cfg.DB)
	}
	if !cfg.Redis.Enabled || cfg.Mongo.Enabled {
		t.Fatalf("redis must default on and mongo off: %+v %+v", cfg.Redis, cfg.Mongo)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour || cfg.Auth.RateLimit != 5 || cfg.Auth.RateBurst != 10 {
		t.Fatalf("unexpected auth defaults: %+v", cfg.Auth)
	}
	if cfg.Upload.PublicPrefix != "/uploads/images" || cfg.Upload.MaxBytes != 2<<20 {
		t.Fatalf("unexpected upload defaults: %+v", cfg.Upload)
	}
	if !cfg.IsDevelopment() {
		t.Fatal("development expected by default")
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":           "production",
		"DB_DRIVER":     "sqlite",
		"DATABASE_URL":  "file:bookstore.db",
		"TOKEN_TTL":     "90m",
		"REDIS_ENABLED": "false",
	}))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.IsDevelopment() || cfg.DB.Driver != "sqlite" || cfg.DB.URL != "file:bookstore.db" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Auth.TokenTTL != 90*time.Minute || cfg.Redis.Enabled {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	for name, env := range map[string]map[string]string{
		"driver": {"DB_DRIVER": "mysql"},
		"ttl":    {"TOKEN_TTL": "0s"},
		"type":   {"UPLOAD_MAX_BYTES": "lots"},
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFrom(context.Background(), envconfig.MapLookuper(env)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
