package config

import (
	"testing"
	"time"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.HTTPAddr != ":9091" || cfg.StorageDriver != StorageMemory || !cfg.SeedSampleData {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Location != time.Local || cfg.ShutdownTimeout != 5*time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 0 || cfg.IsProduction() {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"HTTP_ADDR":            ":8080",
		"GO_ENV":               "Production",
		"STORAGE_DRIVER":       "REDIS",
		"REDIS_DB":             "3",
		"SEED_SAMPLE_DATA":     "false",
		"TIMEZONE":             "UTC",
		"CORS_ALLOWED_ORIGINS": "https://a.example, https://b.example ,",
		"SHUTDOWN_TIMEOUT":     "10s",
	}))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.HTTPAddr != ":8080" || cfg.StorageDriver != StorageRedis || cfg.RedisDB != 3 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if cfg.SeedSampleData || cfg.Location != time.UTC || cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
	if !cfg.IsProduction() || len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	bad := []map[string]string{
		{"STORAGE_DRIVER": "mysql"},
		{"REDIS_DB": "x"},
		{"SEED_SAMPLE_DATA": "maybe"},
		{"TIMEZONE": "Mars/Olympus"},
		{"SHUTDOWN_TIMEOUT": "soon"},
	}
	for _, m := range bad {
		if _, err := FromEnv(env(m)); err == nil {
			t.Fatalf("expected error for %v", m)
		}
	}
}
