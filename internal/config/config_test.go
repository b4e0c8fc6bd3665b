package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func requiredEnv() map[string]string {
	return map[string]string{
		"MONGO_URI":         "mongodb://localhost:27017",
		"REDIS_ADDR":        "localhost:6379",
		"NATS_URL":          "nats://localhost:4222",
		"ARCHIVE_DSN":       "postgres://localhost/cargoflow",
		"CALLBACK_BASE_URL": "http://localhost:8080",
	}
}

func lookupFrom(env map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(nil, lookupFrom(requiredEnv()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != defaultRunAddress {
		t.Fatalf("unexpected run address %q", cfg.RunAddress)
	}
	if cfg.BiddingWindow != 3*time.Minute {
		t.Fatalf("expected 3m bidding window, got %s", cfg.BiddingWindow)
	}
	if cfg.SweepInterval != time.Minute {
		t.Fatalf("expected 1m sweep interval, got %s", cfg.SweepInterval)
	}
	if cfg.SweepBatchLimit != defaultSweepBatchLimit {
		t.Fatalf("unexpected sweep batch limit %d", cfg.SweepBatchLimit)
	}
	if cfg.MaxBidsPerCarrier != defaultMaxBidsPerCarrier {
		t.Fatalf("unexpected bid cap %d", cfg.MaxBidsPerCarrier)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	for _, key := range []string{"MONGO_URI", "REDIS_ADDR", "NATS_URL", "ARCHIVE_DSN", "CALLBACK_BASE_URL"} {
		env := requiredEnv()
		delete(env, key)
		if _, err := load(nil, lookupFrom(env)); err == nil {
			t.Fatalf("expected error when %s missing", key)
		}
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	env := requiredEnv()
	env["RUN_ADDRESS"] = ":9090"
	env["BIDDING_WINDOW"] = "5m"
	env["SWEEP_INTERVAL"] = "30s"

	cfg, err := load(nil, lookupFrom(env))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != ":9090" {
		t.Fatalf("unexpected run address %q", cfg.RunAddress)
	}
	if cfg.BiddingWindow != 5*time.Minute {
		t.Fatalf("unexpected bidding window %s", cfg.BiddingWindow)
	}
	if cfg.SweepInterval != 30*time.Second {
		t.Fatalf("unexpected sweep interval %s", cfg.SweepInterval)
	}
}

func TestLoadFlagOverridesEnv(t *testing.T) {
	env := requiredEnv()
	env["RUN_ADDRESS"] = ":9090"

	cfg, err := load([]string{"-a", ":7070", "-bidding-window", "90s"}, lookupFrom(env))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAddress != ":7070" {
		t.Fatalf("expected flag to win, got %q", cfg.RunAddress)
	}
	if cfg.BiddingWindow != 90*time.Second {
		t.Fatalf("unexpected bidding window %s", cfg.BiddingWindow)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	if _, err := load([]string{"-sweep-interval", "soon"}, lookupFrom(requiredEnv())); err == nil {
		t.Fatal("expected duration parse error")
	}
}

func TestLoadSweepBatchLimitCapped(t *testing.T) {
	env := requiredEnv()
	env["SWEEP_BATCH_LIMIT"] = "10000"
	cfg, err := load(nil, lookupFrom(env))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SweepBatchLimit != defaultSweepBatchLimit {
		t.Fatalf("expected batch limit capped at %d, got %d", defaultSweepBatchLimit, cfg.SweepBatchLimit)
	}
}

func TestLoadSecretFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(path, []byte("file-secret"), 0o600); err != nil {
		t.Fatalf("write secret file: %v", err)
	}

	env := requiredEnv()
	env["SERVICE_TOKEN_SECRET_FILE"] = path

	cfg, err := load(nil, lookupFrom(env))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServiceTokenSecret != "file-secret" {
		t.Fatalf("unexpected secret %q", cfg.ServiceTokenSecret)
	}
}
