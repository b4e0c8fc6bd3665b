package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress            string
	MongoURI              string
	MongoDatabase         string
	RedisAddr             string
	RedisPassword         string
	RedisDB               int
	NatsURL               string
	ArchiveDSN            string
	CallbackBaseURL       string
	ServiceTokenSecret    string
	ServiceTokenTTL       time.Duration
	BiddingWindow         time.Duration
	SweepInterval         time.Duration
	SweepBatchLimit       int
	SchedulerPollInterval time.Duration
	ShutdownTimeout       time.Duration
	MaxBidsPerCarrier     int
}

const (
	defaultRunAddress            = ":8080"
	defaultMongoDatabase         = "cargoflow"
	defaultServiceTokenSecret    = "change-me-in-production"
	defaultServiceTokenTTL       = 10 * time.Minute
	defaultBiddingWindow         = 3 * time.Minute
	defaultSweepInterval         = time.Minute
	defaultSweepBatchLimit       = 500
	defaultSchedulerPollInterval = time.Second
	defaultShutdownTimeout       = 10 * time.Second
	defaultMaxBidsPerCarrier     = 3
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:            getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		MongoURI:              getString(lookup, "MONGO_URI", ""),
		MongoDatabase:         getString(lookup, "MONGO_DATABASE", defaultMongoDatabase),
		RedisAddr:             getString(lookup, "REDIS_ADDR", ""),
		RedisPassword:         getString(lookup, "REDIS_PASSWORD", ""),
		RedisDB:               getInt(lookup, "REDIS_DB", 0),
		NatsURL:               getString(lookup, "NATS_URL", ""),
		ArchiveDSN:            getString(lookup, "ARCHIVE_DSN", ""),
		CallbackBaseURL:       getString(lookup, "CALLBACK_BASE_URL", ""),
		ServiceTokenSecret:    getString(lookup, "SERVICE_TOKEN_SECRET", defaultServiceTokenSecret),
		ServiceTokenTTL:       getDuration(lookup, "SERVICE_TOKEN_TTL", defaultServiceTokenTTL),
		BiddingWindow:         getDuration(lookup, "BIDDING_WINDOW", defaultBiddingWindow),
		SweepInterval:         getDuration(lookup, "SWEEP_INTERVAL", defaultSweepInterval),
		SweepBatchLimit:       getInt(lookup, "SWEEP_BATCH_LIMIT", defaultSweepBatchLimit),
		SchedulerPollInterval: getDuration(lookup, "SCHEDULER_POLL_INTERVAL", defaultSchedulerPollInterval),
		ShutdownTimeout:       getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		MaxBidsPerCarrier:     getInt(lookup, "MAX_BIDS_PER_CARRIER", defaultMaxBidsPerCarrier),
	}

	fs := flag.NewFlagSet("cargoflow", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		biddingWindowStr   = cfg.BiddingWindow.String()
		sweepIntervalStr   = cfg.SweepInterval.String()
		pollIntervalStr    = cfg.SchedulerPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.MongoURI, "m", cfg.MongoURI, "MongoDB connection URI")
	fs.StringVar(&cfg.MongoDatabase, "db", cfg.MongoDatabase, "MongoDB database name")
	fs.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "Redis address for the task queue")
	fs.StringVar(&cfg.NatsURL, "n", cfg.NatsURL, "NATS server URL for the event bus")
	fs.StringVar(&cfg.ArchiveDSN, "archive-dsn", cfg.ArchiveDSN, "PostgreSQL DSN for the event archive")
	fs.StringVar(&cfg.CallbackBaseURL, "callback-base", cfg.CallbackBaseURL, "Base URL deferred tasks call back into")
	fs.StringVar(&cfg.ServiceTokenSecret, "token-secret", cfg.ServiceTokenSecret, "Secret for signing service identity tokens")
	fs.StringVar(&biddingWindowStr, "bidding-window", biddingWindowStr, "Offset from go-live to bidding close")
	fs.StringVar(&sweepIntervalStr, "sweep-interval", sweepIntervalStr, "Interval between sweeper ticks")
	fs.StringVar(&pollIntervalStr, "scheduler-poll", pollIntervalStr, "Interval between task queue polls")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.SweepBatchLimit, "sweep-batch", cfg.SweepBatchLimit, "Maximum shipments per sweep batch")
	fs.IntVar(&cfg.MaxBidsPerCarrier, "bid-cap", cfg.MaxBidsPerCarrier, "Maximum bids per carrier per shipment")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.BiddingWindow, err = time.ParseDuration(biddingWindowStr); err != nil {
		return nil, fmt.Errorf("invalid bidding window: %w", err)
	}

	if cfg.SweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	if cfg.SchedulerPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid scheduler poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("SERVICE_TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read service token secret file: %w", err)
		}
		cfg.ServiceTokenSecret = string(content)
	}

	if cfg.BiddingWindow <= 0 {
		cfg.BiddingWindow = defaultBiddingWindow
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	// The sweep batch cap mirrors the store's atomic batch write limit.
	if cfg.SweepBatchLimit <= 0 || cfg.SweepBatchLimit > defaultSweepBatchLimit {
		cfg.SweepBatchLimit = defaultSweepBatchLimit
	}

	if cfg.SchedulerPollInterval <= 0 {
		cfg.SchedulerPollInterval = defaultSchedulerPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.ServiceTokenTTL <= 0 {
		cfg.ServiceTokenTTL = defaultServiceTokenTTL
	}

	if cfg.MaxBidsPerCarrier <= 0 {
		cfg.MaxBidsPerCarrier = defaultMaxBidsPerCarrier
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("mongo URI must be provided")
	}

	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("redis address must be provided")
	}

	if cfg.NatsURL == "" {
		return nil, fmt.Errorf("nats URL must be provided")
	}

	if cfg.ArchiveDSN == "" {
		return nil, fmt.Errorf("archive DSN must be provided")
	}

	if cfg.CallbackBaseURL == "" {
		return nil, fmt.Errorf("callback base URL must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
