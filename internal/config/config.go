// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package config

import (
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any mapped setting
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
//	db, err := database.New(&cfg.Database)
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	API      APIConfig      `koanf:"api"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
	Stats    StatsConfig    `koanf:"stats"`
	Import   ImportConfig   `koanf:"import"`
	Breaker  BreakerConfig  `koanf:"breaker"`
	NATS     NATSConfig     `koanf:"nats"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DatabaseConfig holds DuckDB settings for the customer record store.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = use NumCPU
	// QueryTimeout bounds every store call that arrives without a deadline.
	QueryTimeout time.Duration `koanf:"query_timeout"`
	// CheckpointInterval is how often the server flushes the WAL; 0 disables.
	CheckpointInterval time.Duration `koanf:"checkpoint_interval"`
}

// APIConfig holds API pagination settings for the customer listing.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// SecurityConfig holds CORS and rate limiting settings. The statistics
// endpoints are public reads, so there is no authentication section.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// StatsConfig holds aggregation engine settings.
//
// SummaryDedup and GenderDedup name the deduplication strategy used when a
// request does not pass ?dedup= explicitly. Valid names: none, customerId,
// email, fullName, nameEmail.
type StatsConfig struct {
	SummaryDedup string        `koanf:"summary_dedup"`
	GenderDedup  string        `koanf:"gender_dedup"`
	CacheTTL     time.Duration `koanf:"cache_ttl"`
	ScatterLimit int           `koanf:"scatter_limit"`
}

// ImportConfig holds CSV import settings used by cmd/seed.
//
// Environment Variables:
//   - IMPORT_BATCH_SIZE: Rows per insert batch (default: 200)
//   - IMPORT_PROGRESS_PATH: BadgerDB directory for resumable progress
//     (default: empty, progress kept in memory only)
//   - IMPORT_DRY_RUN: Parse and validate without writing (default: false)
type ImportConfig struct {
	BatchSize    int    `koanf:"batch_size"`
	ProgressPath string `koanf:"progress_path"`
	DryRun       bool   `koanf:"dry_run"`
}

// BreakerConfig tunes the circuit breaker guarding store reads. The breaker
// never retries; it only stops sending reads to a failing store.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// NATSConfig holds settings for import-completed events.
//
// When Embedded is true the server starts an in-process NATS server on
// Host:Port and both publisher and subscriber connect to it.
type NATSConfig struct {
	Enabled  bool   `koanf:"enabled"`
	URL      string `koanf:"url"`
	Embedded bool   `koanf:"embedded"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Subject  string `koanf:"subject"`
}

// Addr returns the HTTP listen address.
func (s ServerConfig) Addr() string {
	return joinHostPort(s.Host, s.Port)
}

// Load loads configuration using the layered Koanf loader.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
