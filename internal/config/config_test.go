// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package config

import (
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"empty db path", func(c *Config) { c.Database.Path = "" }, true},
		{"negative checkpoint interval", func(c *Config) { c.Database.CheckpointInterval = -time.Minute }, true},
		{"max page below default", func(c *Config) { c.API.MaxPageSize = 10 }, true},
		{"rate limit window too short", func(c *Config) { c.Security.RateLimitWindow = time.Millisecond }, true},
		{"rate limit disabled skips bounds", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, false},
		{"strategy names are case insensitive", func(c *Config) { c.Stats.SummaryDedup = "NAMEEMAIL" }, false},
		{"unknown gender strategy", func(c *Config) { c.Stats.GenderDedup = "phone" }, true},
		{"negative cache ttl", func(c *Config) { c.Stats.CacheTTL = -time.Second }, true},
		{"zero cache ttl disables cache", func(c *Config) { c.Stats.CacheTTL = 0 }, false},
		{"breaker ratio above one", func(c *Config) { c.Breaker.FailureRatio = 1.5 }, true},
		{"embedded nats ignores url", func(c *Config) {
			c.NATS.Enabled = true
			c.NATS.Embedded = true
			c.NATS.URL = ""
			c.NATS.Port = -1
		}, false},
		{"external nats needs url", func(c *Config) {
			c.NATS.Enabled = true
			c.NATS.URL = "localhost"
		}, true},
		{"nats subject required", func(c *Config) {
			c.NATS.Enabled = true
			c.NATS.Subject = ""
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	t.Parallel()

	s := ServerConfig{Host: "127.0.0.1", Port: 3000}
	if got := s.Addr(); got != "127.0.0.1:3000" {
		t.Errorf("Addr() = %q, want 127.0.0.1:3000", got)
	}
}
