package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.APIBaseURL == "" {
		t.Fatal("expected default API base URL")
	}
	if cfg.APITimeout <= 0 {
		t.Fatal("expected positive default timeout")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"relative api url", func(c *Config) { c.APIBaseURL = "localhost:10000" }},
		{"bad scheme", func(c *Config) { c.APIBaseURL = "ftp://host" }},
		{"zero timeout", func(c *Config) { c.APITimeout = 0 }},
		{"negative cache ttl", func(c *Config) { c.CacheTTL = -time.Second }},
		{"zero mirror interval", func(c *Config) { c.MirrorInterval = 0 }},
		{"zero batch size", func(c *Config) { c.MirrorBatchSize = 0 }},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Load()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LEDGER_API_URL", "https://ledger.example.com")
	t.Setenv("QUERY_CACHE_TTL", "2m")
	t.Setenv("MIRROR_BATCH_SIZE", "50")
	cfg := Load()
	if cfg.APIBaseURL != "https://ledger.example.com" {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.CacheTTL != 2*time.Minute {
		t.Fatalf("CacheTTL = %v", cfg.CacheTTL)
	}
	if cfg.MirrorBatchSize != 50 {
		t.Fatalf("MirrorBatchSize = %d", cfg.MirrorBatchSize)
	}
}
