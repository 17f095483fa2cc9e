package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Ledger API
	APIBaseURL string
	APITimeout time.Duration

	// Auth token persistence
	TokenFile string

	// Display
	Locale   string
	Timezone string

	// Query cache
	CacheTTL time.Duration

	// AMQP event stream (optional; empty URL disables publishing)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Local mirror
	MirrorDBPath    string
	MirrorInterval  time.Duration
	MirrorBatchSize int

	// Google Sheets export (optional)
	GoogleSpreadsheetID string
	GoogleSheetName     string
}

func Load() *Config {
	return &Config{
		APIBaseURL: getEnv("LEDGER_API_URL", "http://localhost:10000"),
		APITimeout: getEnvDuration("LEDGER_API_TIMEOUT", 15*time.Second),

		TokenFile: getEnv("LEDGER_TOKEN_FILE", defaultTokenFile()),

		Locale:   getEnv("LOCALE", "pt-PT"),
		Timezone: getEnv("TZ_OVERRIDE", ""),

		CacheTTL: getEnvDuration("QUERY_CACHE_TTL", 30*time.Second),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "contas"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_events"),

		MirrorDBPath:    getEnv("MIRROR_DB_PATH", "./data/contas-mirror.db"),
		MirrorInterval:  getEnvDuration("MIRROR_INTERVAL", 5*time.Minute),
		MirrorBatchSize: getEnvInt("MIRROR_BATCH_SIZE", 200),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Ledger"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errs []string

	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("invalid LEDGER_API_URL '%s': must be an absolute http(s) URL", c.APIBaseURL))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, fmt.Sprintf("invalid LEDGER_API_URL scheme '%s'", u.Scheme))
	}

	if c.APITimeout <= 0 {
		errs = append(errs, "LEDGER_API_TIMEOUT must be positive")
	}
	if c.CacheTTL < 0 {
		errs = append(errs, "QUERY_CACHE_TTL must not be negative")
	}
	if c.MirrorInterval <= 0 {
		errs = append(errs, "MIRROR_INTERVAL must be positive")
	}
	if c.MirrorBatchSize < 1 {
		errs = append(errs, "MIRROR_BATCH_SIZE must be at least 1")
	}
	if c.AMQPURL != "" {
		if _, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP_URL: %v", err))
		}
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			errs = append(errs, fmt.Sprintf("invalid TZ_OVERRIDE '%s'", c.Timezone))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Location resolves the display timezone. An empty override means the
// process-local zone, which is what an interactive CLI wants.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".contas-token"
	}
	return home + "/.contas/token"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
