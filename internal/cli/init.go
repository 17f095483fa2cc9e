// Package cli provides common initialization shared by cmd/contas and
// cmd/contas-mirror.
package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"contas/internal/cache"
	"contas/internal/config"
	"contas/internal/ledger"
	"contas/internal/log"
	"contas/internal/mirror"
	"contas/internal/session"
)

// SetupLogger initializes structured logging with default settings.
func SetupLogger() *log.Logger {
	return log.New(log.DefaultConfig())
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// NewLedgerClient wires the API client with the token store and the
// query cache.
func NewLedgerClient(cfg *config.Config, logger *log.Logger) (*ledger.Client, *session.Store) {
	tokens := session.NewStore(cfg.TokenFile)
	client := ledger.New(cfg.APIBaseURL,
		ledger.WithTokenSource(tokens),
		ledger.WithCache(cache.New(cfg.CacheTTL)),
		ledger.WithLogger(logger),
		ledger.WithHTTPClient(newHTTPClient(cfg.APITimeout)),
	)
	return client, tokens
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// InitMirror opens the local mirror store or exits the process.
func InitMirror(cfg *config.Config, logger *log.Logger) *mirror.Store {
	store, err := mirror.NewStore(cfg.MirrorDBPath, cfg.MirrorBatchSize)
	if err != nil {
		logger.Error("Failed to open mirror store", log.FieldError, err, log.FieldPath, cfg.MirrorDBPath)
		os.Exit(1)
	}
	return store
}

// GracefulShutdown returns a context cancelled on SIGINT/SIGTERM and
// runs cleanup once a signal arrives.
func GracefulShutdown(logger *log.Logger, timeout time.Duration, cleanup func()) context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", log.FieldOperation, log.OpShutdown, "signal", sig.String())

		done := make(chan struct{})
		go func() {
			if cleanup != nil {
				cleanup()
			}
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(timeout):
			logger.Warn("Cleanup timed out")
		}
		cancel()
	}()

	return ctx
}
