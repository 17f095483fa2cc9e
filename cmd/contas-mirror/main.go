// Command contas-mirror keeps a local SQLite snapshot of the ledger.
// It refreshes on an interval and, when an AMQP URL is configured,
// reacts to mutation events published by the CLI so the snapshot
// converges faster than the timer alone.
package main

import (
	"os"
	"time"

	"contas/internal/cli"
	"contas/internal/events"
	"contas/internal/log"
	"contas/internal/worker"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)
	logger = logger.WithComponent(log.ComponentMirror)

	store := cli.InitMirror(cfg, logger)
	defer store.Close()

	client, _ := cli.NewLedgerClient(cfg, logger)
	w := worker.NewMirrorWorker(client, store, cfg.MirrorInterval, logger)

	ctx := cli.GracefulShutdown(logger, 10*time.Second, nil)

	if cfg.AMQPURL != "" {
		ev, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, running on interval only", log.FieldError, err)
		} else {
			defer ev.Close()
			go func() {
				if err := ev.Consume(ctx, w.HandleEvent); err != nil && ctx.Err() == nil {
					logger.Error("event consumer stopped", log.FieldError, err)
				}
			}()
		}
	}

	logger.Info("mirror worker starting",
		log.FieldOperation, log.OpStartup,
		log.FieldDestination, cfg.MirrorDBPath,
	)
	if err := w.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("mirror worker failed", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("mirror worker stopped", log.FieldOperation, log.OpShutdown)
}
