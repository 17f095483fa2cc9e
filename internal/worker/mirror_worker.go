// Package worker keeps the local mirror in step with the ledger. A
// refresh runs at startup, on a fixed interval and whenever a mutation
// event arrives; each refresh pulls accounts, categories and
// transactions concurrently and replaces the snapshot.
package worker

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"contas/internal/core"
	"contas/internal/events"
	"contas/internal/ledger"
	"contas/internal/log"
	"contas/internal/mirror"
)

// Source is the slice of the ledger client the worker needs.
type Source interface {
	ListAccounts(ctx context.Context, f ledger.AccountFilter) ([]core.Account, error)
	ListCategories(ctx context.Context, f ledger.CategoryFilter) ([]core.Category, error)
	ListTransactions(ctx context.Context, f ledger.TransactionFilter) ([]core.Transaction, error)
}

type MirrorWorker struct {
	src      Source
	store    *mirror.Store
	interval time.Duration
	trigger  chan struct{}
	logger   *log.Logger
}

func NewMirrorWorker(src Source, store *mirror.Store, interval time.Duration, logger *log.Logger) *MirrorWorker {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &MirrorWorker{
		src:      src,
		store:    store,
		interval: interval,
		trigger:  make(chan struct{}, 1),
		logger:   logger.WithComponent(log.ComponentWorker),
	}
}

// HandleEvent reacts to one ledger mutation announcement. Void events
// drop the affected leg immediately; everything else nudges a full
// refresh, coalescing bursts into one pass.
func (w *MirrorWorker) HandleEvent(msg *events.Message) error {
	if msg.Kind == events.KindTransactionVoided {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := w.store.DeleteTransaction(ctx, msg.ID); err != nil {
			return err
		}
	}
	select {
	case w.trigger <- struct{}{}:
	default:
	}
	return nil
}

// Run refreshes until ctx is cancelled.
func (w *MirrorWorker) Run(ctx context.Context) error {
	if err := w.Refresh(ctx); err != nil {
		w.logger.Warn("initial refresh failed", log.FieldError, err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("mirror worker stopping", log.FieldOperation, log.OpShutdown)
			return ctx.Err()
		case <-ticker.C:
		case <-w.trigger:
		}
		if err := w.Refresh(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.logger.Warn("refresh failed, keeping previous snapshot", log.FieldError, err)
		}
	}
}

// Refresh pulls all three collections and updates the snapshot. The
// mirror includes closed accounts and inactive categories so offline
// exports can still resolve names.
func (w *MirrorWorker) Refresh(ctx context.Context) error {
	var (
		accounts   []core.Account
		categories []core.Category
		txs        []core.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		accounts, err = w.src.ListAccounts(gctx, ledger.AccountFilter{IncludeClosed: true})
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = w.src.ListCategories(gctx, ledger.CategoryFilter{IncludeInactive: true})
		return err
	})
	g.Go(func() error {
		var err error
		txs, err = w.src.ListTransactions(gctx, ledger.TransactionFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("fetch from ledger: %w", err)
	}

	if err := w.store.ReplaceAccounts(ctx, accounts); err != nil {
		return err
	}
	if err := w.store.ReplaceCategories(ctx, categories); err != nil {
		return err
	}
	if err := w.store.UpsertTransactions(ctx, txs); err != nil {
		return err
	}

	w.logger.Info("mirror refreshed",
		log.FieldOperation, log.OpRefresh,
		"accounts", len(accounts),
		"categories", len(categories),
		"transactions", len(txs))
	return nil
}
