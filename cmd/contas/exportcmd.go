package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"contas/internal/core"
	"contas/internal/export"
	"contas/internal/ledger"
	"contas/internal/log"
	"contas/internal/mirror"
)

func (a *app) cmdExport(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("export: expected one of tx, balance, monthly, sheets")
	}
	switch args[0] {
	case "tx":
		return a.exportTransactions(ctx, args[1:])
	case "balance":
		return a.exportBalance(ctx, args[1:])
	case "monthly":
		return a.exportMonthly(ctx, args[1:])
	case "sheets":
		return a.exportSheets(ctx, args[1:])
	default:
		return fmt.Errorf("export: unknown subcommand %q", args[0])
	}
}

// loadTransactions reads either from the ledger or from the local
// mirror. Offline reads work without a token or network.
func (a *app) loadTransactions(ctx context.Context, offline bool) ([]core.Transaction, error) {
	if offline {
		store, err := mirror.NewStore(a.cfg.MirrorDBPath, a.cfg.MirrorBatchSize)
		if err != nil {
			return nil, fmt.Errorf("opening mirror: %w", err)
		}
		defer store.Close()
		return store.ListTransactions(ctx)
	}
	a.warnIfTokenStale()
	return a.client.ListTransactions(ctx, ledger.TransactionFilter{})
}

func (a *app) writeCSVFile(path string, rows []export.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := export.WriteCSV(f, rows); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	a.logger.Info("export written",
		log.FieldOperation, log.OpExport,
		log.FieldRowCount, len(rows),
		log.FieldDestination, path,
	)
	fmt.Printf("wrote %d rows to %s\n", len(rows), path)
	return nil
}

func (a *app) exportTransactions(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export tx", flag.ExitOnError)
	out := fs.String("out", "transactions.csv", "output file")
	offline := fs.Bool("offline", false, "read from the local mirror instead of the ledger")
	fs.Parse(args)

	txs, err := a.loadTransactions(ctx, *offline)
	if err != nil {
		return err
	}
	return a.writeCSVFile(*out, export.TransactionRows(txs))
}

func (a *app) exportBalance(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export balance", flag.ExitOnError)
	out := fs.String("out", "balance.csv", "output file")
	year, month := reportFlags(fs)
	fs.Parse(args)

	a.warnIfTokenStale()
	items, err := a.client.BalanceByAccount(ctx, ledger.ReportFilter{Year: *year, Month: *month})
	if err != nil {
		return err
	}
	return a.writeCSVFile(*out, export.BalanceRows(items))
}

func (a *app) exportMonthly(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export monthly", flag.ExitOnError)
	out := fs.String("out", "monthly.csv", "output file")
	year, month := reportFlags(fs)
	fs.Parse(args)

	a.warnIfTokenStale()
	items, err := a.client.MonthlyByCategory(ctx, ledger.ReportFilter{Year: *year, Month: *month})
	if err != nil {
		return err
	}
	return a.writeCSVFile(*out, export.MonthlyRows(items))
}

func (a *app) exportSheets(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export sheets", flag.ExitOnError)
	offline := fs.Bool("offline", false, "read from the local mirror instead of the ledger")
	fs.Parse(args)

	if a.cfg.GoogleSpreadsheetID == "" {
		return fmt.Errorf("export sheets: GOOGLE_SPREADSHEET_ID is not set")
	}
	txs, err := a.loadTransactions(ctx, *offline)
	if err != nil {
		return err
	}

	exporter, err := export.NewSheetsExporter(ctx, a.cfg.GoogleSpreadsheetID, a.cfg.GoogleSheetName, a.logger)
	if err != nil {
		return fmt.Errorf("sheets setup: %w", err)
	}
	rows := export.TransactionRows(txs)
	if err := exporter.Append(ctx, rows); err != nil {
		return fmt.Errorf("sheets append: %w", err)
	}
	fmt.Printf("appended %d rows to spreadsheet %s\n", len(rows), a.cfg.GoogleSpreadsheetID)
	return nil
}
