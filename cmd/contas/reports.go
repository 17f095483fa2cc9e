package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"contas/internal/core"
	"contas/internal/ledger"
)

func (a *app) cmdReport(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("report: expected one of balance, monthly")
	}
	a.warnIfTokenStale()
	switch args[0] {
	case "balance":
		return a.reportBalance(ctx, args[1:])
	case "monthly":
		return a.reportMonthly(ctx, args[1:])
	default:
		return fmt.Errorf("report: unknown subcommand %q", args[0])
	}
}

func reportFlags(fs *flag.FlagSet) (year, month *int) {
	now := time.Now()
	year = fs.Int("year", now.Year(), "report year")
	month = fs.Int("month", int(now.Month()), "report month (1-12)")
	return year, month
}

func (a *app) reportBalance(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("report balance", flag.ExitOnError)
	year, month := reportFlags(fs)
	includeClosed := fs.Bool("include-closed", false, "include closed accounts")
	fs.Parse(args)

	filter := ledger.ReportFilter{Year: *year, Month: *month, IncludeClosed: *includeClosed}

	// Balances carry only account ids; the account list supplies names
	// and currencies. The two reads are independent, so run them together.
	var (
		items    []core.BalanceByAccountItem
		accounts []core.Account
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = a.client.BalanceByAccount(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		accounts, err = a.client.ListAccounts(gctx, accountListAll)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	idx := accountIndex(accounts)

	fmt.Printf("Balance by account, %04d-%02d\n", *year, *month)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ACCOUNT\tBALANCE")
	for _, item := range items {
		acc := idx[item.AccountID]
		name := acc.Name
		if name == "" {
			name = fmt.Sprintf("account %d", item.AccountID)
		}
		fmt.Fprintf(w, "%s\t%s\n", name, a.fmt.Format(item.Balance, item.Currency))
	}
	return w.Flush()
}

func (a *app) reportMonthly(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("report monthly", flag.ExitOnError)
	year, month := reportFlags(fs)
	includeInactive := fs.Bool("include-inactive", false, "include deactivated categories")
	fs.Parse(args)

	items, err := a.client.MonthlyByCategory(ctx, ledger.ReportFilter{
		Year:            *year,
		Month:           *month,
		IncludeInactive: *includeInactive,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Monthly totals by category, %04d-%02d\n", *year, *month)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tTYPE\tTOTAL")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\n", item.CategoryName, item.Type, item.Total)
	}
	return w.Flush()
}
