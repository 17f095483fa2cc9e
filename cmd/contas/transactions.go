package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"contas/internal/core"
	"contas/internal/events"
	"contas/internal/ledger"
)

func (a *app) cmdTransactions(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("tx: expected one of list, create, void")
	}
	a.warnIfTokenStale()
	switch args[0] {
	case "list":
		return a.txList(ctx, args[1:])
	case "create":
		return a.txCreate(ctx, args[1:])
	case "void":
		return a.txVoid(ctx, args[1:])
	default:
		return fmt.Errorf("tx: unknown subcommand %q", args[0])
	}
}

// parseWhen accepts a local minute ("2006-01-02T15:04") or a bare date,
// interpreted in the configured timezone. Empty means now.
func (a *app) parseWhen(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	if t, err := core.FromLocalMinute(s, a.loc); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, a.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid instant %q (want YYYY-MM-DD or YYYY-MM-DDTHH:MM)", s)
	}
	return t, nil
}

// parseDateBound converts an optional local date to a wire bound.
func (a *app) parseDateBound(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	t, err := a.parseWhen(s)
	if err != nil {
		return "", err
	}
	return core.FormatWire(t), nil
}

func (a *app) txList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tx list", flag.ExitOnError)
	from := fs.String("from", "", "lower date bound (YYYY-MM-DD)")
	to := fs.String("to", "", "upper date bound (YYYY-MM-DD)")
	account := fs.Int64("account", 0, "filter by account id")
	category := fs.Int64("category", 0, "filter by category id")
	typ := fs.String("type", "", "filter by type: income or expense")
	includeVoided := fs.Bool("include-voided", false, "include voided transactions")
	fs.Parse(args)

	ct, err := parseCategoryType(*typ)
	if err != nil {
		return err
	}
	fromWire, err := a.parseDateBound(*from)
	if err != nil {
		return err
	}
	toWire, err := a.parseDateBound(*to)
	if err != nil {
		return err
	}

	txs, err := a.client.ListTransactions(ctx, ledger.TransactionFilter{
		FromDate:      fromWire,
		ToDate:        toWire,
		AccountID:     *account,
		CategoryID:    *category,
		Type:          ct,
		IncludeVoided: *includeVoided,
	})
	if err != nil {
		return err
	}

	accounts, err := a.client.ListAccounts(ctx, accountListAll)
	if err != nil {
		return err
	}
	idx := accountIndex(accounts)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tACCOUNT\tAMOUNT\tDESCRIPTION")
	for _, tx := range txs {
		acc := idx[tx.AccountID]
		desc := tx.Description
		if tx.FromTransfer && tx.TransferID != nil {
			desc = fmt.Sprintf("%s [transfer %d]", desc, *tx.TransferID)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			tx.ID,
			core.ToLocalMinute(tx.OccurredAt, a.loc),
			acc.Name,
			a.fmt.Format(tx.Amount, acc.Currency),
			desc,
		)
	}
	return w.Flush()
}

func (a *app) txCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tx create", flag.ExitOnError)
	account := fs.Int64("account", 0, "account id")
	category := fs.Int64("category", 0, "category id (optional)")
	amount := fs.String("amount", "", "signed amount, e.g. -12.50")
	when := fs.String("when", "", "local instant, default now")
	desc := fs.String("desc", "", "description")
	fs.Parse(args)

	if *account == 0 {
		return fmt.Errorf("tx create: -account is required")
	}
	if *amount == "" {
		return fmt.Errorf("tx create: -amount is required")
	}
	at, err := a.parseWhen(*when)
	if err != nil {
		return err
	}

	// The normalizer keeps digits only; the sign carries the
	// income/expense direction and is reattached afterwards.
	amt := core.NormalizeAmountInput(*amount)
	if _, err := core.ParsePositiveAmount(amt); err != nil {
		return fmt.Errorf("tx create: invalid amount %q", *amount)
	}
	if (*amount)[0] == '-' {
		amt = "-" + amt
	}

	in := ledger.TransactionCreate{
		AccountID:   *account,
		Amount:      amt,
		OccurredAt:  core.FormatWire(at),
		Description: *desc,
	}
	if *category != 0 {
		in.CategoryID = category
	}

	tx, err := a.client.CreateTransaction(ctx, in)
	if err != nil {
		return err
	}
	a.publish(ctx, events.KindTransactionCreated, tx.ID)
	fmt.Printf("created transaction %d\n", tx.ID)
	return nil
}

func (a *app) txVoid(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tx void", flag.ExitOnError)
	id := fs.Int64("id", 0, "transaction id")
	fs.Parse(args)

	if *id == 0 {
		return fmt.Errorf("tx void: -id is required")
	}
	tx, err := a.client.VoidTransaction(ctx, *id)
	if err != nil {
		return err
	}
	a.publish(ctx, events.KindTransactionVoided, tx.ID)
	if tx.FromTransfer && tx.TransferID != nil {
		fmt.Printf("voided transaction %d (leg of transfer %d, both legs voided)\n", tx.ID, *tx.TransferID)
	} else {
		fmt.Printf("voided transaction %d\n", tx.ID)
	}
	return nil
}
