package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"contas/internal/core"
	"contas/internal/events"
	"contas/internal/ledger"
)

func (a *app) cmdAccounts(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("accounts: expected one of list, create, rename, close")
	}
	a.warnIfTokenStale()
	switch args[0] {
	case "list":
		return a.accountsList(ctx, args[1:])
	case "create":
		return a.accountsCreate(ctx, args[1:])
	case "rename":
		return a.accountsRename(ctx, args[1:])
	case "close":
		return a.accountsClose(ctx, args[1:])
	default:
		return fmt.Errorf("accounts: unknown subcommand %q", args[0])
	}
}

func (a *app) accountsList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("accounts list", flag.ExitOnError)
	includeClosed := fs.Bool("include-closed", false, "include closed accounts")
	name := fs.String("name", "", "filter by name substring")
	fs.Parse(args)

	accounts, err := a.client.ListAccounts(ctx, ledger.AccountFilter{
		IncludeClosed: *includeClosed,
		Name:          *name,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCURRENCY\tSTATUS")
	for _, acc := range accounts {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", acc.ID, acc.Name, acc.Currency, acc.Status)
	}
	return w.Flush()
}

func (a *app) accountsCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("accounts create", flag.ExitOnError)
	name := fs.String("name", "", "account name")
	currency := fs.String("currency", "", "ISO currency code, e.g. EUR")
	fs.Parse(args)

	if *name == "" || *currency == "" {
		return fmt.Errorf("accounts create: -name and -currency are required")
	}
	acc, err := a.client.CreateAccount(ctx, ledger.AccountCreate{Name: *name, Currency: *currency})
	if err != nil {
		return err
	}
	a.publish(ctx, events.KindAccountChanged, acc.ID)
	fmt.Printf("created account %d (%s, %s)\n", acc.ID, acc.Name, acc.Currency)
	return nil
}

func (a *app) accountsRename(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("accounts rename", flag.ExitOnError)
	id := fs.Int64("id", 0, "account id")
	name := fs.String("name", "", "new account name")
	fs.Parse(args)

	if *id == 0 || *name == "" {
		return fmt.Errorf("accounts rename: -id and -name are required")
	}
	acc, err := a.client.UpdateAccount(ctx, *id, ledger.AccountUpdate{Name: name})
	if err != nil {
		return err
	}
	a.publish(ctx, events.KindAccountChanged, acc.ID)
	fmt.Printf("renamed account %d to %s\n", acc.ID, acc.Name)
	return nil
}

func (a *app) accountsClose(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("accounts close", flag.ExitOnError)
	id := fs.Int64("id", 0, "account id")
	fs.Parse(args)

	if *id == 0 {
		return fmt.Errorf("accounts close: -id is required")
	}
	acc, err := a.client.CloseAccount(ctx, *id)
	if err != nil {
		return err
	}
	a.publish(ctx, events.KindAccountChanged, acc.ID)
	fmt.Printf("closed account %d (%s)\n", acc.ID, acc.Name)
	return nil
}

// accountListAll is the filter used for render lookups: closed accounts
// stay resolvable on historic records.
var accountListAll = ledger.AccountFilter{IncludeClosed: true}

// accountIndex maps account id to account for render lookups.
func accountIndex(accounts []core.Account) map[int64]core.Account {
	idx := make(map[int64]core.Account, len(accounts))
	for _, acc := range accounts {
		idx[acc.ID] = acc
	}
	return idx
}
