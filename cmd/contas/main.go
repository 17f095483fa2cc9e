// Command contas is the command-line front end of the ledger: it
// collects user input, runs the local reconciliation engine and talks
// to the remote ledger API, which stays authoritative for every number
// it reports back.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"contas/internal/cli"
	"contas/internal/config"
	"contas/internal/core"
	"contas/internal/events"
	"contas/internal/ledger"
	"contas/internal/log"
	"contas/internal/session"
)

const usage = `Usage: contas <command> [flags]

Commands:
  login        authenticate against the ledger
  register     create a ledger user
  logout       forget the stored token
  whoami       show the authenticated user
  accounts     list/create/rename/close accounts
  categories   list/create/deactivate/merge categories
  tx           list/create/void transactions
  transfer     create/get/void transfers
  report       balance-by-account and monthly-by-category reports
  export       export transactions to CSV or Google Sheets

Run 'contas <command> -h' for command flags.
`

type app struct {
	cfg    *config.Config
	client *ledger.Client
	tokens *session.Store
	events *events.Client // nil when AMQP is not configured
	fmt    core.MoneyFormatter
	loc    *time.Location
	logger *log.Logger
}

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	client, tokens := cli.NewLedgerClient(cfg, logger)
	a := &app{
		cfg:    cfg,
		client: client,
		tokens: tokens,
		fmt:    core.FormatterFor(cfg.Locale),
		loc:    cfg.Location(),
		logger: logger.WithComponent(log.ComponentCLI),
	}

	if cfg.AMQPURL != "" {
		ev, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			a.logger.Warn("AMQP unavailable, continuing without events", log.FieldError, err)
		} else {
			a.events = ev
			defer ev.Close()
		}
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.APITimeout)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "login":
		err = a.cmdLogin(ctx, os.Args[2:])
	case "register":
		err = a.cmdRegister(ctx, os.Args[2:])
	case "logout":
		err = a.tokens.Clear()
	case "whoami":
		err = a.cmdWhoami(ctx)
	case "accounts":
		err = a.cmdAccounts(ctx, os.Args[2:])
	case "categories":
		err = a.cmdCategories(ctx, os.Args[2:])
	case "tx":
		err = a.cmdTransactions(ctx, os.Args[2:])
	case "transfer":
		err = a.cmdTransfer(ctx, os.Args[2:])
	case "report":
		err = a.cmdReport(ctx, os.Args[2:])
	case "export":
		err = a.cmdExport(ctx, os.Args[2:])
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if err != nil {
		a.reportError(err)
		os.Exit(1)
	}
}

// reportError renders a failure for the terminal. Remote failures keep
// the server's own wording and carry the request id so the failure can
// be found in the server logs.
func (a *app) reportError(err error) {
	var apiErr *ledger.APIError
	var valErr *core.ValidationError
	switch {
	case errors.As(err, &apiErr):
		fmt.Fprintf(os.Stderr, "error: %s\n", apiErr.Detail)
		if apiErr.Detail == "" {
			fmt.Fprintf(os.Stderr, "error: ledger returned status %d\n", apiErr.StatusCode)
		}
		if apiErr.RequestID != "" {
			fmt.Fprintf(os.Stderr, "request id: %s\n", apiErr.RequestID)
		}
	case errors.As(err, &valErr):
		fmt.Fprintf(os.Stderr, "invalid input: %s\n", valErr)
	case errors.Is(err, session.ErrNotLoggedIn):
		fmt.Fprintln(os.Stderr, "not logged in: run 'contas login' first")
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
}

// publish announces a mutation on the event stream when one is
// configured. Losing an announcement never fails the command.
func (a *app) publish(ctx context.Context, kind string, id int64) {
	if a.events == nil {
		return
	}
	if err := a.events.Publish(ctx, kind, id); err != nil {
		a.logger.Warn("event publish failed", log.FieldError, err, log.FieldEventKind, kind)
	}
}

// warnIfTokenStale nags when the stored token has already expired.
func (a *app) warnIfTokenStale() {
	token, err := a.tokens.Load()
	if err != nil {
		return
	}
	if session.Expired(token, time.Now()) {
		fmt.Fprintln(os.Stderr, "note: stored token has expired, run 'contas login' again")
	}
}
