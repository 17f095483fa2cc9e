package main

import (
	"context"
	"flag"
	"fmt"

	"contas/internal/core"
	"contas/internal/events"
	"contas/internal/log"
)

func (a *app) cmdTransfer(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("transfer: expected one of create, get, void")
	}
	a.warnIfTokenStale()
	switch args[0] {
	case "create":
		return a.transferCreate(ctx, args[1:])
	case "get":
		return a.transferGet(ctx, args[1:])
	case "void":
		return a.transferVoid(ctx, args[1:])
	default:
		return fmt.Errorf("transfer: unknown subcommand %q", args[0])
	}
}

func (a *app) transferCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("transfer create", flag.ExitOnError)
	src := fs.Int64("src", 0, "source account id")
	dst := fs.Int64("dst", 0, "destination account id")
	srcAmount := fs.String("amount", "", "amount leaving the source account")
	dstAmount := fs.String("dst-amount", "", "amount arriving, overrides the VET suggestion")
	vet := fs.String("vet", "", "total effective rate, sends fx_rate and drives the suggestion")
	when := fs.String("when", "", "local instant, default now")
	fs.Parse(args)

	at, err := a.parseWhen(*when)
	if err != nil {
		return err
	}

	draft := core.TransferDraft{
		SrcAccountID: *src,
		DstAccountID: *dst,
		SrcAmount:    core.NormalizeAmountInput(*srcAmount),
		DstAmount:    core.NormalizeAmountInput(*dstAmount),
		FxRate:       core.NormalizeAmountInput(*vet),
		OccurredAt:   at,
	}

	// With no explicit destination amount the VET suggestion fills the
	// field, the same way the form overwrites it on every rate change.
	if *dstAmount == "" {
		if hint, ok := core.SuggestDstAmount(draft.SrcAmount, draft.FxRate); ok {
			draft.DstAmount = hint
			fmt.Printf("suggested destination amount: %s\n", hint)
		}
	}

	req, err := draft.BuildCreateRequest()
	if err != nil {
		return err
	}
	resp, err := a.client.CreateTransfer(ctx, req)
	if err != nil {
		return err
	}
	a.publish(ctx, events.KindTransferCreated, resp.Transfer.ID)
	a.logger.Info("transfer created",
		log.FieldOperation, log.OpCreate,
		log.FieldTransferID, resp.Transfer.ID,
	)

	fmt.Printf("created transfer %d (transactions %d and %d)\n",
		resp.Transfer.ID, resp.SrcTransactionID, resp.DstTransactionID)
	a.renderTransfer(ctx, resp.Transfer)
	return nil
}

func (a *app) transferGet(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("transfer get", flag.ExitOnError)
	id := fs.Int64("id", 0, "transfer id")
	fs.Parse(args)

	if *id == 0 {
		return fmt.Errorf("transfer get: -id is required")
	}
	t, err := a.client.GetTransfer(ctx, *id)
	if err != nil {
		return err
	}
	a.renderTransfer(ctx, t)
	return nil
}

func (a *app) transferVoid(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("transfer void", flag.ExitOnError)
	id := fs.Int64("id", 0, "transfer id")
	fs.Parse(args)

	if *id == 0 {
		return fmt.Errorf("transfer void: -id is required")
	}
	t, err := a.client.VoidTransfer(ctx, *id)
	if err != nil {
		return err
	}
	a.publish(ctx, events.KindTransferVoided, t.ID)
	fmt.Printf("voided transfer %d (both legs)\n", t.ID)
	return nil
}

// renderTransfer prints the server-returned record: both legs in their
// account currencies, one rate line picked by precedence, then the VET
// and fee lines when the ledger derived them. Account names come from
// the cached account list; a lookup failure degrades to bare ids.
func (a *app) renderTransfer(ctx context.Context, t core.TransferRecord) {
	srcName := fmt.Sprintf("account %d", t.SrcAccountID)
	dstName := fmt.Sprintf("account %d", t.DstAccountID)
	srcCur, dstCur := t.RateBase, t.RateQuote

	if accounts, err := a.client.ListAccounts(ctx, accountListAll); err == nil {
		idx := accountIndex(accounts)
		if acc, ok := idx[t.SrcAccountID]; ok {
			srcName, srcCur = acc.Name, acc.Currency
		}
		if acc, ok := idx[t.DstAccountID]; ok {
			dstName, dstCur = acc.Name, acc.Currency
		}
	}

	fmt.Printf("  %s  %s  ->  %s  %s\n",
		srcName, a.fmt.Format(t.SrcAmount, srcCur),
		dstName, a.fmt.Format(t.DstAmount, dstCur))
	fmt.Printf("  when: %s\n", core.ToLocalMinute(t.OccurredAt, a.loc))

	rate := t.RateDisplay()
	fmt.Printf("  %s: %s\n", rate.Label, rate)
	if vet, ok := t.VetDisplay(); ok {
		fmt.Printf("  VET: %s\n", vet)
	}
	if fee, ok := t.FeeDisplay(); ok {
		fmt.Printf("  fees: %s\n", fee)
	}
}
