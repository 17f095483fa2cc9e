package core

import "time"

// TransferDraft is the client-local, not-yet-submitted transfer being
// composed. The enclosing front end owns exactly one draft per form
// lifetime; nothing here is shared or mutated concurrently.
//
// SrcAmount, DstAmount and FxRate hold normalized decimal strings
// (see NormalizeAmountInput). DstAmount and FxRate may stay empty:
// an empty DstAmount means "let the ledger compute it from the market
// rate", an empty FxRate means no user-supplied VET.
type TransferDraft struct {
	SrcAccountID int64
	DstAccountID int64
	SrcAmount    string
	DstAmount    string
	FxRate       string
	OccurredAt   time.Time
}

// TransferCreateRequest is the wire payload for POST /fin/transfers.
// Optional fields are omitted entirely, never sent as null. The rate the
// UI labels "VET" travels as the generic fx_rate field.
type TransferCreateRequest struct {
	SrcAccountID int64  `json:"src_account_id"`
	DstAccountID int64  `json:"dst_account_id"`
	SrcAmount    string `json:"src_amount"`
	DstAmount    string `json:"dst_amount,omitempty"`
	FxRate       string `json:"fx_rate,omitempty"`
	OccurredAt   string `json:"occurred_at"`
}

// BuildCreateRequest assembles the minimal valid create payload from the
// draft. It fails with a *ValidationError when either account is unset,
// both accounts are the same, the source amount is not a positive decimal
// or the instant is missing. DstAmount and FxRate pass through verbatim
// when non-empty. Pure transformation: the network call belongs to the
// caller.
func (d TransferDraft) BuildCreateRequest() (TransferCreateRequest, error) {
	var req TransferCreateRequest

	if d.SrcAccountID == 0 {
		return req, invalid("src_account_id", ErrMissingAccount)
	}
	if d.DstAccountID == 0 {
		return req, invalid("dst_account_id", ErrMissingAccount)
	}
	if d.SrcAccountID == d.DstAccountID {
		return req, invalid("dst_account_id", ErrSameAccount)
	}
	if _, err := ParsePositiveAmount(d.SrcAmount); err != nil {
		return req, invalid("src_amount", err)
	}
	if d.OccurredAt.IsZero() {
		return req, invalid("occurred_at", ErrMissingInstant)
	}

	req = TransferCreateRequest{
		SrcAccountID: d.SrcAccountID,
		DstAccountID: d.DstAccountID,
		SrcAmount:    d.SrcAmount,
		DstAmount:    d.DstAmount,
		FxRate:       d.FxRate,
		OccurredAt:   FormatWire(d.OccurredAt),
	}
	return req, nil
}

// RateDisplay is the rate line chosen for a transfer record.
type RateDisplay struct {
	Label string // "FX (ref)" or "FX"
	Value string
	Base  string
	Quote string
}

// String renders the value with its parenthesized currency pair,
// e.g. "0.92 (EUR/USD)".
func (d RateDisplay) String() string {
	return d.Value + " (" + d.Base + "/" + d.Quote + ")"
}

// RateDisplay selects which rate to show, preferring the 2dp reference
// rate, then the 2dp applied rate, then the canonical rate value. The
// currency pair always comes from the canonical triple, whichever value
// was picked.
func (t TransferRecord) RateDisplay() RateDisplay {
	d := RateDisplay{Label: "FX", Base: t.RateBase, Quote: t.RateQuote}
	switch {
	case t.RefRate2dp != nil:
		d.Label = "FX (ref)"
		d.Value = *t.RefRate2dp
	case t.FxRate2dp != nil:
		d.Value = *t.FxRate2dp
	default:
		d.Value = t.RateValue
	}
	return d
}

// FeeDisplay renders the implied-fee line, e.g. "0.11 (2.00%)". The line
// exists only when the per-unit fee is present; the percentage is
// appended only when the ledger also derived it.
func (t TransferRecord) FeeDisplay() (string, bool) {
	if t.FeesPerUnit == nil {
		return "", false
	}
	s := *t.FeesPerUnit
	if t.FeesPct != nil {
		s += " (" + *t.FeesPct + "%)"
	}
	return s, true
}

// VetDisplay returns the user-supplied VET when the record carries one,
// independent of which rate line was shown.
func (t TransferRecord) VetDisplay() (string, bool) {
	if t.Vet2dp == nil {
		return "", false
	}
	return *t.Vet2dp, true
}
