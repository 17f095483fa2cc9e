package core

import (
	"errors"
	"time"
)

const (
	Income  CategoryType = "INCOME"
	Expense CategoryType = "EXPENSE"
)

type (
	CategoryType string

	Account struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		Currency string `json:"currency"`
		Status   string `json:"status,omitempty"`
	}

	Category struct {
		ID   int64        `json:"id"`
		Name string       `json:"name"`
		Type CategoryType `json:"type"`
	}

	Transaction struct {
		ID           int64     `json:"id"`
		AccountID    int64     `json:"account_id"`
		CategoryID   *int64    `json:"category_id"`
		Amount       string    `json:"amount"`
		OccurredAt   time.Time `json:"occurred_at"`
		Description  string    `json:"description,omitempty"`
		FromTransfer bool      `json:"from_transfer"`
		TransferID   *int64    `json:"transfer_id,omitempty"`
	}

	// TransferRecord is the authoritative transfer as returned by the
	// ledger. The canonical rate triple is always present; the 2dp rate
	// and fee fields appear only on records where the ledger could
	// derive them, so they decode as nil when absent.
	TransferRecord struct {
		ID           int64     `json:"id"`
		SrcAccountID int64     `json:"src_account_id"`
		DstAccountID int64     `json:"dst_account_id"`
		SrcAmount    string    `json:"src_amount"`
		DstAmount    string    `json:"dst_amount"`
		RateValue    string    `json:"rate_value"`
		RateBase     string    `json:"rate_base"`
		RateQuote    string    `json:"rate_quote"`
		OccurredAt   time.Time `json:"occurred_at"`
		FxRate2dp    *string   `json:"fx_rate_2dp,omitempty"`
		Vet2dp       *string   `json:"vet_2dp,omitempty"`
		RefRate2dp   *string   `json:"ref_rate_2dp,omitempty"`
		FeesPerUnit  *string   `json:"fees_per_unit_2dp,omitempty"`
		FeesPct      *string   `json:"fees_pct,omitempty"`
	}

	BalanceByAccountItem struct {
		AccountID int64  `json:"account_id"`
		Currency  string `json:"currency"`
		Balance   string `json:"balance"`
	}

	MonthlyByCategoryItem struct {
		CategoryID   int64        `json:"category_id"`
		CategoryName string       `json:"category_name"`
		Type         CategoryType `json:"type"`
		Total        string       `json:"total"`
	}
)

var (
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrMissingAccount = errors.New("account not selected")
	ErrSameAccount    = errors.New("source and destination account must differ")
	ErrSameCategory   = errors.New("source and destination category must differ")
	ErrMissingInstant = errors.New("missing occurred-at instant")
)

// ValidationError reports a draft field that failed local validation.
// Validation failures never reach the wire.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field string, err error) *ValidationError {
	return &ValidationError{Field: field, Err: err}
}
