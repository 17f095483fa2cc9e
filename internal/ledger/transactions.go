package ledger

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"contas/internal/cache"
	"contas/internal/core"
	"contas/internal/log"
)

const transactionsCollection = "transactions"

type TransactionFilter struct {
	FromDate      string // wire RFC 3339, passed through verbatim
	ToDate        string
	AccountID     int64
	CategoryID    int64
	Type          core.CategoryType
	IncludeVoided bool
}

func (f TransactionFilter) query() url.Values {
	q := url.Values{}
	if f.FromDate != "" {
		q.Set("from_date", f.FromDate)
	}
	if f.ToDate != "" {
		q.Set("to_date", f.ToDate)
	}
	if f.AccountID != 0 {
		q.Set("account_id", strconv.FormatInt(f.AccountID, 10))
	}
	if f.CategoryID != 0 {
		q.Set("category_id", strconv.FormatInt(f.CategoryID, 10))
	}
	if f.Type != "" {
		q.Set("type", string(f.Type))
	}
	if f.IncludeVoided {
		q.Set("include_voided", "true")
	}
	return q
}

func (c *Client) ListTransactions(ctx context.Context, f TransactionFilter) ([]core.Transaction, error) {
	q := f.query()
	key := cache.Key(transactionsCollection, q.Encode())
	if v, ok := c.cache.Get(key); ok {
		if items, ok := v.([]core.Transaction); ok {
			return items, nil
		}
	}
	var items []core.Transaction
	if err := c.get(ctx, "/fin/transactions", q, &items); err != nil {
		return nil, err
	}
	c.cache.Set(key, items)
	return items, nil
}

type TransactionCreate struct {
	AccountID   int64  `json:"account_id"`
	CategoryID  *int64 `json:"category_id"`
	Amount      string `json:"amount"`
	OccurredAt  string `json:"occurred_at"`
	Description string `json:"description,omitempty"`
}

func (c *Client) CreateTransaction(ctx context.Context, in TransactionCreate) (core.Transaction, error) {
	var tx core.Transaction
	if err := c.post(ctx, "/fin/transactions", in, &tx); err != nil {
		return core.Transaction{}, err
	}
	c.cache.Invalidate(transactionsCollection)
	c.logger.Info("transaction created",
		log.FieldOperation, log.OpCreate,
		log.FieldTxID, tx.ID,
		log.FieldAccountID, tx.AccountID,
		log.FieldAmount, tx.Amount)
	return tx, nil
}

// VoidTransaction logically reverses a transaction. The record stays
// fetchable behind the include_voided filter; balances are the server's
// problem.
func (c *Client) VoidTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	var tx core.Transaction
	if err := c.post(ctx, fmt.Sprintf("/fin/transactions/%d/void", id), nil, &tx); err != nil {
		return core.Transaction{}, err
	}
	c.cache.Invalidate(transactionsCollection)
	c.logger.Info("transaction voided",
		log.FieldOperation, log.OpVoid, log.FieldTxID, id)
	return tx, nil
}
