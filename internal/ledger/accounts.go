package ledger

import (
	"context"
	"fmt"
	"net/url"

	"contas/internal/cache"
	"contas/internal/core"
	"contas/internal/log"
)

const accountsCollection = "accounts"

type AccountFilter struct {
	IncludeClosed bool
	Name          string
}

func (f AccountFilter) query() url.Values {
	q := url.Values{}
	if f.IncludeClosed {
		q.Set("include_closed", "true")
	}
	if f.Name != "" {
		q.Set("name", f.Name)
	}
	return q
}

// ListAccounts serves from the query cache when a fresh entry exists for
// the same filter.
func (c *Client) ListAccounts(ctx context.Context, f AccountFilter) ([]core.Account, error) {
	q := f.query()
	key := cache.Key(accountsCollection, q.Encode())
	if v, ok := c.cache.Get(key); ok {
		if items, ok := v.([]core.Account); ok {
			return items, nil
		}
	}
	var items []core.Account
	if err := c.get(ctx, "/fin/accounts", q, &items); err != nil {
		return nil, err
	}
	c.cache.Set(key, items)
	return items, nil
}

type AccountCreate struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

func (c *Client) CreateAccount(ctx context.Context, in AccountCreate) (core.Account, error) {
	var a core.Account
	if err := c.post(ctx, "/fin/accounts", in, &a); err != nil {
		return core.Account{}, err
	}
	c.cache.Invalidate(accountsCollection)
	c.logger.Info("account created",
		log.FieldOperation, log.OpCreate, log.FieldAccountID, a.ID)
	return a, nil
}

type AccountUpdate struct {
	Name *string `json:"name,omitempty"`
}

func (c *Client) UpdateAccount(ctx context.Context, id int64, in AccountUpdate) (core.Account, error) {
	var a core.Account
	if err := c.patch(ctx, fmt.Sprintf("/fin/accounts/%d", id), in, &a); err != nil {
		return core.Account{}, err
	}
	c.cache.Invalidate(accountsCollection)
	c.logger.Info("account updated",
		log.FieldOperation, log.OpUpdate, log.FieldAccountID, id)
	return a, nil
}

// CloseAccount marks an account closed; closed accounts stay fetchable
// behind the include_closed filter.
func (c *Client) CloseAccount(ctx context.Context, id int64) (core.Account, error) {
	var a core.Account
	if err := c.post(ctx, fmt.Sprintf("/fin/accounts/%d/close", id), nil, &a); err != nil {
		return core.Account{}, err
	}
	c.cache.Invalidate(accountsCollection)
	c.logger.Info("account closed",
		log.FieldOperation, log.OpClose, log.FieldAccountID, id)
	return a, nil
}
