package ledger

import (
	"context"
	"net/url"
	"strconv"

	"contas/internal/core"
)

type ReportFilter struct {
	Year            int
	Month           int
	IncludeClosed   bool
	IncludeInactive bool
}

func (f ReportFilter) query() url.Values {
	q := url.Values{}
	q.Set("year", strconv.Itoa(f.Year))
	q.Set("month", strconv.Itoa(f.Month))
	if f.IncludeClosed {
		q.Set("include_closed", "true")
	}
	if f.IncludeInactive {
		q.Set("include_inactive", "true")
	}
	return q
}

// BalanceByAccount returns per-account balances at the end of the given
// month. Reports are not cached: they are already aggregates and the
// month filter changes on nearly every call.
func (c *Client) BalanceByAccount(ctx context.Context, f ReportFilter) ([]core.BalanceByAccountItem, error) {
	var items []core.BalanceByAccountItem
	if err := c.get(ctx, "/fin/reports/balance-by-account", f.query(), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// MonthlyByCategory returns income/expense totals per category for the
// given month.
func (c *Client) MonthlyByCategory(ctx context.Context, f ReportFilter) ([]core.MonthlyByCategoryItem, error) {
	var items []core.MonthlyByCategoryItem
	if err := c.get(ctx, "/fin/reports/monthly-by-category", f.query(), &items); err != nil {
		return nil, err
	}
	return items, nil
}
