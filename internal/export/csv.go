// Package export renders fetched ledger records into CSV files or a
// Google Sheets spreadsheet.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"contas/internal/core"
)

// Field is one key/value cell of a flattened record. Rows keep their
// fields ordered so the header layout is deterministic.
type Field struct {
	Key   string
	Value string
}

type Row []Field

// Headers returns the union of all keys across rows in first-seen order.
func Headers(rows []Row) []string {
	var headers []string
	seen := make(map[string]struct{})
	for _, row := range rows {
		for _, f := range row {
			if _, ok := seen[f.Key]; ok {
				continue
			}
			seen[f.Key] = struct{}{}
			headers = append(headers, f.Key)
		}
	}
	return headers
}

// escape wraps a value in quotes only when it contains a comma, a quote
// or a newline, doubling interior quotes.
func escape(v string) string {
	if strings.ContainsAny(v, ",\"\n") {
		return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return v
}

// WriteCSV writes the header row followed by one line per row. Cells for
// keys a row does not carry stay empty. Writing zero rows writes
// nothing, matching the no-op export of an empty table.
func WriteCSV(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	headers := Headers(rows)

	var b strings.Builder
	for i, h := range headers {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escape(h))
	}
	for _, row := range rows {
		values := make(map[string]string, len(row))
		for _, f := range row {
			values[f.Key] = f.Value
		}
		b.WriteByte('\n')
		for i, h := range headers {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(escape(values[h]))
		}
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// TransactionRows flattens transactions for export.
func TransactionRows(txs []core.Transaction) []Row {
	rows := make([]Row, 0, len(txs))
	for _, tx := range txs {
		row := Row{
			{"id", strconv.FormatInt(tx.ID, 10)},
			{"account_id", strconv.FormatInt(tx.AccountID, 10)},
			{"category_id", optID(tx.CategoryID)},
			{"amount", tx.Amount},
			{"occurred_at", core.FormatWire(tx.OccurredAt)},
			{"description", tx.Description},
			{"from_transfer", strconv.FormatBool(tx.FromTransfer)},
		}
		if tx.TransferID != nil {
			row = append(row, Field{"transfer_id", strconv.FormatInt(*tx.TransferID, 10)})
		}
		rows = append(rows, row)
	}
	return rows
}

// BalanceRows flattens a balance-by-account report for export.
func BalanceRows(items []core.BalanceByAccountItem) []Row {
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, Row{
			{"account_id", strconv.FormatInt(it.AccountID, 10)},
			{"currency", it.Currency},
			{"balance", it.Balance},
		})
	}
	return rows
}

// MonthlyRows flattens a monthly-by-category report for export.
func MonthlyRows(items []core.MonthlyByCategoryItem) []Row {
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, Row{
			{"category_id", strconv.FormatInt(it.CategoryID, 10)},
			{"category_name", it.CategoryName},
			{"type", string(it.Type)},
			{"total", it.Total},
		})
	}
	return rows
}

func optID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}
