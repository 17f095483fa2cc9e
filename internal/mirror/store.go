// Package mirror keeps a local SQLite snapshot of ledger records so
// exports keep working when the ledger is unreachable. The mirror is a
// cache, never an authority: every refresh replaces what the ledger
// returned and voided or deleted records disappear with it.
package mirror

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"contas/internal/core"
)

// defaultBatchSize bounds one upsert transaction when the caller
// passes no batch size.
const defaultBatchSize = 200

type Store struct {
	db        *sql.DB
	batchSize int
}

// NewStore opens the mirror database, creating and migrating it as
// needed. batchSize bounds how many transactions one upsert commit
// covers; values below one fall back to the default.
func NewStore(dbPath string, batchSize int) (*Store, error) {
	if batchSize < 1 {
		batchSize = defaultBatchSize
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db, batchSize: batchSize}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ReplaceAccounts swaps the mirrored account set for the given one.
func (s *Store) ReplaceAccounts(ctx context.Context, accounts []core.Account) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM accounts`); err != nil {
			return fmt.Errorf("clear accounts: %w", err)
		}
		for _, a := range accounts {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO accounts (id, name, currency, status) VALUES (?, ?, ?, ?)`,
				a.ID, a.Name, a.Currency, a.Status)
			if err != nil {
				return fmt.Errorf("insert account %d: %w", a.ID, err)
			}
		}
		return nil
	})
}

// ReplaceCategories swaps the mirrored category set for the given one.
func (s *Store) ReplaceCategories(ctx context.Context, categories []core.Category) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
			return fmt.Errorf("clear categories: %w", err)
		}
		for _, c := range categories {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO categories (id, name, type) VALUES (?, ?, ?)`,
				c.ID, c.Name, c.Type)
			if err != nil {
				return fmt.Errorf("insert category %d: %w", c.ID, err)
			}
		}
		return nil
	})
}

// UpsertTransactions merges fetched transactions into the mirror,
// committing in batches so a large refresh never holds one long write
// transaction over the whole set.
func (s *Store) UpsertTransactions(ctx context.Context, txs []core.Transaction) error {
	for start := 0; start < len(txs); start += s.batchSize {
		batch := txs[start:min(start+s.batchSize, len(txs))]
		if err := s.upsertBatch(ctx, batch); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) upsertBatch(ctx context.Context, txs []core.Transaction) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, t := range txs {
			_, err := tx.ExecContext(ctx, `
INSERT INTO transactions (id, account_id, category_id, amount, occurred_at, description, from_transfer, transfer_id)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    account_id = excluded.account_id,
    category_id = excluded.category_id,
    amount = excluded.amount,
    occurred_at = excluded.occurred_at,
    description = excluded.description,
    from_transfer = excluded.from_transfer,
    transfer_id = excluded.transfer_id`,
				t.ID, t.AccountID, t.CategoryID, t.Amount,
				core.FormatWire(t.OccurredAt), t.Description, t.FromTransfer, t.TransferID)
			if err != nil {
				return fmt.Errorf("upsert transaction %d: %w", t.ID, err)
			}
		}
		return nil
	})
}

// DeleteTransaction drops one mirrored transaction, e.g. after a void
// event when voided records are not mirrored.
func (s *Store) DeleteTransaction(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	return nil
}

// ListAccounts returns mirrored accounts ordered by id.
func (s *Store) ListAccounts(ctx context.Context) ([]core.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, currency, status FROM accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []core.Account
	for rows.Next() {
		var a core.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Currency, &a.Status); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// ListTransactions returns mirrored transactions ordered by instant.
func (s *Store) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, account_id, category_id, amount, occurred_at, description, from_transfer, transfer_id
FROM transactions ORDER BY occurred_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var (
			t        core.Transaction
			occurred string
		)
		if err := rows.Scan(&t.ID, &t.AccountID, &t.CategoryID, &t.Amount,
			&occurred, &t.Description, &t.FromTransfer, &t.TransferID); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		at, err := core.ParseWire(occurred)
		if err != nil {
			return nil, fmt.Errorf("parse occurred_at of transaction %d: %w", t.ID, err)
		}
		t.OccurredAt = at
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
