package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Fukolomka/Sitea/internal/domain"
)

// beginLocked starts a read-committed transaction whose row lock waits are
// bounded by lockTimeout.
func beginLocked(ctx context.Context, db *pgxpool.Pool, lockTimeout time.Duration) (*lockingTx, error) {
	tx, err := db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, wrap(ErrMsgFailedToBeginTransaction, err)
	}

	if lockTimeout <= 0 {
		lockTimeout = DefaultLockTimeout
	}
	if _, err := tx.Exec(ctx, `SELECT set_config('lock_timeout', $1, true)`, lockTimeoutSetting(lockTimeout)); err != nil {
		_ = tx.Rollback(ctx)
		return nil, wrap(ErrMsgFailedToSetLockTimeout, err)
	}

	return &lockingTx{tx: tx}, nil
}

// lockTimeoutSetting renders d in whole milliseconds, at least 1.
func lockTimeoutSetting(d time.Duration) string {
	return fmt.Sprintf("%dms", max(int64(1), d.Milliseconds()))
}

// lockingTx implements repository.OpeningTx and repository.WalletTx
type lockingTx struct {
	tx pgx.Tx
}

func (t *lockingTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return wrap(ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

func (t *lockingTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *lockingTx) GetUserForUpdate(ctx context.Context, userID string) (*domain.User, error) {
	if !validID(userID) {
		return nil, domain.ErrUserNotFound
	}
	u, err := scanUser(t.tx.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE user_id = $1
		FOR UPDATE
	`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, wrap(ErrMsgFailedToLockUser, err)
	}
	return u, nil
}

func (t *lockingTx) GetCase(ctx context.Context, caseID string) (*domain.Case, error) {
	return getActiveCase(ctx, t.tx, caseID)
}

// DebitBalance guards the update itself so a stale read can never overdraw.
func (t *lockingTx) DebitBalance(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := t.tx.QueryRow(ctx, `
		UPDATE users
		SET balance = balance - $2, updated_at = NOW()
		WHERE user_id = $1 AND balance >= $2
		RETURNING balance
	`, userID, amount).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrInsufficientBalance
		}
		return decimal.Zero, wrap(ErrMsgFailedToDebitBalance, err)
	}
	return balance, nil
}

func (t *lockingTx) CreditBalance(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := t.tx.QueryRow(ctx, `
		UPDATE users
		SET balance = balance + $2, updated_at = NOW()
		WHERE user_id = $1
		RETURNING balance
	`, userID, amount).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrUserNotFound
		}
		return decimal.Zero, wrap(ErrMsgFailedToCreditBalance, err)
	}
	return balance, nil
}

func (t *lockingTx) InsertOpening(ctx context.Context, rec *domain.OpeningRecord) error {
	err := t.tx.QueryRow(ctx, `
		INSERT INTO case_openings (user_id, case_id, item_id, cost)
		VALUES ($1, $2, $3, $4)
		RETURNING case_opening_id::text, created_at
	`, rec.UserID, rec.CaseID, rec.ItemID, rec.Cost).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return wrap(ErrMsgFailedToInsertOpening, err)
	}
	return nil
}

// IncrementInventory relies on the partial unique index over OWNED stacks.
func (t *lockingTx) IncrementInventory(ctx context.Context, userID, itemID string) (*domain.InventoryEntry, error) {
	e := domain.InventoryEntry{UserID: userID, ItemID: itemID, Status: domain.InventoryOwned}
	err := t.tx.QueryRow(ctx, `
		INSERT INTO inventory_entries (user_id, item_id, quantity, status)
		VALUES ($1, $2, 1, 'OWNED')
		ON CONFLICT (user_id, item_id) WHERE status = 'OWNED' DO UPDATE
		SET quantity = inventory_entries.quantity + 1, updated_at = NOW()
		RETURNING inventory_entry_id::text, quantity, created_at, updated_at
	`, userID, itemID).Scan(&e.ID, &e.Quantity, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, wrap(ErrMsgFailedToUpsertInventory, err)
	}
	return &e, nil
}

func (t *lockingTx) InsertLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	err := t.tx.QueryRow(ctx, `
		INSERT INTO ledger_entries (user_id, kind, amount, status, description, payment_method)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ledger_entry_id::text, created_at
	`, entry.UserID, entry.Kind, entry.Amount, entry.Status, entry.Description, entry.PaymentMethod,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return wrap(ErrMsgFailedToInsertLedger, err)
	}
	return nil
}
