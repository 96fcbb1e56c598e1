package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Fukolomka/Sitea/internal/domain"
	"github.com/Fukolomka/Sitea/internal/repository"
)

// WalletRepository implements repository.Wallet for PostgreSQL
type WalletRepository struct {
	db          *pgxpool.Pool
	lockTimeout time.Duration
}

var _ repository.WalletTx = (*lockingTx)(nil)

// NewWalletRepository creates a new WalletRepository
func NewWalletRepository(db *pgxpool.Pool, lockTimeout time.Duration) *WalletRepository {
	return &WalletRepository{db: db, lockTimeout: lockTimeout}
}

// BeginTx starts a balance-changing unit of work
func (r *WalletRepository) BeginTx(ctx context.Context) (repository.WalletTx, error) {
	tx, err := beginLocked(ctx, r.db, r.lockTimeout)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// GetLedger returns up to limit ledger entries, newest first.
func (r *WalletRepository) GetLedger(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error) {
	if !validID(userID) {
		return nil, domain.ErrUserNotFound
	}
	rows, err := r.db.Query(ctx, `
		SELECT ledger_entry_id::text, user_id::text, kind, amount, status,
		       description, payment_method, created_at
		FROM ledger_entries
		WHERE user_id = $1
		ORDER BY created_at DESC, ledger_entry_id
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, wrap(ErrMsgFailedToGetLedger, err)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LedgerEntry, error) {
		var e domain.LedgerEntry
		err := row.Scan(&e.ID, &e.UserID, &e.Kind, &e.Amount, &e.Status,
			&e.Description, &e.PaymentMethod, &e.CreatedAt)
		return e, err
	})
	if err != nil {
		return nil, wrap(ErrMsgFailedToGetLedger, err)
	}
	return entries, nil
}
