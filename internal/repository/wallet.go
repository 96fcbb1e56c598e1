package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Fukolomka/Sitea/internal/domain"
)

// Wallet defines the interface for balance top-ups and ledger history
type Wallet interface {
	BeginTx(ctx context.Context) (WalletTx, error)
	GetLedger(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error)
}

// WalletTx defines the interface for wallet transactions
type WalletTx interface {
	Tx
	GetUserForUpdate(ctx context.Context, userID string) (*domain.User, error)
	CreditBalance(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error)
	InsertLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) error
}
