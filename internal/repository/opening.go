package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Fukolomka/Sitea/internal/domain"
)

// Opening defines persistence for the case-opening unit of work
type Opening interface {
	BeginTx(ctx context.Context) (OpeningTx, error)
}

// OpeningTx is a single atomic opening. Implementations must hold the user's
// row lock from GetUserForUpdate until Commit or Rollback.
type OpeningTx interface {
	Tx
	// GetUserForUpdate locks and returns the user row, or domain.ErrUserNotFound.
	GetUserForUpdate(ctx context.Context, userID string) (*domain.User, error)
	// GetCase returns the active case with its entries in catalog order, or
	// domain.ErrCaseNotFound.
	GetCase(ctx context.Context, caseID string) (*domain.Case, error)
	// DebitBalance subtracts amount and returns the new balance. It fails
	// with domain.ErrInsufficientBalance instead of going negative.
	DebitBalance(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error)
	// InsertOpening appends the record, filling ID and CreatedAt.
	InsertOpening(ctx context.Context, rec *domain.OpeningRecord) error
	// IncrementInventory adds one to the user's OWNED stack of the item,
	// creating it with quantity 1 when absent.
	IncrementInventory(ctx context.Context, userID, itemID string) (*domain.InventoryEntry, error)
	// InsertLedgerEntry appends the entry, filling ID and CreatedAt.
	InsertLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) error
}
