package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the immutable record of a balance-affecting event. Amount is
// signed: debits are negative.
type LedgerEntry struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Kind          LedgerKind      `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Status        LedgerStatus    `json:"status"`
	Description   string          `json:"description,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// LedgerKind is the kind of balance-affecting event.
type LedgerKind string

const (
	LedgerDeposit     LedgerKind = "DEPOSIT"
	LedgerWithdrawal  LedgerKind = "WITHDRAWAL"
	LedgerCaseOpening LedgerKind = "CASE_OPENING"
	LedgerItemSale    LedgerKind = "ITEM_SALE"
	LedgerRefund      LedgerKind = "REFUND"
)

// Valid reports whether k is a known ledger kind.
func (k LedgerKind) Valid() bool {
	switch k {
	case LedgerDeposit, LedgerWithdrawal, LedgerCaseOpening, LedgerItemSale, LedgerRefund:
		return true
	default:
		return false
	}
}

// IsDebit reports whether entries of this kind take money from the balance.
func (k LedgerKind) IsDebit() bool {
	switch k {
	case LedgerWithdrawal, LedgerCaseOpening:
		return true
	case LedgerDeposit, LedgerItemSale, LedgerRefund:
		return false
	default:
		return false
	}
}

// ParseLedgerKind converts a case-insensitive name into a LedgerKind.
func ParseLedgerKind(s string) (LedgerKind, error) {
	k := LedgerKind(strings.ToUpper(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: ledger kind %q", ErrInvalidInput, s)
	}
	return k, nil
}

// LedgerStatus is the settlement state of a ledger entry.
type LedgerStatus string

const (
	LedgerPending   LedgerStatus = "PENDING"
	LedgerCompleted LedgerStatus = "COMPLETED"
	LedgerFailed    LedgerStatus = "FAILED"
	LedgerCancelled LedgerStatus = "CANCELLED"
)

// Valid reports whether s is a known ledger status.
func (s LedgerStatus) Valid() bool {
	switch s {
	case LedgerPending, LedgerCompleted, LedgerFailed, LedgerCancelled:
		return true
	default:
		return false
	}
}

// ParseLedgerStatus converts a case-insensitive name into a LedgerStatus.
func ParseLedgerStatus(s string) (LedgerStatus, error) {
	st := LedgerStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: ledger status %q", ErrInvalidInput, s)
	}
	return st, nil
}
