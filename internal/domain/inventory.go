package domain

import (
	"fmt"
	"strings"
	"time"
)

// InventoryEntry is a stack of one item owned by a user in a given status.
type InventoryEntry struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	ItemID    string          `json:"item_id"`
	Quantity  int             `json:"quantity"`
	Status    InventoryStatus `json:"status"`
	Item      *Item           `json:"item,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// InventoryStatus is the lifecycle state of an inventory entry.
type InventoryStatus string

const (
	InventoryOwned             InventoryStatus = "OWNED"
	InventoryListedForSale     InventoryStatus = "LISTED_FOR_SALE"
	InventoryPendingWithdrawal InventoryStatus = "PENDING_WITHDRAWAL"
	InventoryWithdrawn         InventoryStatus = "WITHDRAWN"
)

// Valid reports whether s is a known inventory status.
func (s InventoryStatus) Valid() bool {
	switch s {
	case InventoryOwned, InventoryListedForSale, InventoryPendingWithdrawal, InventoryWithdrawn:
		return true
	default:
		return false
	}
}

// InInventory reports whether items in this status still count as held by
// the user.
func (s InventoryStatus) InInventory() bool {
	switch s {
	case InventoryOwned, InventoryListedForSale, InventoryPendingWithdrawal:
		return true
	case InventoryWithdrawn:
		return false
	default:
		return false
	}
}

// ParseInventoryStatus converts a case-insensitive name into an InventoryStatus.
func ParseInventoryStatus(s string) (InventoryStatus, error) {
	st := InventoryStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: inventory status %q", ErrInvalidInput, s)
	}
	return st, nil
}
