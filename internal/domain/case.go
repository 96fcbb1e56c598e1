package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Case is a purchasable bundle with a weighted set of possible items.
type Case struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price"`
	IsActive    bool            `json:"is_active"`
	Items       []CaseItem      `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CaseItem binds an item to a case with a drop weight. Weights are relative:
// the probability of an entry is its weight divided by the sum over the case.
type CaseItem struct {
	ID     string  `json:"id"`
	CaseID string  `json:"case_id"`
	ItemID string  `json:"item_id"`
	Weight float64 `json:"drop_rate"`
	Item   Item    `json:"item"`
}

// OpenableItems returns the entries that can take part in a draw: active
// items with a positive weight, in catalog order.
func (c *Case) OpenableItems() []CaseItem {
	entries := make([]CaseItem, 0, len(c.Items))
	for _, ci := range c.Items {
		if ci.Weight > 0 && ci.Item.IsActive {
			entries = append(entries, ci)
		}
	}
	return entries
}

// TotalWeight sums the weights of the given entries.
func TotalWeight(entries []CaseItem) float64 {
	var total float64
	for _, e := range entries {
		total += e.Weight
	}
	return total
}

// IsOpenable reports whether the case can be opened: it must be active, have
// a non-negative price and at least one positive-weight active entry.
func (c *Case) IsOpenable() bool {
	if c == nil || !c.IsActive || c.Price.IsNegative() {
		return false
	}
	return TotalWeight(c.OpenableItems()) > 0
}

// DropChance returns the probability of the entry within the case, in [0,1].
func (c *Case) DropChance(entry CaseItem) float64 {
	total := TotalWeight(c.OpenableItems())
	if total <= 0 || entry.Weight <= 0 || !entry.Item.IsActive {
		return 0
	}
	return entry.Weight / total
}
