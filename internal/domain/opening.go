package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpeningRecord is the immutable audit row of one successful case opening.
type OpeningRecord struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	CaseID    string          `json:"case_id"`
	ItemID    string          `json:"item_id"`
	Cost      decimal.Decimal `json:"cost"`
	CreatedAt time.Time       `json:"created_at"`

	// Populated by history queries only.
	Item     *Item  `json:"item,omitempty"`
	CaseName string `json:"case_name,omitempty"`
}

// OpeningOutcome is what a successful opening returns to the caller. The
// sequence is presentational; WonItem is the committed result and always
// equals Sequence[WinningIndex].
type OpeningOutcome struct {
	WonItem      Item            `json:"item"`
	Sequence     []Item          `json:"animation_items"`
	WinningIndex int             `json:"winning_index"`
	Opening      OpeningRecord   `json:"case_opening"`
	Balance      decimal.Decimal `json:"balance"`
}
