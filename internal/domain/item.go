package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Item is an immutable catalog entry. Only catalog administration creates or
// updates items; the opening engine reads them.
type Item struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image"`
	Rarity      Rarity          `json:"rarity"`
	Type        ItemType        `json:"type"`
	Price       decimal.Decimal `json:"price"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// MarshalJSON adds the rarity colour class used by the storefront.
func (i Item) MarshalJSON() ([]byte, error) {
	type plain Item
	return json.Marshal(struct {
		plain
		RarityColor string `json:"rarity_color"`
	}{plain: plain(i), RarityColor: i.Rarity.Color()})
}

// Rarity is the ordered display tier of an item. It styles the item and has
// no influence on selection probability.
type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityUncommon  Rarity = "UNCOMMON"
	RarityRare      Rarity = "RARE"
	RarityEpic      Rarity = "EPIC"
	RarityLegendary Rarity = "LEGENDARY"
	RarityMythical  Rarity = "MYTHICAL"
)

// Rank returns the position of the rarity in the tier order, starting at 1
// for COMMON. Unknown values rank 0.
func (r Rarity) Rank() int {
	switch r {
	case RarityCommon:
		return 1
	case RarityUncommon:
		return 2
	case RarityRare:
		return 3
	case RarityEpic:
		return 4
	case RarityLegendary:
		return 5
	case RarityMythical:
		return 6
	default:
		return 0
	}
}

// Valid reports whether r is one of the known tiers.
func (r Rarity) Valid() bool {
	return r.Rank() > 0
}

// Less reports whether r is a lower tier than other.
func (r Rarity) Less(other Rarity) bool {
	return r.Rank() < other.Rank()
}

// Color returns the storefront colour class for the tier.
func (r Rarity) Color() string {
	switch r {
	case RarityCommon:
		return RarityColorCommon
	case RarityUncommon:
		return RarityColorUncommon
	case RarityRare:
		return RarityColorRare
	case RarityEpic:
		return RarityColorEpic
	case RarityLegendary:
		return RarityColorLegendary
	case RarityMythical:
		return RarityColorMythical
	default:
		return RarityColorCommon
	}
}

// ParseRarity converts a case-insensitive name into a Rarity.
func ParseRarity(s string) (Rarity, error) {
	r := Rarity(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: rarity %q", ErrInvalidInput, s)
	}
	return r, nil
}

// ItemType classifies what an item is.
type ItemType string

const (
	ItemTypeWeapon  ItemType = "WEAPON"
	ItemTypeKnife   ItemType = "KNIFE"
	ItemTypeGloves  ItemType = "GLOVES"
	ItemTypeSticker ItemType = "STICKER"
	ItemTypeCase    ItemType = "CASE"
	ItemTypeKey     ItemType = "KEY"
)

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeWeapon, ItemTypeKnife, ItemTypeGloves, ItemTypeSticker, ItemTypeCase, ItemTypeKey:
		return true
	default:
		return false
	}
}

// ParseItemType converts a case-insensitive name into an ItemType.
func ParseItemType(s string) (ItemType, error) {
	t := ItemType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%w: item type %q", ErrInvalidInput, s)
	}
	return t, nil
}
