package caseopening

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Fukolomka/Sitea/internal/domain"
)

// stubSource replays fixed values, cycling when exhausted.
type stubSource struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (s *stubSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[s.fi%len(s.floats)]
	s.fi++
	return v
}

func (s *stubSource) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[s.ii%len(s.ints)]
	s.ii++
	return v % n
}

func entry(id string, weight float64) domain.CaseItem {
	return domain.CaseItem{
		ID:     "ci-" + id,
		ItemID: id,
		Weight: weight,
		Item: domain.Item{
			ID:       id,
			Name:     "Item " + id,
			Rarity:   domain.RarityCommon,
			Type:     domain.ItemTypeWeapon,
			Price:    decimal.NewFromInt(1),
			IsActive: true,
		},
	}
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, money(want).Equal(got), "expected %s, got %s", want, got)
}
