package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/Fukolomka/Sitea/internal/domain"
	"github.com/Fukolomka/Sitea/internal/testing/fakestore"
)

func seedCase(store *fakestore.Store, name string, weights ...float64) domain.Case {
	c := domain.Case{Name: name, Price: decimal.RequireFromString("2.50"), IsActive: true}
	for i, w := range weights {
		item := store.AddItem(domain.Item{
			Name:     name + " item " + string(rune('A'+i)),
			Rarity:   domain.RarityCommon,
			Type:     domain.ItemTypeWeapon,
			Price:    decimal.NewFromInt(int64(i + 1)),
			IsActive: true,
		})
		c.Items = append(c.Items, domain.CaseItem{ItemID: item.ID, Weight: w})
	}
	return store.AddCase(c)
}
