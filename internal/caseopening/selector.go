package caseopening

import (
	"fmt"
	"math"

	"github.com/Fukolomka/Sitea/internal/domain"
)

// SelectWinner draws one entry with probability weight/total.
//
// Entries are walked in the given order accumulating weights and the first
// entry whose running sum exceeds the draw wins. If rounding lets the draw
// reach the end of the walk, the last positive-weight entry wins. Exactly one
// Float64 sample is consumed from src.
//
// An empty set, a negative or non-finite weight, or a zero total returns
// domain.ErrNoOpenableEntries.
func SelectWinner(entries []domain.CaseItem, src Source) (domain.CaseItem, error) {
	if len(entries) == 0 {
		return domain.CaseItem{}, domain.ErrNoOpenableEntries
	}

	var total float64
	lastPositive := -1
	for i, e := range entries {
		if e.Weight < 0 || math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
			return domain.CaseItem{}, fmt.Errorf("%w: entry %q has weight %v", domain.ErrNoOpenableEntries, e.ItemID, e.Weight)
		}
		if e.Weight > 0 {
			total += e.Weight
			lastPositive = i
		}
	}
	if lastPositive < 0 || total <= 0 {
		return domain.CaseItem{}, domain.ErrNoOpenableEntries
	}

	r := src.Float64() * total

	var cumulative float64
	for _, e := range entries {
		if e.Weight <= 0 {
			continue
		}
		cumulative += e.Weight
		if r < cumulative {
			return e, nil
		}
	}

	return entries[lastPositive], nil
}
