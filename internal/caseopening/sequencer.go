package caseopening

import (
	"github.com/Fukolomka/Sitea/internal/domain"
)

// Sequence is the presentational strip shown while a case opens.
// Items[WinningIndex] is always the won item.
type Sequence struct {
	Items        []domain.Item
	WinningIndex int
}

// BuildSequence lays out length items with winner placed near the centre.
// The winning slot is length/2 shifted by a uniform offset in
// [-WinningBand, WinningBand] and clamped into the strip. Every other slot
// is a uniform draw over entries that ignores weights.
func BuildSequence(entries []domain.CaseItem, winner domain.Item, length int, src Source) (Sequence, error) {
	if length <= 0 {
		return Sequence{}, domain.ErrInvalidLength
	}
	if len(entries) == 0 {
		return Sequence{}, domain.ErrNoOpenableEntries
	}

	idx := length/2 + src.IntN(2*WinningBand+1) - WinningBand
	idx = max(0, min(idx, length-1))

	items := make([]domain.Item, length)
	for i := range items {
		if i == idx {
			items[i] = winner
			continue
		}
		items[i] = entries[src.IntN(len(entries))].Item
	}

	return Sequence{Items: items, WinningIndex: idx}, nil
}
