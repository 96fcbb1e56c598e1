package fakestore

import (
	"context"
	"sort"

	"github.com/Fukolomka/Sitea/internal/domain"
	"github.com/Fukolomka/Sitea/internal/repository"
)

// Wallet returns the wallet repository view of the store.
func (s *Store) Wallet() repository.Wallet {
	return walletRepo{s}
}

type walletRepo struct{ s *Store }

func (r walletRepo) BeginTx(ctx context.Context) (repository.WalletTx, error) {
	t, err := r.s.begin(ctx)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetLedger returns up to limit ledger entries, newest first.
func (r walletRepo) GetLedger(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error) {
	entries := r.s.Ledger(userID)
	// reverse insertion order, then stabilise on timestamps
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	sortLedgerNewestFirst(entries)
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// sortLedgerNewestFirst orders entries by creation time, newest first.
func sortLedgerNewestFirst(entries []domain.LedgerEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
}
