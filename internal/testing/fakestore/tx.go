package fakestore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Fukolomka/Sitea/internal/domain"
	"github.com/Fukolomka/Sitea/internal/repository"
)

var (
	_ repository.Catalog   = (*Store)(nil)
	_ repository.User      = (*Store)(nil)
	_ repository.OpeningTx = (*tx)(nil)
	_ repository.WalletTx  = (*tx)(nil)
)

// Opening returns the opening repository view of the store.
func (s *Store) Opening() repository.Opening {
	return openingRepo{s}
}

type openingRepo struct{ s *Store }

func (r openingRepo) BeginTx(ctx context.Context) (repository.OpeningTx, error) {
	t, err := r.s.begin(ctx)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Store) begin(ctx context.Context) (*tx, error) {
	if err := s.enter(OpBeginTx); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransientStoreFailure, err)
	}
	return &tx{
		store:    s,
		releases: make(map[string]func()),
		balances: make(map[string]decimal.Decimal),
	}, nil
}

type inventoryDelta struct {
	userID string
	itemID string
}

// tx serves both the opening and wallet units of work.
type tx struct {
	mu       sync.Mutex
	store    *Store
	releases map[string]func()
	balances map[string]decimal.Decimal
	openings []domain.OpeningRecord
	credits  []inventoryDelta
	ledger   []domain.LedgerEntry
	done     bool
}

var errTxClosed = errors.New(domain.ErrMsgTxClosed)

func (t *tx) GetUserForUpdate(ctx context.Context, userID string) (*domain.User, error) {
	if err := t.store.enter(OpGetUserForUpdate); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return nil, errTxClosed
	}

	key := userLockKey(userID)
	if _, held := t.releases[key]; !held {
		release, err := t.store.locks.Lock(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrTransientStoreFailure, err)
		}
		t.releases[key] = release
	}

	u, ok := t.store.User(userID)
	if !ok {
		t.releases[key]()
		delete(t.releases, key)
		return nil, domain.ErrUserNotFound
	}
	if b, staged := t.balances[userID]; staged {
		u.Balance = b
	}
	return &u, nil
}

func (t *tx) GetCase(ctx context.Context, caseID string) (*domain.Case, error) {
	if err := t.store.enter(OpGetCase); err != nil {
		return nil, err
	}
	return t.store.activeCase(caseID)
}

func (t *tx) balanceLocked(userID string) (decimal.Decimal, error) {
	if _, held := t.releases[userLockKey(userID)]; !held {
		return decimal.Zero, fmt.Errorf("user %s is not locked in this transaction", userID)
	}
	if b, ok := t.balances[userID]; ok {
		return b, nil
	}
	u, ok := t.store.User(userID)
	if !ok {
		return decimal.Zero, domain.ErrUserNotFound
	}
	return u.Balance, nil
}

func (t *tx) DebitBalance(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := t.store.enter(OpDebitBalance); err != nil {
		return decimal.Zero, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return decimal.Zero, errTxClosed
	}
	balance, err := t.balanceLocked(userID)
	if err != nil {
		return decimal.Zero, err
	}
	if balance.LessThan(amount) {
		return decimal.Zero, domain.ErrInsufficientBalance
	}
	t.balances[userID] = balance.Sub(amount)
	return t.balances[userID], nil
}

func (t *tx) CreditBalance(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := t.store.enter(OpCreditBalance); err != nil {
		return decimal.Zero, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return decimal.Zero, errTxClosed
	}
	balance, err := t.balanceLocked(userID)
	if err != nil {
		return decimal.Zero, err
	}
	t.balances[userID] = balance.Add(amount)
	return t.balances[userID], nil
}

func (t *tx) InsertOpening(ctx context.Context, rec *domain.OpeningRecord) error {
	if err := t.store.enter(OpInsertOpening); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return errTxClosed
	}
	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now()
	t.openings = append(t.openings, *rec)
	return nil
}

func (t *tx) IncrementInventory(ctx context.Context, userID, itemID string) (*domain.InventoryEntry, error) {
	if err := t.store.enter(OpIncrementInventory); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return nil, errTxClosed
	}
	t.credits = append(t.credits, inventoryDelta{userID: userID, itemID: itemID})

	qty := 0
	for _, e := range t.store.Inventory(userID) {
		if e.ItemID == itemID && e.Status == domain.InventoryOwned {
			qty = e.Quantity
		}
	}
	for _, c := range t.credits {
		if c.userID == userID && c.itemID == itemID {
			qty++
		}
	}
	return &domain.InventoryEntry{
		UserID:   userID,
		ItemID:   itemID,
		Quantity: qty,
		Status:   domain.InventoryOwned,
	}, nil
}

func (t *tx) InsertLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	if err := t.store.enter(OpInsertLedgerEntry); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return errTxClosed
	}
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now()
	t.ledger = append(t.ledger, *entry)
	return nil
}

func (t *tx) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return errTxClosed
	}
	defer t.finishLocked()

	if err := t.store.enter(OpCommit); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrTransientStoreFailure, err)
	}

	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for userID, balance := range t.balances {
		if u, ok := s.users[userID]; ok {
			u.Balance = balance
			u.UpdatedAt = now
		}
	}
	s.openings = append(s.openings, t.openings...)
	for _, c := range t.credits {
		s.creditLocked(c.userID, c.itemID, now)
	}
	s.ledger = append(s.ledger, t.ledger...)
	return nil
}

func (t *tx) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return errTxClosed
	}
	t.finishLocked()
	return nil
}

func (t *tx) finishLocked() {
	for _, release := range t.releases {
		release()
	}
	t.releases = nil
	t.done = true
}

func (s *Store) creditLocked(userID, itemID string, now time.Time) {
	for i := range s.inventory {
		e := &s.inventory[i]
		if e.UserID == userID && e.ItemID == itemID && e.Status == domain.InventoryOwned {
			e.Quantity++
			e.UpdatedAt = now
			return
		}
	}
	s.inventory = append(s.inventory, domain.InventoryEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		ItemID:    itemID,
		Quantity:  1,
		Status:    domain.InventoryOwned,
		CreatedAt: now,
		UpdatedAt: now,
	})
}
