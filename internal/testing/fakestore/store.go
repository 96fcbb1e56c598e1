// Package fakestore is an in-memory implementation of the repository
// interfaces. Transactions take per-user locks the way SELECT ... FOR UPDATE
// does and buffer their writes until Commit.
package fakestore

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Fukolomka/Sitea/internal/concurrency"
	"github.com/Fukolomka/Sitea/internal/domain"
)

// Operation names accepted by FailOn
const (
	OpBeginTx            = "BeginTx"
	OpGetUserForUpdate   = "GetUserForUpdate"
	OpGetCase            = "GetCase"
	OpDebitBalance       = "DebitBalance"
	OpCreditBalance      = "CreditBalance"
	OpInsertOpening      = "InsertOpening"
	OpIncrementInventory = "IncrementInventory"
	OpInsertLedgerEntry  = "InsertLedgerEntry"
	OpCommit             = "Commit"
	OpListActiveCases    = "ListActiveCases"
	OpGetActiveCase      = "GetActiveCase"
	OpUpsertItem         = "UpsertItem"
	OpUpsertCase         = "UpsertCase"
)

// Store holds all state in memory.
type Store struct {
	mu        sync.RWMutex
	users     map[string]*domain.User
	items     map[string]*domain.Item
	cases     map[string]*domain.Case
	caseOrder []string
	inventory []domain.InventoryEntry
	openings  []domain.OpeningRecord
	ledger    []domain.LedgerEntry

	locks *concurrency.LockManager

	failMu   sync.Mutex
	failures map[string]error

	callMu sync.Mutex
	calls  map[string]int
}

// New creates an empty store.
func New() *Store {
	return &Store{
		users:    make(map[string]*domain.User),
		items:    make(map[string]*domain.Item),
		cases:    make(map[string]*domain.Case),
		locks:    concurrency.NewLockManager(),
		failures: make(map[string]error),
		calls:    make(map[string]int),
	}
}

// FailOn makes every later call of op return err. A nil err clears it.
func (s *Store) FailOn(op string, err error) {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// Calls reports how many times op was invoked.
func (s *Store) Calls(op string) int {
	s.callMu.Lock()
	defer s.callMu.Unlock()
	return s.calls[op]
}

func (s *Store) enter(op string) error {
	s.callMu.Lock()
	s.calls[op]++
	s.callMu.Unlock()

	s.failMu.Lock()
	defer s.failMu.Unlock()
	return s.failures[op]
}

// AddUser stores a copy of u, assigning an ID when empty.
func (s *Store) AddUser(u domain.User) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = domain.RoleUser
	}
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	cp := u
	s.users[u.ID] = &cp
	return u
}

// AddItem stores a copy of item, assigning an ID when empty.
func (s *Store) AddItem(item domain.Item) domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putItemLocked(&item)
	return item
}

func (s *Store) putItemLocked(item *domain.Item) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	cp := *item
	s.items[item.ID] = &cp
}

// AddCase stores a copy of c. Entries reference items by ItemID.
func (s *Store) AddCase(c domain.Case) domain.Case {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putCaseLocked(&c)
	return *s.resolveCaseLocked(s.cases[c.ID])
}

func (s *Store) putCaseLocked(c *domain.Case) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	entries := make([]domain.CaseItem, len(c.Items))
	for i, ci := range c.Items {
		if ci.ID == "" {
			ci.ID = uuid.NewString()
		}
		if ci.ItemID == "" {
			ci.ItemID = ci.Item.ID
		}
		ci.CaseID = c.ID
		entries[i] = ci
	}
	cp := *c
	cp.Items = entries

	if _, exists := s.cases[c.ID]; !exists {
		s.caseOrder = append(s.caseOrder, c.ID)
	}
	s.cases[c.ID] = &cp
}

// resolveCaseLocked returns a copy of c with each entry's Item loaded.
func (s *Store) resolveCaseLocked(c *domain.Case) *domain.Case {
	cp := *c
	cp.Items = make([]domain.CaseItem, 0, len(c.Items))
	for _, ci := range c.Items {
		if item, ok := s.items[ci.ItemID]; ok {
			ci.Item = *item
		}
		cp.Items = append(cp.Items, ci)
	}
	return &cp
}

// User returns a snapshot of the committed user row.
func (s *Store) User(id string) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return domain.User{}, false
	}
	return *u, true
}

// Inventory returns committed inventory entries of the user.
func (s *Store) Inventory(userID string) []domain.InventoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.InventoryEntry
	for _, e := range s.inventory {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

// Openings returns committed opening records of the user, oldest first.
func (s *Store) Openings(userID string) []domain.OpeningRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.OpeningRecord
	for _, o := range s.openings {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out
}

// Ledger returns committed ledger entries of the user, oldest first.
func (s *Store) Ledger(userID string) []domain.LedgerEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.LedgerEntry
	for _, e := range s.ledger {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

func userLockKey(userID string) string {
	return "user:" + userID
}
