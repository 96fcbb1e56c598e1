package fakestore

import (
	"context"

	"github.com/Fukolomka/Sitea/internal/domain"
)

func (s *Store) activeCase(caseID string) (*domain.Case, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cases[caseID]
	if !ok || !c.IsActive {
		return nil, domain.ErrCaseNotFound
	}
	return s.resolveCaseLocked(c), nil
}

// ListActiveCases returns active cases, newest first.
func (s *Store) ListActiveCases(ctx context.Context) ([]domain.Case, error) {
	if err := s.enter(OpListActiveCases); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Case, 0, len(s.cases))
	for i := len(s.caseOrder) - 1; i >= 0; i-- {
		c := s.cases[s.caseOrder[i]]
		if c.IsActive {
			out = append(out, *s.resolveCaseLocked(c))
		}
	}
	return out, nil
}

// GetActiveCase returns one active case or domain.ErrCaseNotFound.
func (s *Store) GetActiveCase(ctx context.Context, caseID string) (*domain.Case, error) {
	if err := s.enter(OpGetActiveCase); err != nil {
		return nil, err
	}
	return s.activeCase(caseID)
}

// UpsertItem inserts or replaces an item keyed by name.
func (s *Store) UpsertItem(ctx context.Context, item *domain.Item) error {
	if err := s.enter(OpUpsertItem); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.items {
		if existing.Name == item.Name {
			item.ID = id
			item.CreatedAt = existing.CreatedAt
		}
	}
	s.putItemLocked(item)
	return nil
}

// UpsertCase inserts or replaces a case keyed by name, replacing its entries.
func (s *Store) UpsertCase(ctx context.Context, c *domain.Case) error {
	if err := s.enter(OpUpsertCase); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.cases {
		if existing.Name == c.Name {
			c.ID = id
			c.CreatedAt = existing.CreatedAt
		}
	}
	for _, ci := range c.Items {
		id := ci.ItemID
		if id == "" {
			id = ci.Item.ID
		}
		if _, ok := s.items[id]; !ok {
			return domain.ErrItemNotFound
		}
	}
	s.putCaseLocked(c)
	return nil
}
