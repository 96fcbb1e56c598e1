package fakestore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Fukolomka/Sitea/internal/domain"
)

// GetUserByID returns the committed user or domain.ErrUserNotFound.
func (s *Store) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	u, ok := s.User(userID)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

// GetUserBySteamID returns the user with the Steam ID or domain.ErrUserNotFound.
func (s *Store) GetUserBySteamID(ctx context.Context, steamID string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.SteamID == steamID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// CreateUser stores a new user, filling ID and timestamps.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.SteamID == user.SteamID {
			return domain.ErrUserExists
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

// UpdateSteamProfile refreshes username and avatar.
func (s *Store) UpdateSteamProfile(ctx context.Context, userID, username, avatar string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Username = username
	u.Avatar = avatar
	u.UpdatedAt = time.Now()
	cp := *u
	return &cp, nil
}

// GetInventory returns entries that still count as held, with items.
func (s *Store) GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.InventoryEntry
	for _, e := range s.inventory {
		if e.UserID != userID || !e.Status.InInventory() {
			continue
		}
		if item, ok := s.items[e.ItemID]; ok {
			cp := *item
			e.Item = &cp
		}
		out = append(out, e)
	}
	return out, nil
}

// GetOpenings returns up to limit openings, newest first.
func (s *Store) GetOpenings(ctx context.Context, userID string, limit int) ([]domain.OpeningRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.OpeningRecord
	for i := len(s.openings) - 1; i >= 0 && len(out) < limit; i-- {
		o := s.openings[i]
		if o.UserID != userID {
			continue
		}
		if item, ok := s.items[o.ItemID]; ok {
			cp := *item
			o.Item = &cp
		}
		if c, ok := s.cases[o.CaseID]; ok {
			o.CaseName = c.Name
		}
		out = append(out, o)
	}
	return out, nil
}

// GetStats aggregates the user's openings and inventory.
func (s *Store) GetStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &domain.UserStats{TotalSpent: decimal.Zero}
	for _, o := range s.openings {
		if o.UserID != userID {
			continue
		}
		stats.TotalOpenings++
		stats.TotalSpent = stats.TotalSpent.Add(o.Cost)
		if item, ok := s.items[o.ItemID]; ok {
			if stats.BestItem == nil || item.Price.GreaterThan(stats.BestItem.Price) {
				cp := *item
				stats.BestItem = &cp
			}
		}
	}
	for _, e := range s.inventory {
		if e.UserID == userID && e.Status.InInventory() {
			stats.TotalItems += e.Quantity
		}
	}
	return stats, nil
}
