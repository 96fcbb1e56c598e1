package repository

import (
	"context"

	"github.com/Fukolomka/Sitea/internal/domain"
)

// User defines the interface for user persistence
type User interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserBySteamID(ctx context.Context, steamID string) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) error
	UpdateSteamProfile(ctx context.Context, userID, username, avatar string) (*domain.User, error)

	GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error)
	GetOpenings(ctx context.Context, userID string, limit int) ([]domain.OpeningRecord, error)
	GetStats(ctx context.Context, userID string) (*domain.UserStats, error)
}
