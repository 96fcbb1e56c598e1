package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Fukolomka/Sitea/internal/domain"
	"github.com/Fukolomka/Sitea/internal/logger"
	"github.com/Fukolomka/Sitea/internal/repository"
)

// Service defines the interface for user operations
type Service interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	// LoginWithSteam finds the user owning the Steam ID or creates one,
	// refreshing username and avatar from the profile either way.
	LoginWithSteam(ctx context.Context, profile domain.SteamProfile) (*domain.User, error)

	GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error)
	GetOpenings(ctx context.Context, userID string, limit int) ([]domain.OpeningRecord, error)
	GetStats(ctx context.Context, userID string) (*domain.UserStats, error)
}

// Config tunes the user service
type Config struct {
	// AdminSteamIDs get the ADMIN role when their account is first created
	AdminSteamIDs []string
	CacheSize     int
	CacheTTL      time.Duration
}

type service struct {
	repo   repository.User
	admins map[string]bool
	logins *loginCache
}

// NewService creates a new user service
func NewService(repo repository.User, config Config) Service {
	admins := make(map[string]bool, len(config.AdminSteamIDs))
	for _, id := range config.AdminSteamIDs {
		admins[id] = true
	}
	return &service{
		repo:   repo,
		admins: admins,
		logins: newLoginCache(config.CacheSize, config.CacheTTL),
	}
}

// GetProfile returns an active user. Deactivated users read as not found.
func (s *service) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	logger.FromContext(ctx).Debug(LogMsgFetchingProfile, "user_id", userID)
	u, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgGetUserFailed, err)
	}
	if !u.IsActive {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *service) LoginWithSteam(ctx context.Context, profile domain.SteamProfile) (*domain.User, error) {
	log := logger.FromContext(ctx)
	if profile.SteamID == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgMissingSteamID)
	}

	if userID, ok := s.logins.Get(profile.SteamID); ok {
		log.Debug(LogMsgLoginCacheHit, "steam_id", profile.SteamID)
		u, err := s.refresh(ctx, userID, profile)
		if !errors.Is(err, domain.ErrUserNotFound) {
			return u, err
		}
		s.logins.Invalidate(profile.SteamID)
	}

	existing, err := s.repo.GetUserBySteamID(ctx, profile.SteamID)
	switch {
	case err == nil:
		s.logins.Set(profile.SteamID, existing.ID)
		return s.refresh(ctx, existing.ID, profile)
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("%s: %w", ErrMsgGetUserFailed, err)
	}

	created, err := s.create(ctx, profile)
	if errors.Is(err, domain.ErrUserExists) {
		// Two first logins raced; the other one created the row.
		log.Info(LogMsgCreateRaced, "steam_id", profile.SteamID)
		existing, err := s.repo.GetUserBySteamID(ctx, profile.SteamID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgGetUserFailed, err)
		}
		s.logins.Set(profile.SteamID, existing.ID)
		return s.refresh(ctx, existing.ID, profile)
	}
	if err != nil {
		return nil, err
	}
	s.logins.Set(profile.SteamID, created.ID)
	return created, nil
}

func (s *service) create(ctx context.Context, profile domain.SteamProfile) (*domain.User, error) {
	role := domain.RoleUser
	if s.admins[profile.SteamID] {
		role = domain.RoleAdmin
	}
	u := &domain.User{
		SteamID:  profile.SteamID,
		Username: profile.PersonaName,
		Avatar:   profile.AvatarFull,
		Role:     role,
		IsActive: true,
	}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgCreateUserFailed, err)
	}
	logger.FromContext(ctx).Info(LogMsgUserCreated, "user_id", u.ID, "steam_id", u.SteamID, "role", u.Role)
	return u, nil
}

func (s *service) refresh(ctx context.Context, userID string, profile domain.SteamProfile) (*domain.User, error) {
	u, err := s.repo.UpdateSteamProfile(ctx, userID, profile.PersonaName, profile.AvatarFull)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgUpdateUserFailed, err)
	}
	logger.FromContext(ctx).Debug(LogMsgProfileUpdated, "user_id", u.ID)
	return u, nil
}

func (s *service) GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	if _, err := s.GetProfile(ctx, userID); err != nil {
		return nil, err
	}
	entries, err := s.repo.GetInventory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetInventoryFailed, err)
	}
	if entries == nil {
		entries = []domain.InventoryEntry{}
	}
	return entries, nil
}

// GetOpenings returns the most recent openings, newest first. A limit
// outside 1..MaxOpeningsLimit falls back to the default or the cap.
func (s *service) GetOpenings(ctx context.Context, userID string, limit int) ([]domain.OpeningRecord, error) {
	if _, err := s.GetProfile(ctx, userID); err != nil {
		return nil, err
	}
	openings, err := s.repo.GetOpenings(ctx, userID, ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetOpeningsFailed, err)
	}
	if openings == nil {
		openings = []domain.OpeningRecord{}
	}
	return openings, nil
}

func (s *service) GetStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	if _, err := s.GetProfile(ctx, userID); err != nil {
		return nil, err
	}
	stats, err := s.repo.GetStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgGetStatsFailed, err)
	}
	return stats, nil
}

// ClampLimit normalises a history page size.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultOpeningsLimit
	case limit > MaxOpeningsLimit:
		return MaxOpeningsLimit
	default:
		return limit
	}
}
