package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Fukolomka/Sitea/internal/domain"
	"github.com/Fukolomka/Sitea/internal/repository"
)

// UserRepository implements repository.User for PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

var _ repository.User = (*UserRepository)(nil)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// GetUserByID returns the user or domain.ErrUserNotFound
func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if !validID(userID) {
		return nil, domain.ErrUserNotFound
	}
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, userID)
}

// GetUserBySteamID returns the user or domain.ErrUserNotFound
func (r *UserRepository) GetUserBySteamID(ctx context.Context, steamID string) (*domain.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE steam_id = $1`, steamID)
}

func (r *UserRepository) getUser(ctx context.Context, query string, arg string) (*domain.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, wrap(ErrMsgFailedToGetUser, err)
	}
	return u, nil
}

// CreateUser inserts a user, filling ID and timestamps. A taken Steam ID
// returns domain.ErrUserExists.
func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	var email *string
	if user.Email != "" {
		email = &user.Email
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (steam_id, username, avatar, email, balance, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING user_id::text, created_at, updated_at
	`, user.SteamID, user.Username, user.Avatar, email, user.Balance, user.Role, user.IsActive,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserExists
		}
		return wrap(ErrMsgFailedToInsertUser, err)
	}
	return nil
}

// UpdateSteamProfile refreshes the display fields pulled from Steam on login
func (r *UserRepository) UpdateSteamProfile(ctx context.Context, userID, username, avatar string) (*domain.User, error) {
	if !validID(userID) {
		return nil, domain.ErrUserNotFound
	}
	u, err := scanUser(r.db.QueryRow(ctx, `
		UPDATE users
		SET username = $2, avatar = $3, updated_at = NOW()
		WHERE user_id = $1
		RETURNING `+userColumns, userID, username, avatar))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, wrap(ErrMsgFailedToUpdateUser, err)
	}
	return u, nil
}

// GetInventory returns the entries still held by the user with their items
func (r *UserRepository) GetInventory(ctx context.Context, userID string) ([]domain.InventoryEntry, error) {
	if !validID(userID) {
		return nil, domain.ErrUserNotFound
	}
	rows, err := r.db.Query(ctx, `
		SELECT e.inventory_entry_id::text, e.user_id::text, e.quantity, e.status,
		       e.created_at, e.updated_at, `+itemColumns+`
		FROM inventory_entries e
		JOIN items i ON i.item_id = e.item_id
		WHERE e.user_id = $1 AND e.status <> 'WITHDRAWN'
		ORDER BY e.updated_at DESC, e.inventory_entry_id
	`, userID)
	if err != nil {
		return nil, wrap(ErrMsgFailedToGetInventory, err)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.InventoryEntry, error) {
		var e domain.InventoryEntry
		item := &domain.Item{}
		dest := append([]any{&e.ID, &e.UserID, &e.Quantity, &e.Status, &e.CreatedAt, &e.UpdatedAt}, itemDest(item)...)
		if err := row.Scan(dest...); err != nil {
			return e, err
		}
		e.ItemID = item.ID
		e.Item = item
		return e, nil
	})
	if err != nil {
		return nil, wrap(ErrMsgFailedToGetInventory, err)
	}
	return entries, nil
}

// GetOpenings returns the user's most recent openings with item and case name
func (r *UserRepository) GetOpenings(ctx context.Context, userID string, limit int) ([]domain.OpeningRecord, error) {
	if !validID(userID) {
		return nil, domain.ErrUserNotFound
	}
	rows, err := r.db.Query(ctx, `
		SELECT o.case_opening_id::text, o.user_id::text, o.case_id::text, o.cost, o.created_at,
		       c.name, `+itemColumns+`
		FROM case_openings o
		JOIN cases c ON c.case_id = o.case_id
		JOIN items i ON i.item_id = o.item_id
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC, o.case_opening_id
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, wrap(ErrMsgFailedToGetOpenings, err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.OpeningRecord, error) {
		var o domain.OpeningRecord
		item := &domain.Item{}
		dest := append([]any{&o.ID, &o.UserID, &o.CaseID, &o.Cost, &o.CreatedAt, &o.CaseName}, itemDest(item)...)
		if err := row.Scan(dest...); err != nil {
			return o, err
		}
		o.ItemID = item.ID
		o.Item = item
		return o, nil
	})
	if err != nil {
		return nil, wrap(ErrMsgFailedToGetOpenings, err)
	}
	return records, nil
}

// GetStats aggregates opening history and held inventory
func (r *UserRepository) GetStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	if !validID(userID) {
		return nil, domain.ErrUserNotFound
	}
	stats := &domain.UserStats{}
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM case_openings WHERE user_id = $1),
			(SELECT COALESCE(SUM(cost), 0) FROM case_openings WHERE user_id = $1),
			(SELECT COALESCE(SUM(quantity), 0) FROM inventory_entries
			 WHERE user_id = $1 AND status <> 'WITHDRAWN')
	`, userID).Scan(&stats.TotalOpenings, &stats.TotalSpent, &stats.TotalItems)
	if err != nil {
		return nil, wrap(ErrMsgFailedToGetStats, err)
	}

	best := &domain.Item{}
	err = r.db.QueryRow(ctx, `
		SELECT `+itemColumns+`
		FROM case_openings o
		JOIN items i ON i.item_id = o.item_id
		WHERE o.user_id = $1
		ORDER BY i.price DESC, o.created_at
		LIMIT 1
	`, userID).Scan(itemDest(best)...)
	switch {
	case err == nil:
		stats.BestItem = best
	case errors.Is(err, pgx.ErrNoRows):
		// no openings yet
	default:
		return nil, wrap(ErrMsgFailedToGetStats, err)
	}
	return stats, nil
}
