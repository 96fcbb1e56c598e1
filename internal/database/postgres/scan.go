package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Fukolomka/Sitea/internal/domain"
)

// querier is satisfied by *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// validID reports whether id can be compared against a UUID column.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}

const userColumns = `
	user_id::text, steam_id, username, avatar, COALESCE(email, ''),
	balance, role, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.SteamID, &u.Username, &u.Avatar, &u.Email,
		&u.Balance, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// itemColumns expects the items table aliased as i
const itemColumns = `
	i.item_id::text, i.name, i.description, i.image, i.rarity, i.item_type,
	i.price, i.is_active, i.created_at, i.updated_at`

func itemDest(i *domain.Item) []any {
	return []any{&i.ID, &i.Name, &i.Description, &i.Image, &i.Rarity, &i.Type,
		&i.Price, &i.IsActive, &i.CreatedAt, &i.UpdatedAt}
}

const caseColumns = `
	case_id::text, name, description, image, price, is_active, created_at, updated_at`

func scanCase(row pgx.Row) (*domain.Case, error) {
	var c domain.Case
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Image, &c.Price,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
