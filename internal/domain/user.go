package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// User represents a registered storefront user
type User struct {
	ID        string          `json:"id"`
	SteamID   string          `json:"steam_id"`
	Username  string          `json:"username"`
	Avatar    string          `json:"avatar,omitempty"`
	Email     string          `json:"email,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	Role      Role            `json:"role"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CanAfford reports whether the user's balance covers price.
func (u *User) CanAfford(price decimal.Decimal) bool {
	return u.Balance.GreaterThanOrEqual(price)
}

// Role is the authorization role of a user.
type Role string

const (
	RoleUser      Role = "USER"
	RoleAdmin     Role = "ADMIN"
	RoleModerator Role = "MODERATOR"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleModerator:
		return true
	default:
		return false
	}
}

// IsAdmin reports whether the role grants admin access.
func (r Role) IsAdmin() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleUser, RoleModerator:
		return false
	default:
		return false
	}
}

// IsModerator reports whether the role grants moderator access. Admins are
// moderators too.
func (r Role) IsModerator() bool {
	switch r {
	case RoleAdmin, RoleModerator:
		return true
	case RoleUser:
		return false
	default:
		return false
	}
}

// ParseRole converts a case-insensitive name into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: role %q", ErrInvalidInput, s)
	}
	return r, nil
}

// SteamProfile is the subset of the Steam player summary used on login.
type SteamProfile struct {
	SteamID     string `json:"steamid"`
	PersonaName string `json:"personaname"`
	ProfileURL  string `json:"profileurl"`
	Avatar      string `json:"avatar"`
	AvatarFull  string `json:"avatarfull"`
}

// UserStats summarises a user's opening history.
type UserStats struct {
	TotalOpenings int             `json:"total_openings"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
	BestItem      *Item           `json:"best_item"`
	TotalItems    int             `json:"total_items"`
}
