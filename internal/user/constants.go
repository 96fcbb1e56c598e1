package user

import "time"

// CacheSchemaVersion is the current version of the login cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// DefaultCacheSize is the default maximum number of cache entries
const DefaultCacheSize = 1000

// DefaultCacheTTL is the default time-to-live for cache entries
const DefaultCacheTTL = 30 * time.Minute

// Opening history paging
const (
	DefaultOpeningsLimit = 20
	MaxOpeningsLimit     = 100
)

// Log messages
const (
	LogMsgLoginCacheHit   = "Steam login cache hit"
	LogMsgUserCreated     = "User created from Steam login"
	LogMsgProfileUpdated  = "Steam profile refreshed"
	LogMsgCreateRaced     = "User created concurrently, reloading"
	LogMsgFetchingProfile = "Fetching user profile"
)

// Error messages
const (
	ErrMsgGetUserFailed      = "failed to get user"
	ErrMsgCreateUserFailed   = "failed to create user"
	ErrMsgUpdateUserFailed   = "failed to update user profile"
	ErrMsgGetInventoryFailed = "failed to get inventory"
	ErrMsgGetOpeningsFailed  = "failed to get openings"
	ErrMsgGetStatsFailed     = "failed to get stats"
	ErrMsgMissingSteamID     = "steam id is required"
)
