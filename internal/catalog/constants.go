package catalog

import "time"

// Cache settings
const (
	// CacheSchemaVersion is bumped when the cached case layout changes so that
	// entries written by older builds are ignored.
	CacheSchemaVersion = "1"

	DefaultCacheSize = 256
	DefaultCacheTTL  = 5 * time.Minute

	RedisKeyPrefix  = "sitea:catalog:"
	redisKeyCases   = "cases"
	redisKeyCase    = "case:"
	redisScanCount  = 100
	flightKeyCases  = "cases"
	flightKeyCaseID = "case:"
)

// Catalog file settings
const (
	ConfigFileName   = "catalog.json"
	SchemaPath       = "configs/schemas/catalog.schema.json"
	SupportedVersion = "1.0"
)

// Log messages
const (
	LogMsgCacheReadFailed   = "Catalog cache read failed"
	LogMsgCacheWriteFailed  = "Catalog cache write failed"
	LogMsgCacheInvalidated  = "Catalog cache invalidated"
	LogMsgSyncCompleted     = "Catalog sync completed"
	LogMsgUpsertedItem      = "Upserted item"
	LogMsgUpsertedCase      = "Upserted case"
	LogMsgListingCases      = "Listing active cases"
	LogMsgFetchingCase      = "Fetching case"
	LogMsgInvalidatingCache = "Invalidating catalog cache"
)

// Error messages
const (
	ErrMsgReadConfigFileFailed = "failed to read catalog file: %w"
	ErrMsgParseConfigFailed    = "failed to parse catalog: %w"
	ErrMsgListCasesFailed      = "failed to list cases"
	ErrMsgGetCaseFailed        = "failed to get case"
	ErrMsgUpsertItemFailed     = "failed to upsert item '%s': %w"
	ErrMsgUpsertCaseFailed     = "failed to upsert case '%s': %w"
	ErrMsgEncodeCacheFailed    = "failed to encode cache entry: %w"
	ErrMsgDecodeCacheFailed    = "failed to decode cache entry: %w"
	ErrMsgInvalidateFailed     = "failed to invalidate catalog cache: %w"

	ErrMsgConfigNil         = "config is nil"
	ErrMsgNoItemsDefined    = "no items defined"
	ErrMsgNoCasesDefined    = "no cases defined"
	ErrFmtUnsupportedVer    = "%w: unsupported version %q"
	ErrFmtItemAtIndexEmpty  = "%w: item at index %d has empty name"
	ErrFmtCaseAtIndexEmpty  = "%w: case at index %d has empty name"
	ErrFmtDuplicateName     = "%w: %s '%s'"
	ErrFmtBadPrice          = "%w: %s '%s' has invalid price %q"
	ErrFmtBadRarity         = "%w: item '%s': %v"
	ErrFmtBadType           = "%w: item '%s': %v"
	ErrFmtCaseNoEntries     = "%w: case '%s' has no entries"
	ErrFmtCaseUnknownItem   = "%w: case '%s' references unknown item '%s'"
	ErrFmtCaseNegWeight     = "%w: case '%s' entry '%s' has negative weight"
	ErrFmtCaseNoPositive    = "%w: case '%s' has no entry with positive weight"
	ErrFmtCaseDuplicateItem = "%w: case '%s' lists item '%s' twice"
)
