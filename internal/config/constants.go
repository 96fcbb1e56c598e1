package config

// Configuration file paths
const (
	ConfigPathCatalog       = "configs/catalog.json"
	ConfigPathCatalogSchema = "configs/schemas/catalog.schema.json"
)

// Environment names
const (
	EnvironmentDev        = "dev"
	EnvironmentStaging    = "staging"
	EnvironmentProduction = "production"
	EnvironmentProd       = "prod"
)

// Cache backends
const (
	CacheTypeMemory = "memory"
	CacheTypeRedis  = "redis"
)

// Auth
const (
	// DevJWTSecret signs tokens outside production when JWT_SECRET is unset
	DevJWTSecret       = "dev-only-insecure-secret-change-me"
	MinJWTSecretLength = 32
)

// Error messages
const (
	ErrMsgFailedToLoadConfig    = "failed to load config"
	ErrMsgInvalidPort           = "invalid PORT value"
	ErrMsgMissingJWTSecret      = "JWT_SECRET environment variable must be set in production"
	ErrMsgWeakJWTSecret         = "JWT_SECRET is too short"
	ErrMsgUnknownCacheType      = "unknown CACHE_TYPE"
	ErrMsgInvalidSequenceLength = "CASE_SEQUENCE_LENGTH must be positive"
	ErrMsgInvalidTimeout        = "invalid timeout configuration"
)
