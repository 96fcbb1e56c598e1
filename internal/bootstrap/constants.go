package bootstrap

import "time"

// Log file rotation
const (
	// DirPermission is the permission used for the log directory
	DirPermission = 0o755

	// LogFileName is the active log file inside LOG_DIR; rotated files get a timestamp suffix
	LogFileName = "sitea.log"
)

// Service names used in shutdown logging
const (
	ComponentDatabase = "database"
	ComponentRedis    = "redis"
	ComponentLogFile  = "log_file"
)

// redisPingTimeout bounds the startup connectivity check
const redisPingTimeout = 5 * time.Second

// Log messages
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStarting            = "Starting Sitea"
	LogMsgConfigurationLoaded = "Configuration loaded"

	LogMsgSyncingCatalog  = "Syncing case catalog from JSON config..."
	LogMsgCatalogSynced   = "Case catalog synced"
	LogMsgUsingRedisCache = "Using Redis catalog cache"
	LogMsgUsingMemCache   = "Using in-memory catalog cache"

	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgComponentClosed      = "Component closed"
	LogMsgComponentCloseFailed = "Component close failed"
	LogMsgServerExited         = "Server exited"
)

// Error messages
const (
	ErrMsgCreateLogsDir     = "failed to create logs directory: %w"
	ErrMsgLoadCatalogFailed = "failed to load catalog config: %w"
	ErrMsgSyncCatalogFailed = "failed to sync catalog to database: %w"
	ErrMsgRedisUnreachable  = "redis at %s is unreachable: %w"
)
