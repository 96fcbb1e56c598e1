package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration
type Config struct {
	Server   ServerConfig
	App      AppConfig
	Log      LogConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Cache    CacheConfig
	Opening  OpeningConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
	MaxBodyBytes    int64         `envconfig:"SERVER_MAX_BODY_BYTES" default:"1048576"`
	CORSOrigins     []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	PublicURL       string        `envconfig:"PUBLIC_URL" default:"http://localhost:3000"`
	TrustedProxies  []string      `envconfig:"TRUSTED_PROXIES"`
}

// AppConfig holds application-level settings
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"sitea"`
	Environment string `envconfig:"ENVIRONMENT" default:"dev"`
	Version     string `envconfig:"APP_VERSION" default:"dev"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level     string `envconfig:"LOG_LEVEL" default:"info"`
	Format    string `envconfig:"LOG_FORMAT" default:"text"`
	Dir       string `envconfig:"LOG_DIR" default:"logs"`
	MaxSizeMB int    `envconfig:"LOG_MAX_SIZE_MB" default:"50"`
	MaxFiles  int    `envconfig:"LOG_MAX_FILES" default:"10"`
	MaxAgeDay int    `envconfig:"LOG_MAX_AGE_DAYS" default:"14"`
}

// DatabaseConfig holds PostgreSQL settings
type DatabaseConfig struct {
	User        string        `envconfig:"DB_USER" default:"postgres"`
	Password    string        `envconfig:"DB_PASSWORD" default:"postgres"`
	Host        string        `envconfig:"DB_HOST" default:"localhost"`
	Port        int           `envconfig:"DB_PORT" default:"5432"`
	Name        string        `envconfig:"DB_NAME" default:"sitea"`
	SSLMode     string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int           `envconfig:"DB_MAX_CONNS" default:"20"`
	MaxIdleTime time.Duration `envconfig:"DB_MAX_IDLE_TIME" default:"5m"`
	MaxLifetime time.Duration `envconfig:"DB_MAX_LIFETIME" default:"1h"`
	LockTimeout time.Duration `envconfig:"DB_LOCK_TIMEOUT" default:"3s"`
	AutoMigrate bool          `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

// AuthConfig holds session and Steam login settings
type AuthConfig struct {
	JWTSecret     string        `envconfig:"JWT_SECRET"`
	TokenTTL      time.Duration `envconfig:"JWT_TTL" default:"168h"`
	CookieSecure  bool          `envconfig:"COOKIE_SECURE" default:"false"`
	SteamAPIKey   string        `envconfig:"STEAM_API_KEY"`
	SteamRealm    string        `envconfig:"STEAM_REALM" default:"http://localhost:8080"`
	SteamReturnTo string        `envconfig:"STEAM_RETURN_URL" default:"http://localhost:8080/api/v1/auth/steam/return"`
	AdminSteamIDs []string      `envconfig:"ADMIN_STEAM_IDS"`
}

// CacheConfig holds catalog cache settings
type CacheConfig struct {
	Type          string        `envconfig:"CACHE_TYPE" default:"memory"`
	TTL           time.Duration `envconfig:"CACHE_TTL" default:"5m"`
	Size          int           `envconfig:"CACHE_SIZE" default:"256"`
	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
}

// OpeningConfig tunes the case opening engine
type OpeningConfig struct {
	Timeout        time.Duration `envconfig:"CASE_OPEN_TIMEOUT" default:"5s"`
	SequenceLength int           `envconfig:"CASE_SEQUENCE_LENGTH" default:"50"`
	RatePerSecond  float64       `envconfig:"CASE_OPEN_RATE" default:"5"`
	RateBurst      int           `envconfig:"CASE_OPEN_BURST" default:"10"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadConfig, err)
	}

	cfg.App.Environment = strings.ToLower(cfg.App.Environment)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)
	cfg.Cache.Type = strings.ToLower(cfg.Cache.Type)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the service cannot run with
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%s: %d", ErrMsgInvalidPort, c.Server.Port)
	}
	if c.Auth.JWTSecret == "" {
		if c.IsProduction() {
			return fmt.Errorf("%s", ErrMsgMissingJWTSecret)
		}
		c.Auth.JWTSecret = DevJWTSecret
	}
	if len(c.Auth.JWTSecret) < MinJWTSecretLength && c.IsProduction() {
		return fmt.Errorf("%s: need at least %d bytes", ErrMsgWeakJWTSecret, MinJWTSecretLength)
	}
	switch c.Cache.Type {
	case CacheTypeMemory, CacheTypeRedis:
	default:
		return fmt.Errorf("%s: %q", ErrMsgUnknownCacheType, c.Cache.Type)
	}
	if c.Opening.SequenceLength <= 0 {
		return fmt.Errorf("%s: %d", ErrMsgInvalidSequenceLength, c.Opening.SequenceLength)
	}
	if c.Opening.Timeout <= 0 || c.Database.LockTimeout <= 0 {
		return fmt.Errorf("%s", ErrMsgInvalidTimeout)
	}
	if c.Database.LockTimeout >= c.Opening.Timeout {
		return fmt.Errorf("%s: DB_LOCK_TIMEOUT %s must be below CASE_OPEN_TIMEOUT %s",
			ErrMsgInvalidTimeout, c.Database.LockTimeout, c.Opening.Timeout)
	}
	return nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == EnvironmentProduction || c.App.Environment == EnvironmentProd
}

// Address returns the listen address in host:port format
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port),
		Path:     c.Database.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.Database.SSLMode),
	}
	return u.String()
}

// IsAdminSteamID reports whether the Steam ID is configured as an admin
func (c *AuthConfig) IsAdminSteamID(steamID string) bool {
	for _, id := range c.AdminSteamIDs {
		if strings.TrimSpace(id) == steamID {
			return true
		}
	}
	return false
}
