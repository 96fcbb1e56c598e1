package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is the .env layout this build understands
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars must be set explicitly in production
var RequiredEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_NAME",
	"JWT_SECRET",
	"STEAM_API_KEY",
}

// exampleValues are the placeholders shipped in .env.example
var exampleValues = []struct {
	key, value, hint string
}{
	{"DB_PASSWORD", "change_this_secure_password", "use a real database password"},
	{"JWT_SECRET", "generate_with_openssl_rand_hex_32", "generate one with: openssl rand -hex 32"},
}

// ValidateEnv checks the .env schema version and that every required
// variable is present.
func ValidateEnv() error {
	switch version := os.Getenv("ENV_SCHEMA_VERSION"); version {
	case ExpectedEnvSchemaVersion:
	case "":
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - copy it from .env.example (expected: %s)", ExpectedEnvSchemaVersion)
	default:
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - compare your .env with .env.example", ExpectedEnvSchemaVersion, version)
	}

	var missing []string
	for _, key := range RequiredEnvVars {
		if os.Getenv(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv and then reports settings that
// work but should not reach production.
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	for _, ex := range exampleValues {
		if os.Getenv(ex.key) == ex.value {
			warnings = append(warnings, fmt.Sprintf("%s still holds the .env.example value - %s", ex.key, ex.hint))
		}
	}
	if os.Getenv("COOKIE_SECURE") != "true" {
		warnings = append(warnings, "COOKIE_SECURE is not enabled - session cookies will be sent over plain HTTP")
	}
	return warnings, nil
}
