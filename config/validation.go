package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// minJWTSecretLength is enforced in production only.
const minJWTSecretLength = 32

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()

	var errs []ValidationError
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg})
	}

	if cfg.ServerPort == "" {
		add("SERVER_PORT", "is required")
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DatabaseURL == "" && (cfg.DBHost == "" || cfg.DBName == "") {
			add("DATABASE_URL", "either DATABASE_URL or DB_HOST and DB_NAME are required")
		}
	case "sqlite":
		if cfg.SQLitePath == "" {
			add("SQLITE_PATH", "is required when DB_DRIVER=sqlite")
		}
	default:
		add("DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}

	if cfg.JWTSecret == "" {
		add("JWT_SECRET", "is required")
	}
	if cfg.JWTIssuer == "" {
		add("JWT_ISSUER", "is required")
	}
	if cfg.JWTAudience == "" {
		add("JWT_AUDIENCE", "is required")
	}

	switch cfg.PasswordHasher {
	case "sha256", "bcrypt":
	default:
		add("PASSWORD_HASHER", fmt.Sprintf("unsupported hasher %q", cfg.PasswordHasher))
	}

	if cfg.S3BucketName != "" && cfg.AWSRegion == "" {
		add("AWS_REGION", "is required when S3_BUCKET_NAME is set")
	}

	if env == Production {
		// In production, sensitive values must come from Docker secrets
		if cfg.DBDriver == "postgres" && cfg.DatabaseURL == "" && cfg.DBPassword == "" {
			add("db_password", "secret is required")
		}
		if len(cfg.JWTSecret) < minJWTSecretLength {
			add("jwt_secret", fmt.Sprintf("secret must be at least %d characters", minJWTSecretLength))
		}
		if len(cfg.SessionKey) == 0 {
			add("session_key", "secret is required")
		}
		if len(cfg.CSRFKey) == 0 {
			add("csrf_key", "secret is required")
		}
		if !cfg.CookieSecure {
			add("COOKIE_SECURE", "must be true in production")
		}
	}

	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("configuration validation failed:\n%s", strings.Join(msgs, "\n"))
}
