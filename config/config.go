package config

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string
	LogLevel   string

	// Database configuration. DatabaseURL wins over the individual fields.
	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	SQLitePath  string

	// Redis configuration. Redis is optional; without it sessions and the
	// token denylist live in process memory and login is not rate limited.
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Bearer token configuration
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	TokenTTL    time.Duration

	// Cookie session configuration
	SessionKey   []byte
	SessionTTL   time.Duration
	CSRFKey      []byte
	CookieSecure bool
	CookieDomain string

	PasswordHasher string
	CORSOrigins    []string
	// TrustedProxies lists proxy addresses or CIDRs whose forwarding
	// headers are believed. Empty means the peer address is the client.
	TrustedProxies []string

	// Item image storage
	S3BucketName string
	AWSRegion    string
}

// Defaults shared by every environment.
const (
	DefaultTokenTTL   = 2 * time.Hour
	DefaultSessionTTL = 30 * time.Minute
)

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case CI, Development, Test:
		if err := loadEnvConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
		}
	case Production:
		if err := loadProdConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load production configuration: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadEnvConfig reads everything from environment variables, falling back to
// development defaults. Missing keys are generated so a fresh checkout runs.
func loadEnvConfig(cfg *Config) error {
	loadCommon(cfg)

	cfg.DBPassword = getEnv("DB_PASSWORD", "postgres")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")
	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET not set, generating a random signing key; issued tokens will not survive a restart")
		cfg.JWTSecret = base64.StdEncoding.EncodeToString(generateRandomBytes(32))
	}

	var err error
	if cfg.SessionKey, err = decodeKey("SESSION_KEY", os.Getenv("SESSION_KEY")); err != nil {
		return err
	}
	if cfg.CSRFKey, err = decodeKey("CSRF_KEY", os.Getenv("CSRF_KEY")); err != nil {
		return err
	}
	return nil
}

// loadProdConfig reads sensitive values ONLY from Docker secrets
func loadProdConfig(cfg *Config) error {
	loadCommon(cfg)

	cfg.DBPassword = readSecret("db_password")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.JWTSecret = readSecret("jwt_secret")
	if url := readSecret("database_url"); url != "" {
		cfg.DatabaseURL = url
	}

	var err error
	if cfg.SessionKey, err = decodeKey("session_key", readSecret("session_key")); err != nil {
		return err
	}
	if cfg.CSRFKey, err = decodeKey("csrf_key", readSecret("csrf_key")); err != nil {
		return err
	}
	return nil
}

func loadCommon(cfg *Config) {
	cfg.ServerPort = getEnv("SERVER_PORT", "8080")
	cfg.ServerHost = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	cfg.DBDriver = getEnv("DB_DRIVER", "postgres")
	cfg.DatabaseURL = getEnv("DATABASE_URL", "")
	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = getEnv("DB_USER", "postgres")
	cfg.DBName = getEnv("DB_NAME", "foodtrace")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")
	cfg.SQLitePath = getEnv("SQLITE_PATH", "foodtrace.db")

	cfg.RedisHost = getEnv("REDIS_HOST", "")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisURL = getEnv("REDIS_URL", "")
	cfg.RedisDB = getEnvInt("REDIS_DB", 0)

	cfg.JWTIssuer = getEnv("JWT_ISSUER", "foodtrace")
	cfg.JWTAudience = getEnv("JWT_AUDIENCE", "foodtrace-client")
	cfg.TokenTTL = getEnvDuration("TOKEN_TTL", DefaultTokenTTL)
	cfg.SessionTTL = getEnvDuration("SESSION_TTL", DefaultSessionTTL)
	cfg.CookieSecure = getEnv("COOKIE_SECURE", "false") == "true"
	cfg.CookieDomain = getEnv("COOKIE_DOMAIN", "")

	cfg.PasswordHasher = getEnv("PASSWORD_HASHER", "sha256")
	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "http://localhost:5173"))
	cfg.TrustedProxies = splitList(getEnv("TRUSTED_PROXIES", ""))

	cfg.S3BucketName = getEnv("S3_BUCKET_NAME", "")
	cfg.AWSRegion = getEnv("AWS_REGION", "")
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "sqlite" {
		return c.SQLitePath
	}
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// RedisEnabled reports whether a Redis server was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// S3Enabled reports whether item image uploads are available.
func (c *Config) S3Enabled() bool {
	return c.S3BucketName != ""
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// decodeKey decodes a base64 key of at least 32 bytes. An empty value
// yields a random key outside production.
func decodeKey(name, value string) ([]byte, error) {
	if value == "" {
		if IsProduction() {
			return nil, nil
		}
		slog.Warn("key not set, generating a random one; cookies will not survive a restart", "key", name)
		return generateRandomBytes(32), nil
	}
	key, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%s is not valid base64: %w", name, err)
	}
	if len(key) < 32 {
		return nil, fmt.Errorf("%s must decode to at least 32 bytes, got %d", name, len(key))
	}
	return key, nil
}

// generateRandomBytes generates a random byte slice of specified length
func generateRandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand unavailable: %v", err))
	}
	return b
}
