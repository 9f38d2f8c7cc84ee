package config

import (
	"os"
	"strings"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	TablePrefix string
	// Persistence slot
	SlotBackend string // memory, file, badger, sqlite, postgres, s3
	SlotKey     string
	DataDir     string
	DatabaseURL string
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3Prefix    string
	S3AccessKey string
	S3SecretKey string
	// Auth is enabled only when a JWKS URL is configured
	AuthJWKSURL string
	// Logging
	LogDir string
	// Debug flags
	Debug bool // Enables debug-level logging
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix: getTablePrefix(env),
		SlotBackend: strings.ToLower(getEnv("KB_SLOT_BACKEND", "file")),
		SlotKey:     getEnv("KB_SLOT_KEY", DefaultSlotKey),
		DataDir:     getEnv("KB_DATA_DIR", "./data"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		S3Bucket:    getEnv("KB_S3_BUCKET", ""),
		S3Region:    getEnv("KB_S3_REGION", "us-east-1"),
		S3Endpoint:  getEnv("KB_S3_ENDPOINT", ""),
		S3Prefix:    getEnv("KB_S3_PREFIX", "kbportal"),
		S3AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		S3SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AuthJWKSURL: getEnv("AUTH_JWKS_URL", ""),
		LogDir:      getEnv("LOG_DIR", ""),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// AuthEnabled reports whether requests must carry a verified bearer token
func (c *Config) AuthEnabled() bool {
	return c.AuthJWKSURL != ""
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true" // Enable DEBUG in dev/test by default
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	// Auto-generate based on environment
	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
