package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string

	DataDir  string
	Timezone string

	RemoteMode    string
	RemoteURL     string
	RemoteTimeout time.Duration
	SyncDebounce  time.Duration
	DatabaseURL   string

	RedisURL string

	JWTSecret       string
	JWTAccessExpiry time.Duration

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	CORSOrigins string

	SeedAdminUsername string
	SeedAdminPassword string
	SeedAdminName     string
}

const (
	RemoteModeNone     = "none"
	RemoteModeHTTP     = "http"
	RemoteModePostgres = "postgres"
)

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DataDir:  getEnv("DATA_DIR", "./data"),
		Timezone: getEnv("TIMEZONE", "Local"),

		RemoteMode:    getEnv("REMOTE_MODE", RemoteModeNone),
		RemoteURL:     getEnv("REMOTE_URL", ""),
		RemoteTimeout: getDurationEnv("REMOTE_TIMEOUT", 15*time.Second),
		SyncDebounce:  getDurationEnv("SYNC_DEBOUNCE", 2*time.Second),
		DatabaseURL:   getEnv("DATABASE_URL", ""),

		RedisURL: getEnv("REDIS_URL", ""),

		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTAccessExpiry: getDurationEnv("JWT_ACCESS_EXPIRY", 24*time.Hour),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:    getEnv("MINIO_BUCKET", "nexus-media"),
		MinIOUseSSL:    getBoolEnv("MINIO_USE_SSL", false),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),

		SeedAdminUsername: getEnv("SEED_ADMIN_USERNAME", "admin"),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", "admin"),
		SeedAdminName:     getEnv("SEED_ADMIN_NAME", "Administrator"),
	}
}

// Location resolves Timezone, falling back to the host zone.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
