package config

import (
	"os"
	"strconv"
)

// DefaultPort is used when PORT is unset or cannot be parsed as a TCP port.
const DefaultPort = 3000

// Page source kinds accepted by PAGE_SOURCE.
const (
	SourceFile  = "file"
	SourceMinIO = "minio"
)

// PageConfig selects where the served page comes from.
type PageConfig struct {
	Source string
	// File is resolved against the working directory at request time when relative.
	File string
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	ObjectKey string
	UseSSL    bool
}

// LogConfig controls the application logger.
type LogConfig struct {
	Level    string
	Format   string
	Timezone string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port               int
	AdminAddr          string
	ShutdownTimeoutSec int
	ServiceName        string
	Page               PageConfig
	Log                LogConfig
	MinIO              MinIOConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port:               getEnvPort("PORT", DefaultPort),
		AdminAddr:          getEnv("ADMIN_ADDR", ""),
		ShutdownTimeoutSec: getEnvInt("SHUTDOWN_TIMEOUT_SEC", 10),
		ServiceName:        getEnv("OTEL_SERVICE_NAME", "pageserver"),
		Page: PageConfig{
			Source: getEnv("PAGE_SOURCE", SourceFile),
			File:   getEnv("PAGE_FILE", "index.html"),
		},
		Log: LogConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			Format:   getEnv("LOG_FORMAT", "json"),
			Timezone: getEnv("LOG_TIMEZONE", "UTC"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			ObjectKey: getEnv("MINIO_OBJECT_KEY", "index.html"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
	}
}

// Addr returns the listen address for the page server.
func (c *AppConfig) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

// getEnvPort is getEnvInt restricted to the valid TCP port range.
func getEnvPort(key string, def int) int {
	p := getEnvInt(key, def)
	if p < 0 || p > 65535 {
		return def
	}
	return p
}
