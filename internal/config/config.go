package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	// ConnectRetries is how many extra pings are attempted at startup before giving up.
	ConnectRetries    int
	ConnectTimeoutSec int
}

// Missing lists the environment variables of required settings that are empty.
func (c DatabaseConfig) Missing() []string {
	var missing []string
	if c.Host == "" {
		missing = append(missing, "DB_HOST")
	}
	if c.Port == "" {
		missing = append(missing, "DB_PORT")
	}
	if c.User == "" {
		missing = append(missing, "DB_USER")
	}
	if c.Name == "" {
		missing = append(missing, "DB_NAME")
	}
	return missing
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	// Prefix is prepended to every object key, e.g. "applicantpool/".
	Prefix string
	UseSSL bool
}

// StorageConfig selects where uploaded spreadsheets are archived.
// Driver is either "local" (files under UploadDir) or "minio".
type StorageConfig struct {
	Driver    string
	UploadDir string
	MinIO     MinIOConfig
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string
	Format string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port        string
	Timezone    string
	ExportDir   string
	MaxUploadMB int
	Log         LogConfig
	Database    DatabaseConfig
	Storage     StorageConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	uploadDir := getEnv("UPLOAD_DIR", "uploads")

	return &AppConfig{
		Port:        getEnv("PORT", "8000"),
		Timezone:    getEnv("TZ_NAME", "Africa/Addis_Ababa"),
		ExportDir:   getEnv("EXPORT_DIR", uploadDir),
		MaxUploadMB: getEnvInt("MAX_UPLOAD_MB", 32),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			ConnectRetries:     getEnvInt("DB_CONNECT_RETRIES", 5),
			ConnectTimeoutSec:  getEnvInt("DB_CONNECT_TIMEOUT_SEC", 5),
		},
		Storage: StorageConfig{
			Driver:    getEnv("STORAGE_DRIVER", "local"),
			UploadDir: uploadDir,
			MinIO: MinIOConfig{
				Endpoint:  getEnv("MINIO_ENDPOINT", ""),
				AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
				SecretKey: getEnv("MINIO_SECRET_KEY", ""),
				Bucket:    getEnv("MINIO_BUCKET", ""),
				Region:    getEnv("MINIO_REGION", ""),
				Prefix:    getEnv("MINIO_PREFIX", ""),
				UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			},
		},
	}
}

// Location resolves Timezone, the zone whose calendar decides "today" and export timestamps.
func (c *AppConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TZ_NAME %q: %w", c.Timezone, err)
	}
	return loc, nil
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
