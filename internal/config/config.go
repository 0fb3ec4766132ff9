package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application settings.
type Config struct {
	// Server
	Port string
	Host string

	// Database
	DBPath string

	// File storage for deliverable artifacts
	UploadPath  string
	MaxFileSize int64

	// Security
	JWTSecret     string
	JWTExpiration time.Duration

	// Bootstrap sysadmin credentials for the root course
	SysadminRegistration string
	SysadminPassword     string
}

// Load reads configuration from the environment, with a .env file when
// one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		Port:                 getEnv("PORT", "8080"),
		Host:                 getEnv("HOST", "0.0.0.0"),
		DBPath:               getEnv("DB_PATH", "/tmp/sistema-ppi.db"),
		UploadPath:           getEnv("UPLOAD_PATH", "/tmp/ppi-artifacts"),
		JWTSecret:            getEnv("JWT_SECRET", "sistema_ppi_dev_secret"),
		JWTExpiration:        24 * time.Hour,
		SysadminRegistration: getEnv("SYSADMIN_REGISTRATION", "sysadmin"),
		SysadminPassword:     getEnv("SYSADMIN_PASSWORD", ""),
	}

	if maxFileSize, err := strconv.ParseInt(getEnv("MAX_FILE_SIZE", "52428800"), 10, 64); err == nil {
		config.MaxFileSize = maxFileSize
	} else {
		config.MaxFileSize = 50 * 1024 * 1024
	}

	if exp, err := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24")); err == nil && exp > 0 {
		config.JWTExpiration = time.Duration(exp) * time.Hour
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
