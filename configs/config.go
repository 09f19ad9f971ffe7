package config

import (
	"os"
)

// Config holds the application configuration
type Config struct {
	Port         string
	DatabasePath string
	SeedFilePath string
	UploadDir    string
	Environment  string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:         getEnv("PORT", "8080"),
		DatabasePath: getEnv("DATABASE_PATH", "data/energy.db"),
		SeedFilePath: getEnv("SEED_FILE_PATH", "attached_assets/campus_meter_readings.xlsx"),
		UploadDir:    getEnv("UPLOAD_DIR", "uploads"),
		Environment:  getEnv("ENVIRONMENT", "development"),
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
