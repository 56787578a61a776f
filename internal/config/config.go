package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all application configuration, read once at startup.
type Config struct {
	Port      string
	Env       string // "development" or "production"
	MongoURI  string
	MongoDB   string
	JWTSecret string

	AWSRegion string
	S3Bucket  string

	GoogleClientID string

	LogLevel string
}

// Load reads configuration from the environment. A .env file, when present,
// takes precedence over inherited variables.
func Load() (*Config, error) {
	// no .env is fine, the environment may already be populated
	_ = godotenv.Overload(".env")

	cfg := &Config{
		Port:           getEnv("PORT", "3000"),
		Env:            getEnv("ENV", "development"),
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDB:        getEnv("MONGO_DB", "blogspace"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AWSRegion:      getEnv("AWS_REGION", "us-east-2"),
		S3Bucket:       os.Getenv("AWS_S3_BUCKET_NAME"),
		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
