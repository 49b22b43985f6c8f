package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const AVATAR_SIZE = 128

type Config struct {
	Port          string
	GinMode       string
	DBUser        string
	DBPass        string
	DBHost        string
	DBName        string
	StorageBucket string
	FEOrigins     []string
}

// Load reads the configuration from the environment. A .env file is
// loaded first if one exists (development convenience).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          os.Getenv("PORT"),
		GinMode:       os.Getenv("GIN_MODE"),
		DBUser:        os.Getenv("DB_USER"),
		DBPass:        os.Getenv("DB_PASS"),
		DBHost:        os.Getenv("DB_HOST"),
		DBName:        os.Getenv("DB_NAME"),
		StorageBucket: os.Getenv("STORAGE_BUCKET"),
		FEOrigins:     strings.Split(os.Getenv("FE_ORIGINS"), ";"),
	}
	if cfg.Port == "" {
		return nil, fmt.Errorf("$PORT must be set")
	}
	if cfg.DBHost == "" {
		return nil, fmt.Errorf("$DB_HOST must be set")
	}
	if cfg.DBName == "" {
		cfg.DBName = "kabsu"
	}
	return cfg, nil
}
