package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the simulation core
type Config struct {
	Simulation SimulationConfig
	Redis      RedisConfig
}

// SimulationConfig holds simulation-specific configuration
type SimulationConfig struct {
	CatalogDir string // Directory holding the effect/disease/weather/hazard catalogs
	Seed       int64  // Pseudorandom seed; 0 means derive one from the clock
	SessionID  string // Identifies the play session for snapshot storage
	Turns      int    // Number of turns the demo runner advances
	TurnsPerDay int
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Simulation: SimulationConfig{
			CatalogDir:  getEnvOrDefault("CATALOG_DIR", "data/catalogs"),
			Seed:        getEnvAsInt64OrDefault("SIM_SEED", 0),
			SessionID:   getEnvOrDefault("SESSION_ID", "local"),
			Turns:       getEnvAsIntOrDefault("SIM_TURNS", 48),
			TurnsPerDay: getEnvAsIntOrDefault("TURNS_PER_DAY", 24),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
		},
	}

	if cfg.Simulation.TurnsPerDay <= 0 {
		return nil, fmt.Errorf("TURNS_PER_DAY must be positive")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
