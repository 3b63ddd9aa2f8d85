package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the sidecar process.
type Config struct {
	Version    string
	Simulation SimulationConfig
}

// SimulationConfig holds defaults and limits for the Monte Carlo engine.
// The host application can omit trial/horizon parameters on a request,
// in which case these defaults apply. MaxTrials bounds the memory a
// single request can claim (each trial path is n_years+1 float64s).
type SimulationConfig struct {
	DefaultTrials    int
	DefaultYears     int
	DefaultInflation float64
	MaxTrials        int
}

// Load reads configuration from environment variables and a .env file.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Version: getEnv("SIDECAR_VERSION", "dev"),
		Simulation: SimulationConfig{
			DefaultTrials:    getEnvInt("SIDECAR_DEFAULT_TRIALS", 10000),
			DefaultYears:     getEnvInt("SIDECAR_DEFAULT_YEARS", 50),
			DefaultInflation: getEnvFloat("SIDECAR_DEFAULT_INFLATION", 0.03),
			MaxTrials:        getEnvInt("SIDECAR_MAX_TRIALS", 100000),
		},
	}

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvFloat gets a float environment variable or returns a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}
