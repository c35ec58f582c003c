// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Projection defaults. These are the documented defaults for the
	// projection engine when a request does not override them. Rates are
	// MONTHLY fractions, not annual percentages: 0.004 per month compounds
	// to roughly 4.9% per year.
	ProjectionHorizonYears     int
	MonthlySavingsGrowthRate   decimal.Decimal
	MonthlySavingsContribution decimal.Decimal
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "debttrack"),
		DBPassword: getEnv("DB_PASSWORD", "debttrack"),
		DBName:     getEnv("DB_NAME", "debttrack"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		ProjectionHorizonYears:     getEnvInt("PROJECTION_HORIZON_YEARS", 10),
		MonthlySavingsGrowthRate:   getEnvDecimal("MONTHLY_SAVINGS_GROWTH_RATE", "0.004"),
		MonthlySavingsContribution: getEnvDecimal("MONTHLY_SAVINGS_CONTRIBUTION", "0"),
	}

	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', using %d\n", key, raw, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvDecimal(key, defaultValue string) decimal.Decimal {
	raw := os.Getenv(key)
	if raw == "" {
		return decimal.RequireFromString(defaultValue)
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', using %s\n", key, raw, defaultValue)
		return decimal.RequireFromString(defaultValue)
	}
	return value
}
