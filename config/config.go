package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/jsphweid/abcplay/constants"
)

// Config holds the settings shared by every command
type Config struct {
	Environment string

	// Rendering
	OutDir       string
	TicksPerUnit int
	MidiPort     int

	// HTTP
	HTTPAddr string

	// Catalog (DynamoDB, local by default)
	DynamoEndpoint string
	DynamoRegion   string
	DynamoTable    string

	// Observability
	SentryDSN string
}

// Load reads a .env file when present, then the process environment
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "err", err)
	}

	return &Config{
		Environment:    getEnv("ENVIRONMENT", "development"),
		OutDir:         getEnv("ABC_OUT_DIR", "./out"),
		TicksPerUnit:   getEnvInt("ABC_TICKS_PER_UNIT", constants.DefaultTicksPerUnit),
		MidiPort:       getEnvInt("ABC_MIDI_PORT", 0),
		HTTPAddr:       getEnv("ABC_HTTP_ADDR", ":8080"),
		DynamoEndpoint: getEnv("DYNAMO_ENDPOINT", "http://localhost:8000"),
		DynamoRegion:   getEnv("DYNAMO_REGION", "localhost"),
		DynamoTable:    getEnv("DYNAMO_TABLE", "abcplay-catalog"),
		SentryDSN:      getEnv("SENTRY_DSN", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		slog.Warn("ignoring invalid integer setting", "key", key, "value", value)
		return defaultValue
	}
	return n
}
