package config

import (
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	cfg := Config{
		DBName:        getEnv("DB_NAME"),
		MigrationsDir: getOptional("MIGRATIONS_DIR", "./migrations"),
		Port:          getEnv("PORT"),
		Slack: SlackConfig{
			Token:         getOptional("SLACK_BOT_TOKEN", ""),
			ChannelID:     getOptional("SLACK_CHANNEL_ID", ""),
			SigningSecret: getOptional("SLACK_SIGNING_SECRET", ""),
		},
		Turso: TursoConfig{
			PrimaryURL: getOptional("TURSO_PRIMARY_URL", ""),
			AuthToken:  getOptional("TURSO_AUTH_TOKEN", ""),
		},
		Inngest: InngestConfig{
			AppID:      getOptional("INNGEST_APP_ID", ""),
			SigningKey: getOptional("INNGEST_SIGNING_KEY", ""),
			EventKey:   getOptional("INNGEST_EVENT_KEY", ""),
			Dev:        getBool("INNGEST_DEV", false),
		},
		ProjectID: getOptional("GCP_PROJECT", ""),
		DryRun:    getBool("DRY_RUN", false),
		LogFormat: getOptional("LOG_FORMAT", "json"),
	}
	return cfg
}

// getOptional returns the value of key, or fallback when it is unset or empty.
func getOptional(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Warn("Invalid boolean in environment, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return b
}
