package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type DiscordConfig struct {
	BotToken string
}

// IsConfigured returns true if all required Discord configuration is present
func (c DiscordConfig) IsConfigured() bool {
	return c.BotToken != ""
}

type AlertsConfig struct {
	SlackWebhookURL string
	LogsURL         string
}

// IsConfigured returns true if all required alerting configuration is present
func (c AlertsConfig) IsConfigured() bool {
	return c.SlackWebhookURL != ""
	// Note: LogsURL is optional
}

type ModerationConfig struct {
	// BannedTerms are lowercase substrings that trigger message removal
	BannedTerms []string
}

type AppConfig struct {
	// Core configuration (always required)
	DatabaseURL        string
	DatabaseSchema     string
	Port               string // Optional with default "8080"
	CORSAllowedOrigins string // Optional with default "*"
	Environment        string
	UseStrictConfig    bool // If true, error when any integration is not fully configured

	// Integration configurations (grouped)
	DiscordConfig    DiscordConfig
	AlertsConfig     AlertsConfig
	ModerationConfig ModerationConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	// Core required configuration
	databaseURL, err := getEnvRequired("DB_URL")
	if err != nil {
		return nil, err
	}

	databaseSchema, err := getEnvRequired("DB_SCHEMA")
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		// Core configuration
		DatabaseURL:        databaseURL,
		DatabaseSchema:     databaseSchema,
		Port:               getEnvWithDefault("PORT", "8080"),
		CORSAllowedOrigins: getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"),
		Environment:        getEnvWithDefault("ENVIRONMENT", "dev"),
		UseStrictConfig:    getEnvWithDefault("USE_STRICT_CONFIG", "true") == "true",

		// Discord configuration (required for gateway features)
		DiscordConfig: DiscordConfig{
			BotToken: os.Getenv("DISCORD_BOT_TOKEN"),
		},

		// Alerting configuration (optional)
		AlertsConfig: AlertsConfig{
			SlackWebhookURL: os.Getenv("SLACK_ALERT_WEBHOOK_URL"),
			LogsURL:         getEnvWithDefault("SERVER_LOGS_URL", ""),
		},

		// Moderation configuration (optional)
		ModerationConfig: ModerationConfig{
			BannedTerms: parseBannedTerms(os.Getenv("MODERATION_BANNED_TERMS")),
		},
	}

	// Log which integrations are configured
	if config.DiscordConfig.IsConfigured() {
		log.Printf("✅ Discord integration configured")
	} else {
		log.Printf("⚠️ Discord integration not configured - gateway features will be disabled")
		if config.UseStrictConfig {
			return nil, fmt.Errorf("discord integration is not fully configured (USE_STRICT_CONFIG=true)")
		}
	}

	if config.AlertsConfig.IsConfigured() {
		log.Printf("✅ Slack error alerting configured")
	} else {
		log.Printf("⚠️ Slack error alerting not configured - alerts will only be logged")
	}

	if len(config.ModerationConfig.BannedTerms) > 0 {
		log.Printf("✅ Message filter configured with %d banned terms", len(config.ModerationConfig.BannedTerms))
	} else {
		log.Printf("⚠️ No banned terms configured - message filter will only flag invite links")
	}

	return config, nil
}

// parseBannedTerms splits a comma-separated list, lowercasing and trimming
// each term and dropping empties.
func parseBannedTerms(raw string) []string {
	if raw == "" {
		return nil
	}
	var terms []string
	for _, term := range strings.Split(raw, ",") {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
