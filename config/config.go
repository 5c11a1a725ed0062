package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds all configuration for the search bot
type Config struct {
	Telegram TelegramConfig
	Database DatabaseConfig
	Search   SearchConfig
	Logging  LoggingConfig
	Service  ServiceConfig
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken    string
	BotUsername string
	AdminIDs    []int64
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// SearchConfig holds search flow tuning and setting defaults.
// Defaults apply whenever the corresponding setting row is absent.
type SearchConfig struct {
	ResultLimit           int
	SearchingDelay        time.Duration
	SessionTTL            time.Duration
	DefaultMode           string
	DefaultAutoDeleteTime int
	DefaultNRFImage       string
	DatabaseChannel       string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
}

// ServiceConfig holds service configuration
type ServiceConfig struct {
	Name string
	Port string
}

// Result provides config parts for fx dependency injection using fx.Out pattern
type Result struct {
	fx.Out

	Config   *Config
	Telegram *TelegramConfig
	Database *DatabaseConfig
	Search   *SearchConfig
	Logging  *LoggingConfig
	Service  *ServiceConfig
}

// Out loads configuration and returns Result for fx injection
func Out() (Result, error) {
	cfg, err := Load()
	if err != nil {
		return Result{}, err
	}

	return Result{
		Config:   cfg,
		Telegram: &cfg.Telegram,
		Database: &cfg.Database,
		Search:   &cfg.Search,
		Logging:  &cfg.Logging,
		Service:  &cfg.Service,
	}, nil
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	adminIDs, err := parseIDs(getEnv("ADMIN_IDS", ""))
	if err != nil {
		return nil, fmt.Errorf("ADMIN_IDS: %w", err)
	}

	resultLimit, err := getEnvInt("SEARCH_RESULT_LIMIT", 10)
	if err != nil {
		return nil, err
	}

	autoDeleteTime, err := getEnvInt("DEFAULT_AUTO_DELETE_TIME", 60)
	if err != nil {
		return nil, err
	}

	searchingDelay, err := getEnvDuration("SEARCHING_INDICATOR_DELAY", time.Second)
	if err != nil {
		return nil, err
	}

	sessionTTL, err := getEnvDuration("SESSION_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Telegram: TelegramConfig{
			BotToken:    getEnv("TELEGRAM_BOT_TOKEN", ""),
			BotUsername: getEnv("BOT_USERNAME", ""),
			AdminIDs:    adminIDs,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "catalog_search"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Search: SearchConfig{
			ResultLimit:           resultLimit,
			SearchingDelay:        searchingDelay,
			SessionTTL:            sessionTTL,
			DefaultMode:           strings.ToLower(getEnv("DEFAULT_MODE", "private")),
			DefaultAutoDeleteTime: autoDeleteTime,
			DefaultNRFImage:       getEnv("DEFAULT_NRF_IMAGE", "https://envs.sh/ij_.jpg/HGBOTZ.jpg"),
			DatabaseChannel:       getEnv("DATABASE_CHANNEL", ""),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Service: ServiceConfig{
			Name: getEnv("SERVICE_NAME", "catalog-search-bot"),
			Port: getEnv("SERVICE_PORT", "8081"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	if c.Search.ResultLimit <= 0 {
		return fmt.Errorf("SEARCH_RESULT_LIMIT must be positive")
	}

	if c.Search.DefaultAutoDeleteTime <= 0 {
		return fmt.Errorf("DEFAULT_AUTO_DELETE_TIME must be positive")
	}

	if c.Search.DefaultMode != "public" && c.Search.DefaultMode != "private" {
		return fmt.Errorf("DEFAULT_MODE must be public or private")
	}

	return nil
}

// IsAdmin reports whether userID is listed in ADMIN_IDS
func (c *TelegramConfig) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}

// parseIDs parses a comma separated list of numeric ids, skipping blanks
func parseIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
