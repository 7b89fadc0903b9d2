package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Word source kinds accepted in WORD_SOURCE
const (
	WordSourceDatabase = "database"
	WordSourceCSV      = "csv"
	WordSourceURL      = "url"
)

// Config holds application configuration
type Config struct {
	ServerPort     string `env:"PORT" env-default:"8080"`
	DatabaseType   string `env:"DATABASE_TYPE" env-default:"sqlite"`
	DatabasePath   string `env:"DB_PATH" env-default:"./derdiedas.db"`
	DatabaseURL    string `env:"DATABASE_URL"`
	MigrationsPath string `env:"MIGRATIONS_PATH" env-default:"./migrations"`

	WordSource   string `env:"WORD_SOURCE" env-default:"database"`
	WordsCSVPath string `env:"WORDS_CSV_PATH" env-default:"./data/nouns.csv"`
	WordsURL     string `env:"WORDS_URL"`

	SessionTTL time.Duration `env:"SESSION_TTL" env-default:"2h"`
	RandSeed   int64         `env:"RAND_SEED" env-default:"0"`

	AdminTokenHash string `env:"ADMIN_TOKEN_HASH"`
	CSRFSecret     string `env:"CSRF_SECRET"`

	RateLimitRequests int           `env:"RATE_LIMIT_REQUESTS" env-default:"120"`
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW" env-default:"1m"`

	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `env:"LOG_FORMAT" env-default:"json"`
	Debug     bool   `env:"DEBUG" env-default:"false"`
}

// Load reads an optional .env file, then environment variables with defaults
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks combinations that defaults cannot express
func (c *Config) Validate() error {
	c.DatabaseType = strings.ToLower(c.DatabaseType)
	switch c.DatabaseType {
	case "sqlite", "sqlite3":
	case "postgres", "postgresql", "mysql":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for %s", c.DatabaseType)
		}
	default:
		return fmt.Errorf("unsupported DATABASE_TYPE %q", c.DatabaseType)
	}

	c.WordSource = strings.ToLower(c.WordSource)
	switch c.WordSource {
	case WordSourceDatabase, WordSourceCSV:
	case WordSourceURL:
		if c.WordsURL == "" {
			return fmt.Errorf("WORDS_URL is required when WORD_SOURCE is url")
		}
	default:
		return fmt.Errorf("unsupported WORD_SOURCE %q", c.WordSource)
	}

	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.RateLimitRequests <= 0 || c.RateLimitWindow <= 0 {
		return fmt.Errorf("rate limit requests and window must be positive")
	}
	return nil
}
