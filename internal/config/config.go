package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Quality holds the tunable excerpt quality-filter thresholds.
// Operators adjust these per deployment; none are hard-coded.
type Quality struct {
	// MinExcerptChars is the minimum trimmed excerpt length.
	MinExcerptChars int
	// MinExcerptWords is the minimum excerpt word count.
	MinExcerptWords int
	// MinAlnumRatio is the minimum alphanumeric character fraction.
	MinAlnumRatio float64
	// ExcludeLowRelevance drops LOW-confidence results when true.
	// Off by default; see DESIGN.md for the policy rationale.
	ExcludeLowRelevance bool
}

// Config holds all configuration for the application.
type Config struct {
	LLMBaseURL string
	LLMAPIKey  string
	// LLMModels is the ordered model fallback chain.
	LLMModels []string
	// LLMTimeoutSeconds bounds each model attempt.
	LLMTimeoutSeconds int

	SearchEndpoint string
	SearchAPIKey   string
	SearchIndexID  string
	// SearchDisableFiltering bypasses tenant scope filtering.
	// Diagnostic only; never enable in production.
	SearchDisableFiltering bool

	Quality    Quality
	MaxResults int

	DBPath    string
	APIPort   string
	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	// Check current directory first, then walk up to find project root (where go.mod is)
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		LLMBaseURL:             getEnv("LLM_BASE_URL", "https://generativelanguage.googleapis.com"),
		LLMAPIKey:              getEnv("LLM_API_KEY", ""),
		SearchEndpoint:         getEnv("SEARCH_ENDPOINT", ""),
		SearchAPIKey:           getEnv("SEARCH_API_KEY", ""),
		SearchIndexID:          getEnv("SEARCH_INDEX_ID", ""),
		SearchDisableFiltering: getBoolEnv("SEARCH_DISABLE_FILTERING", false),
		DBPath:                 getEnv("DB_PATH", "./data/coursemate-ai.db"),
		APIPort:                getEnv("API_PORT", "9000"),
		LogFormat:              getEnv("LOG_FORMAT", "text"),
	}

	// Ordered model fallback chain: the first identifier that answers
	// wins; later ones are only tried on failure.
	models := getEnv("LLM_MODELS", "gemini-1.5-flash,gemini-2.5-flash,gemini-flash-latest")
	for _, m := range strings.Split(models, ",") {
		if m = strings.TrimSpace(m); m != "" && !contains(cfg.LLMModels, m) {
			cfg.LLMModels = append(cfg.LLMModels, m)
		}
	}
	if len(cfg.LLMModels) == 0 {
		return nil, fmt.Errorf("LLM_MODELS must name at least one model")
	}

	timeout, err := getIntEnv("LLM_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("LLM_TIMEOUT_SECONDS must be greater than 0")
	}
	cfg.LLMTimeoutSeconds = timeout

	cfg.MaxResults, err = getIntEnv("RETRIEVAL_MAX_RESULTS", 5)
	if err != nil {
		return nil, err
	}
	if cfg.MaxResults <= 0 {
		return nil, fmt.Errorf("RETRIEVAL_MAX_RESULTS must be greater than 0")
	}

	cfg.Quality.MinExcerptChars, err = getIntEnv("QUALITY_MIN_EXCERPT_CHARS", 40)
	if err != nil {
		return nil, err
	}
	cfg.Quality.MinExcerptWords, err = getIntEnv("QUALITY_MIN_EXCERPT_WORDS", 8)
	if err != nil {
		return nil, err
	}
	cfg.Quality.MinAlnumRatio, err = getFloatEnv("QUALITY_MIN_ALNUM_RATIO", 0.4)
	if err != nil {
		return nil, err
	}
	if cfg.Quality.MinAlnumRatio < 0 || cfg.Quality.MinAlnumRatio > 1 {
		return nil, fmt.Errorf("QUALITY_MIN_ALNUM_RATIO must be between 0 and 1")
	}
	cfg.Quality.ExcludeLowRelevance = getBoolEnv("QUALITY_EXCLUDE_LOW_RELEVANCE", false)

	switch strings.ToLower(getEnv("LOG_LEVEL", "info")) {
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "info":
		cfg.LogLevel = slog.LevelInfo
	case "warn":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}

	// Create ./data directory if it doesn't exist (for the DB file)
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// SearchConfigured reports whether the managed search index has enough
// configuration to be queried at all.
func (c *Config) SearchConfigured() bool {
	return c.SearchEndpoint != "" && c.SearchIndexID != "" && c.SearchAPIKey != ""
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return strings.EqualFold(value, "true") || value == "1"
}

func getIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}

func getFloatEnv(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number: %w", key, err)
	}
	return f, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
