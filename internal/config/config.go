package config

import (
	"os"
	"strconv"
	"time"
)

// DefaultAPIBase is used when DRAMA_API_BASE is not set.
const DefaultAPIBase = "https://sapi.dramabox.be"

// Config holds application configuration: upstream API, rail parameters,
// HTTP server and the optional Redis cache and Postgres fetch log.
type Config struct {
	APIBase          string        `yaml:"api_base" env:"DRAMA_API_BASE"`
	Lang             string        `yaml:"lang" env:"DRAMA_LANG"`
	FeaturedRankID   int           `yaml:"featured_rank_id" env:"FEATURED_RANK_ID"`
	FeaturedLimit    int           `yaml:"featured_limit" env:"FEATURED_LIMIT"`
	TrendingPage     int           `yaml:"trending_page" env:"TRENDING_PAGE"`
	TrendingPageSize int           `yaml:"trending_page_size" env:"TRENDING_PAGE_SIZE"`
	UserAgent        string        `yaml:"user_agent" env:"FETCHER_USER_AGENT"`
	Timeout          time.Duration `yaml:"timeout" env:"FETCHER_TIMEOUT"`
	ServerPort       string        `yaml:"server_port" env:"SERVER_PORT"`
	RedisURL         string        `yaml:"redis_url" env:"REDIS_URL"`
	DatabaseURL      string        `yaml:"database_url" env:"DATABASE_URL"`
	CacheTTL         time.Duration `yaml:"cache_ttl" env:"CACHE_TTL"`
	LogLevel         string        `yaml:"log_level" env:"LOG_LEVEL"`
}

// Defaults returns a Config with every optional field filled in.
func Defaults() *Config {
	return &Config{
		APIBase:          DefaultAPIBase,
		Lang:             "in",
		FeaturedRankID:   1,
		FeaturedLimit:    10,
		TrendingPage:     1,
		TrendingPageSize: 8,
		UserAgent:        "DramaRail/1.0",
		Timeout:          30 * time.Second,
		ServerPort:       "8080",
		CacheTTL:         2 * time.Minute,
		LogLevel:         "info",
	}
}

// Load builds config from environment variables, after loading .env.local and
// .env from the working directory (values already in the environment win).
// Every variable is optional; REDIS_URL and DATABASE_URL enable their features.
func Load() (*Config, error) {
	loadEnvFiles()
	c := Defaults()
	c.APIBase = getEnv("DRAMA_API_BASE", c.APIBase)
	c.Lang = getEnv("DRAMA_LANG", c.Lang)
	c.FeaturedRankID = getEnvInt("FEATURED_RANK_ID", c.FeaturedRankID)
	c.FeaturedLimit = getEnvInt("FEATURED_LIMIT", c.FeaturedLimit)
	c.TrendingPage = getEnvInt("TRENDING_PAGE", c.TrendingPage)
	c.TrendingPageSize = getEnvInt("TRENDING_PAGE_SIZE", c.TrendingPageSize)
	c.UserAgent = getEnv("FETCHER_USER_AGENT", c.UserAgent)
	c.Timeout = getEnvDuration("FETCHER_TIMEOUT", c.Timeout)
	c.ServerPort = getEnv("SERVER_PORT", c.ServerPort)
	c.RedisURL = os.Getenv("REDIS_URL")
	c.DatabaseURL = os.Getenv("DATABASE_URL")
	c.CacheTTL = getEnvDuration("CACHE_TTL", c.CacheTTL)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the rail parameters.
func (c *Config) Validate() error {
	switch {
	case c.APIBase == "":
		return ErrMissingAPIBase
	case c.FeaturedLimit < 1:
		return invalid("featured_limit", strconv.Itoa(c.FeaturedLimit))
	case c.TrendingPage < 1:
		return invalid("trending_page", strconv.Itoa(c.TrendingPage))
	case c.TrendingPageSize < 1:
		return invalid("trending_page_size", strconv.Itoa(c.TrendingPageSize))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
