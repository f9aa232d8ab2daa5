package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type fileConfig struct {
	APIBase          string `yaml:"api_base"`
	Lang             string `yaml:"lang"`
	FeaturedRankID   int    `yaml:"featured_rank_id"`
	FeaturedLimit    int    `yaml:"featured_limit"`
	TrendingPage     int    `yaml:"trending_page"`
	TrendingPageSize int    `yaml:"trending_page_size"`
	UserAgent        string `yaml:"user_agent"`
	Timeout          string `yaml:"timeout"`
	ServerPort       string `yaml:"server_port"`
	RedisURL         string `yaml:"redis_url"`
	DatabaseURL      string `yaml:"database_url"`
	CacheTTL         string `yaml:"cache_ttl"`
	LogLevel         string `yaml:"log_level"`
}

// LoadFromFile loads config from a YAML file. Missing keys keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f fileConfig
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	c := Defaults()
	setString(&c.APIBase, f.APIBase)
	setString(&c.Lang, f.Lang)
	setInt(&c.FeaturedRankID, f.FeaturedRankID)
	setInt(&c.FeaturedLimit, f.FeaturedLimit)
	setInt(&c.TrendingPage, f.TrendingPage)
	setInt(&c.TrendingPageSize, f.TrendingPageSize)
	setString(&c.UserAgent, f.UserAgent)
	setString(&c.ServerPort, f.ServerPort)
	setString(&c.LogLevel, f.LogLevel)
	c.RedisURL = f.RedisURL
	c.DatabaseURL = f.DatabaseURL
	if f.Timeout != "" {
		if d, err := time.ParseDuration(f.Timeout); err == nil {
			c.Timeout = d
		}
	}
	if f.CacheTTL != "" {
		if d, err := time.ParseDuration(f.CacheTTL); err == nil {
			c.CacheTTL = d
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}
