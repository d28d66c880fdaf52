package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"
)

// DefaultFeed is a Google News search for AI in sport, Spanish edition.
const DefaultFeed = "https://news.google.com/rss/search?q=inteligencia+artificial+deporte&hl=es-419&gl=US&ceid=US:es-419"

// Config holds the server address and the feed adapter settings.
type Config struct {
	Listen       string   `json:"listen"`
	Feeds        []string `json:"feeds"`
	MaxItems     int      `json:"max_items"`
	FetchTimeout int      `json:"fetch_timeout"`
	UserAgent    string   `json:"user_agent"`
	TimeZone     string   `json:"time_zone"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Listen:       ":8080",
		Feeds:        []string{DefaultFeed},
		MaxItems:     30,
		FetchTimeout: 10,
		UserAgent:    "news-monitor/1.0",
		TimeZone:     "Europe/Madrid",
	}
}

// Validate checks feed URLs, limits and the time zone.
func (cfg *Config) Validate() error {
	if len(cfg.Feeds) == 0 {
		return errors.New("at least one feed is required")
	}
	for _, u := range cfg.Feeds {
		if _, err := url.ParseRequestURI(u); err != nil {
			return fmt.Errorf("invalid feed URL: %s", u)
		}
	}
	if cfg.MaxItems < 0 {
		return errors.New("max items must be ≥ 0")
	}
	if cfg.FetchTimeout < 0 {
		return errors.New("fetch timeout must be ≥ 0 seconds")
	}
	if _, err := time.LoadLocation(cfg.TimeZone); err != nil {
		return fmt.Errorf("invalid time zone %q: %w", cfg.TimeZone, err)
	}
	return nil
}

// Location resolves TimeZone, falling back to time.Local.
func (cfg *Config) Location() *time.Location {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

// FetchTimeoutDuration is FetchTimeout in seconds as a time.Duration; zero disables it.
func (cfg *Config) FetchTimeoutDuration() time.Duration {
	return time.Duration(cfg.FetchTimeout) * time.Second
}

// LoadConfig reads the JSON file at path on top of Default.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := Default()
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &cfg, nil
}
