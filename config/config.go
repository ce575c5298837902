// Package config holds the explicit run configuration passed into the
// crawler and analysis stages.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Provider names for the page-source implementations.
const (
	ProviderHTTP    = "http"
	ProviderBrowser = "browser"
)

// Config holds crawler and output configuration. A Config value is
// handed to each component at construction; nothing reads process-wide
// state.
type Config struct {
	BaseURL      string
	ItemSelector string
	NextSelector string
	MaxPages     int
	PageDelay    time.Duration
	Timeout      time.Duration
	UserAgent    string
	Provider     string // http or browser
	OutputFile   string
	OutputFormat string // csv, json, or dual
	ReportFile   string
	MetricsAddr  string
	Verbose      bool
}

// DefaultConfig returns conservative defaults for the demo target.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:      "https://books.toscrape.com",
		ItemSelector: "article.product_pod",
		NextSelector: "li.next > a",
		MaxPages:     50,
		PageDelay:    300 * time.Millisecond,
		Timeout:      30 * time.Second,
		UserAgent:    "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/117.0.0.0 Safari/537.36",
		Provider:     ProviderHTTP,
		OutputFile:   "output/catalog.csv",
		OutputFormat: "csv",
		ReportFile:   "",
		MetricsAddr:  "",
		Verbose:      false,
	}
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}

	parsedURL, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("base URL must include a host")
	}

	if c.ItemSelector == "" {
		return fmt.Errorf("item selector cannot be empty")
	}
	if c.NextSelector == "" {
		return fmt.Errorf("next-page selector cannot be empty")
	}
	if c.MaxPages <= 0 {
		return fmt.Errorf("max pages must be positive")
	}
	if c.PageDelay < 0 {
		return fmt.Errorf("page delay cannot be negative")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}
	if c.Provider != ProviderHTTP && c.Provider != ProviderBrowser {
		return fmt.Errorf("provider must be %s or %s", ProviderHTTP, ProviderBrowser)
	}
	if c.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if c.OutputFormat != "csv" && c.OutputFormat != "json" && c.OutputFormat != "dual" {
		return fmt.Errorf("output format must be csv, json, or dual")
	}

	return nil
}

// EnvString reads a string environment variable, reporting presence.
func EnvString(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// EnvInt reads an integer environment variable, reporting presence.
func EnvInt(key string) (int, bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, true, nil
}
