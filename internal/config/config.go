package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// TLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // when set, clients must present a certificate signed by this CA

	// Database
	DatabaseDriver string // "postgres" or "sqlite"
	DatabaseURL    string // connection string, or file path for sqlite

	// Cache
	RedisURL    string        // empty keeps the API response cache in memory
	APICacheTTL time.Duration // lifetime of cached /api/keywords responses

	// Keyword browser
	KeywordsSourceURL       string        // index the browser loads, defaults to BaseURL + "/api/keywords"
	KeywordsRefreshInterval time.Duration // 0 loads once at startup
	KeywordsFetchTimeout    time.Duration // 0 means no timeout
	KeywordsTrackClicks     bool          // order by clicks and show them in tooltips

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "go2"
	SiteTagline string // env: SITE_TAGLINE, default: "Keyword redirector"
	SiteFooter  string // env: SITE_FOOTER
	SiteLogoURL string // env: SITE_LOGO_URL, default: "" (no logo, text only)
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	baseURL := strings.TrimSuffix(getEnv("BASE_URL", "http://localhost:3000"), "/")

	return &Config{
		Env:            getEnv("ENV", "development"),
		ServerAddr:     getEnv("SERVER_ADDR", ":3000"),
		BaseURL:        baseURL,
		TLSEnabled:     getEnvBool("TLS_ENABLED", false),
		TLSCertFile:    getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:     getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:      getEnv("TLS_CA_FILE", ""),
		DatabaseDriver: getEnv("DATABASE_DRIVER", "postgres"),
		DatabaseURL:    getEnv("DATABASE_URL", "postgres://localhost:5432/go2?sslmode=disable"),

		RedisURL:    getEnv("REDIS_URL", ""),
		APICacheTTL: getEnvDuration("API_CACHE_TTL", time.Minute),

		KeywordsSourceURL:       getEnv("KEYWORDS_SOURCE_URL", baseURL+"/api/keywords"),
		KeywordsRefreshInterval: getEnvDuration("KEYWORDS_REFRESH_INTERVAL", 0),
		KeywordsFetchTimeout:    getEnvDuration("KEYWORDS_FETCH_TIMEOUT", 0),
		KeywordsTrackClicks:     getEnvBool("KEYWORDS_TRACK_CLICKS", true),

		SiteTitle:   getEnv("SITE_TITLE", "go2"),
		SiteTagline: getEnv("SITE_TAGLINE", "Keyword redirector"),
		SiteFooter:  getEnv("SITE_FOOTER", "go2 - type a keyword, get where you meant to go"),
		SiteLogoURL: getEnv("SITE_LOGO_URL", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(fallback)))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsSQLite reports whether the link database is a local sqlite file.
func (c *Config) IsSQLite() bool {
	return c.DatabaseDriver == "sqlite"
}
