package main

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dtrue/taxmate"
)

// siteEnv is the server configuration read from the environment.
type siteEnv struct {
	// URL is the public base URL from SITE_URL.
	URL string `env:"SITE_URL" envDefault:"http://localhost:3000"`
	// ContactEmail is the FAQ support address from CONTACT_EMAIL.
	ContactEmail string `env:"CONTACT_EMAIL"`
	// Addr is the listen address from ADDR.
	Addr string `env:"ADDR" envDefault:":3000"`
	// DatabasePath is the waitlist SQLite file from DATABASE_PATH.
	DatabasePath string `env:"DATABASE_PATH" envDefault:"data/taxmate.db"`
	// StaticDir holds user-owned assets such as htmx.min.js, from STATIC_DIR.
	StaticDir string `env:"STATIC_DIR" envDefault:"public"`

	WaitlistCapacity int           `env:"WAITLIST_CAPACITY" envDefault:"100"`
	StatsCacheTTL    time.Duration `env:"STATS_CACHE_TTL" envDefault:"1m"`

	// AnalyticsPath defaults to analytics.db beside DATABASE_PATH.
	AnalyticsPath      string        `env:"ANALYTICS_PATH"`
	AnalyticsRetention time.Duration `env:"ANALYTICS_RETENTION" envDefault:"4320h"`
	DisableAnalytics   bool          `env:"DISABLE_ANALYTICS"`

	AdminPassword     string `env:"ADMIN_PASSWORD"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
	SessionSecret     string `env:"ADMIN_SESSION_SECRET"`
	CookieSecure      bool   `env:"COOKIE_SECURE"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// NoColor follows the no-color.org convention: any value disables color.
	NoColor string `env:"NO_COLOR"`
}

// loadEnv reads path into the process environment when it exists, without
// overriding variables that are already set, then parses siteEnv.
func loadEnv(path string) (siteEnv, error) {
	var e siteEnv
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return e, fmt.Errorf("load env file %q: %w", path, err)
		}
	}
	if err := env.Parse(&e); err != nil {
		return e, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

func (e siteEnv) siteConfig() taxmate.SiteConfig {
	return taxmate.SiteConfig{
		URL:                e.URL,
		ContactEmail:       e.ContactEmail,
		Addr:               e.Addr,
		DatabasePath:       e.DatabasePath,
		WaitlistCapacity:   e.WaitlistCapacity,
		StatsCacheTTL:      e.StatsCacheTTL,
		AnalyticsPath:      e.AnalyticsPath,
		AnalyticsRetention: e.AnalyticsRetention,
		DisableAnalytics:   e.DisableAnalytics,
		AdminPassword:      e.AdminPassword,
		AdminPasswordHash:  e.AdminPasswordHash,
		SessionSecret:      e.SessionSecret,
		CookieSecure:       e.CookieSecure,
	}
}
