package taxmate

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/dtrue/taxmate/faq"
	"github.com/dtrue/taxmate/meta"
)

// SiteConfig holds all configuration for the landing site.
type SiteConfig struct {
	URL          string // Public base URL for sitemap and robots.txt (default "http://localhost:3000")
	ContactEmail string // Support address behind the mailto link (default "hello@dtrue.online")

	Addr         string // Listen address (default ":3000")
	DatabasePath string // Waitlist SQLite path (default "data/taxmate.db")

	WaitlistCapacity int           // Lifetime-deal spots (default 100)
	StatsCacheTTL    time.Duration // Waitlist count cache TTL (default 1min)

	AnalyticsPath      string        // Analytics SQLite path (default analytics.db next to DatabasePath)
	AnalyticsRetention time.Duration // How long events are kept (default 180 days)
	DisableAnalytics   bool

	AdminPassword     string // Admin login password; admin routes are off when both are empty
	AdminPasswordHash string // bcrypt hash, preferred over AdminPassword
	SessionSecret     string // Required: session encryption secret
	CookieSecure      bool   // Set true for HTTPS

	Meta    meta.Metadata // Head metadata (default meta.TaxMate())
	Entries []faq.Entry   // FAQ entries (default faq.Default())
}

func (c *SiteConfig) setDefaults() {
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.ContactEmail == "" {
		c.ContactEmail = "hello@dtrue.online"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/taxmate.db"
	}
	if c.AnalyticsPath == "" {
		c.AnalyticsPath = filepath.Join(filepath.Dir(c.DatabasePath), "analytics.db")
	}
	if c.AnalyticsRetention == 0 {
		c.AnalyticsRetention = 180 * 24 * time.Hour
	}
	if c.WaitlistCapacity == 0 {
		c.WaitlistCapacity = 100
	}
	if c.StatsCacheTTL == 0 {
		c.StatsCacheTTL = time.Minute
	}
	if c.Meta.Title == "" {
		c.Meta = meta.TaxMate()
	}
	if len(c.Entries) == 0 {
		c.Entries = faq.Default()
	}
}

func (c SiteConfig) adminEnabled() bool {
	return c.AdminPassword != "" || c.AdminPasswordHash != ""
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger sets the structured logger (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}
