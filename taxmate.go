// Package taxmate serves the TaxMate landing page: document metadata, the
// FAQ accordion, and the waitlist signup behind it.
//
// Pages are templ components supplied through ViewFuncs; the views package
// ships the defaults. The accordion is rendered server-side and swapped in
// place by htmx or the embedded faq.js, with plain links as the fallback, so
// its state lives in the URL rather than in the server.
package taxmate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/dtrue/taxmate/analytics"
)

// ViewFuncs holds the templ components the handlers render.
type ViewFuncs struct {
	Home           func(page HomePage) templ.Component
	FAQSection     func(v FAQView) templ.Component
	WaitlistForm   func(form WaitlistForm) templ.Component
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminDashboard func(page AdminPage) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// App wires together the store, cache, handlers, middleware, and views.
type App struct {
	Config    SiteConfig
	Echo      *echo.Echo
	Store     *Store
	Stats     *StatsCache
	Analytics *analytics.Store // nil when Config.DisableAnalytics is set
	Views     ViewFuncs
	Logger    *slog.Logger

	loginLimiter  *Limiter
	signupLimiter *Limiter
	stopCleanup   func()
	ogImage       ogImage
	customRoutes  []func(*App)
	staticDir     string
	initialized   bool
}

// New creates an App with the given configuration and views.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		Logger:    slog.Default(),
		staticDir: "public",
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init opens the database and registers middleware and routes. Start calls
// it; tests call it directly and drive a.Echo as an http.Handler.
func (a *App) Init() error {
	if a.initialized {
		return nil
	}
	if a.Config.SessionSecret == "" {
		return errors.New("taxmate: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("taxmate: init store: %w", err)
	}
	a.Store = store
	a.Stats = NewStatsCache(a.Store, a.Config.StatsCacheTTL, a.Config.WaitlistCapacity)

	if !a.Config.DisableAnalytics {
		as, err := analytics.NewStore(a.Config.AnalyticsPath)
		if err != nil {
			a.Store.Close()
			return fmt.Errorf("taxmate: init analytics: %w", err)
		}
		a.Analytics = as
		a.stopCleanup = as.StartCleanupScheduler(a.Config.AnalyticsRetention, 24*time.Hour, a.Logger)
	}

	a.loginLimiter = NewLimiter(5, time.Minute)
	a.signupLimiter = NewLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	a.initialized = true
	return nil
}

// Start initializes the app and serves until the server is closed.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	a.Logger.Info("listening", "addr", a.Config.Addr, "url", a.Config.URL, "admin", a.Config.adminEnabled())
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Run is Start with graceful shutdown when ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() { errc <- a.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("taxmate: shutdown: %w", err)
	}
	return <-errc
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/public/site.css", embeddedFile("site.css", "text/css; charset=utf-8"))
	e.GET("/public/reveal.js", embeddedFile("reveal.js", "text/javascript; charset=utf-8"))
	e.GET("/public/faq.js", embeddedFile("faq.js", "text/javascript; charset=utf-8"))
	e.Static("/public", a.staticDir)

	e.GET("/favicon.svg", embeddedFile("favicon.svg", "image/svg+xml"))
	e.GET("/og-image.svg", embeddedFile("og-image.svg", "image/svg+xml"))
	e.GET("/og-image.png", a.handleOGImage)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)

	e.GET("/", a.handleHome)
	e.GET("/faq/", a.handleFAQ)
	e.POST("/waitlist/", a.handleJoin)

	if !a.Config.adminEnabled() {
		return
	}
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.DELETE("/admin/signup/:id/", a.handleAdminDelete)
	e.POST("/admin/signup/:id/delete/", a.handleAdminDelete)
	e.GET("/admin/export.csv", a.handleAdminExport)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.signupLimiter != nil {
		a.signupLimiter.Stop()
	}
	if a.stopCleanup != nil {
		a.stopCleanup()
		a.stopCleanup = nil
	}
	if a.Analytics != nil {
		if err := a.Analytics.Close(); err != nil {
			a.Logger.Warn("close analytics", "err", err)
		}
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
