// Package portfolio serves a personal portfolio site built with Go, Echo, and
// templ. Articles and works come from a headless content store; each detail
// page is paired with related items ranked by category and tag similarity, and
// the contact form is relayed to the owner by email.
//
// Users provide their own templ templates via the ViewFuncs struct,
// and portfolio handles the handler logic, middleware, and content access.
package portfolio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eringen/portfolio/contact"
	"github.com/eringen/portfolio/content"
	"github.com/eringen/portfolio/related"
)

// HomeItems is the number of articles and works shown on the home page.
const HomeItems = 3

const shutdownTimeout = 10 * time.Second

// ViewFuncs holds user-provided templ components that the app calls when
// rendering pages. A nil page func leaves its route unregistered; NotFound
// and ServerError fall back to plain text.
type ViewFuncs struct {
	Home        func(data HomeData) templ.Component
	Articles    func(data ArticlesData) templ.Component
	Article     func(data ArticleData) templ.Component
	Works       func(data WorksData) templ.Component
	Work        func(data WorkData) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

// App is the central portfolio application. It wires together the content
// repository, ranker, contact relay, handlers, middleware, and templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Repo   content.Repository
	Ranker *related.Ranker
	Relay  *contact.Relay
	Views  ViewFuncs
	Log    zerolog.Logger

	sender         contact.Sender
	contactLimiter *RateLimiter
	customRoutes   []func(*App)
	staticDir      string
	customLogger   bool
	closers        []io.Closer
}

// New creates a new App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = goJSONSerializer{}

	a := &App{
		Config:    cfg,
		Echo:      e,
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}
	if !a.customLogger {
		a.Log = NewLogger(cfg.LogLevel, cfg.LogFormat, nil)
	}

	return a
}

// Setup validates the configuration, opens the content backend, and
// registers middleware and routes. Start calls it; tests call it directly
// and drive a.Echo.
func (a *App) Setup() error {
	if err := a.Config.Validate(); err != nil {
		return err
	}

	if a.Repo == nil {
		repo, err := a.openRepository()
		if err != nil {
			return fmt.Errorf("portfolio: open content: %w", err)
		}
		a.Repo = repo
	}
	a.Ranker = related.New(a.Repo, a.Repo)

	if a.sender == nil && a.Config.ResendAPIKey != "" {
		a.sender = contact.NewResendSender(a.Config.ResendAPIKey)
	}
	if a.sender != nil {
		a.Relay = contact.NewRelay(a.sender, a.Config.ContactFrom, a.Config.ContactTo, a.Log)
		a.contactLimiter = NewRateLimiter(a.Config.ContactRateLimit, time.Minute)
	} else {
		a.Log.Warn().Msg("no email sender configured, contact form disabled")
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start sets the app up and serves until ctx is canceled, then shuts the
// server down gracefully.
func (a *App) Start(ctx context.Context) error {
	if err := a.Setup(); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info().Str("addr", a.Config.Addr).Str("backend", a.Config.ContentBackend).Msg("server starting")
		if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.Log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("portfolio: shutdown: %w", err)
	}
	return nil
}

func (a *App) openRepository() (content.Repository, error) {
	switch a.Config.ContentBackend {
	case BackendSQLite:
		store, err := content.NewSQLiteStore(a.Config.SnapshotPath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store)
		return store, nil
	default:
		return content.NewClient(a.Config.SanityClientConfig(),
			content.WithLogger(a.Log.With().Str("component", "content").Logger()))
	}
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/healthz", handleHealthz)
	e.GET("/metrics", echo.WrapHandler(metricsHandler()))

	api := e.Group("/api")
	api.GET("/blogs", a.handleAPIArticles)
	api.GET("/blogs/:slug", a.handleAPIArticle)
	api.GET("/projects", a.handleAPIWorks)
	api.GET("/projects/:slug", a.handleAPIWork)
	api.GET("/categories", handleAPICategories)

	if a.Relay != nil {
		api.POST("/contact", a.handleAPIContact)
		e.POST("/contact/", a.handleContactForm)
	}

	if a.Views.Home != nil {
		e.GET("/", a.handleHome)
	}
	if a.Views.Articles != nil {
		e.GET("/blogs/", a.handleArticles)
	}
	if a.Views.Article != nil {
		e.GET("/blog/:slug/", a.handleArticle)
	}
	if a.Views.Works != nil {
		e.GET("/projects/", a.handleWorks)
	}
	if a.Views.Work != nil {
		e.GET("/project/:slug/", a.handleWork)
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.contactLimiter != nil {
		a.contactLimiter.Close()
	}
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
