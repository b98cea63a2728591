package portfolio

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/eringen/portfolio/contact"
	"github.com/eringen/portfolio/content"
)

// Content backends.
const (
	BackendSanity = "sanity"
	BackendSQLite = "sqlite"
)

// SiteConfig holds all configuration for the portfolio site.
type SiteConfig struct {
	Name        string `mapstructure:"name"`                 // Site name (default "Portfolio")
	URL         string `mapstructure:"url" validate:"url"`   // Canonical URL (default "http://localhost:3000")
	Description string `mapstructure:"description"`          // Site description for RSS and meta tags
	Author      string `mapstructure:"author"`               // Author name for JSON-LD
	Addr        string `mapstructure:"addr"`                 // Listen address (default ":3000")

	// ContentBackend selects the Repository: "sanity" (default) or "sqlite".
	ContentBackend string `mapstructure:"content_backend" validate:"oneof=sanity sqlite"`

	SanityProjectID  string        `mapstructure:"sanity_project_id"`  // required by the sanity backend
	SanityDataset    string        `mapstructure:"sanity_dataset"`     // default "production"
	SanityAPIVersion string        `mapstructure:"sanity_api_version"` // default "2023-05-03"
	SanityUseCDN     bool          `mapstructure:"sanity_use_cdn"`
	SanityToken      string        `mapstructure:"sanity_token"`
	SanityTimeout    time.Duration `mapstructure:"sanity_timeout"` // default 10s

	SnapshotPath string `mapstructure:"snapshot_path"` // SQLite snapshot (default "data/content.db")

	ResendAPIKey     string   `mapstructure:"resend_api_key"`
	ContactFrom      string   `mapstructure:"contact_from"`
	ContactTo        []string `mapstructure:"contact_to" validate:"required_with=ResendAPIKey,dive,email"`
	ContactRateLimit int      `mapstructure:"contact_rate_limit"` // messages per IP per minute (default 5)

	SessionSecret string `mapstructure:"session_secret" validate:"required,min=16"`
	CookieSecure  bool   `mapstructure:"cookie_secure"` // Set true for HTTPS

	LogLevel  string `mapstructure:"log_level"`                                // default "info"
	LogFormat string `mapstructure:"log_format" validate:"oneof=json console"` // default "json"
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Portfolio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentBackend == "" {
		c.ContentBackend = BackendSanity
	}
	if c.SanityDataset == "" {
		c.SanityDataset = "production"
	}
	if c.SanityTimeout == 0 {
		c.SanityTimeout = 10 * time.Second
	}
	if c.SnapshotPath == "" {
		c.SnapshotPath = "data/content.db"
	}
	if c.ContactFrom == "" {
		c.ContactFrom = "Portfolio Contact <noreply@localhost>"
	}
	if c.ContactRateLimit == 0 {
		c.ContactRateLimit = 5
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate applies defaults and checks the configuration.
func (c *SiteConfig) Validate() error {
	c.setDefaults()
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("portfolio: invalid config: %w", err)
	}
	return nil
}

// SanityClientConfig returns the content client settings of the config,
// with defaults applied.
func (c SiteConfig) SanityClientConfig() content.ClientConfig {
	c.setDefaults()
	return content.ClientConfig{
		ProjectID:  c.SanityProjectID,
		Dataset:    c.SanityDataset,
		APIVersion: c.SanityAPIVersion,
		UseCDN:     c.SanityUseCDN,
		Token:      c.SanityToken,
		Timeout:    c.SanityTimeout,
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithRepository serves content from repo instead of the configured backend.
func WithRepository(repo content.Repository) Option {
	return func(a *App) {
		a.Repo = repo
	}
}

// WithSender delivers contact messages through s instead of Resend.
func WithSender(s contact.Sender) Option {
	return func(a *App) {
		a.sender = s
	}
}

// WithLogger replaces the logger built from LogLevel and LogFormat.
func WithLogger(l zerolog.Logger) Option {
	return func(a *App) {
		a.Log = l
		a.customLogger = true
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
