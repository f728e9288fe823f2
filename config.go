package soundfolio

import "time"

// Config holds all configuration for a soundfolio server.
type Config struct {
	Addr         string // Listen address (default ":5000")
	DatabasePath string // SQLite path (default "data/soundfolio.db")
	UploadsDir   string // Directory for uploaded files (default "uploads")
	PublicPrefix string // URL prefix uploads are served under (default "/uploads")

	ContentCacheTTL time.Duration // Read cache TTL (default 5min)

	WriteLimit       int           // Mutating requests allowed per IP per window (default 60)
	WriteLimitWindow time.Duration // Rate limit window (default 1min)
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":5000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/soundfolio.db"
	}
	if c.UploadsDir == "" {
		c.UploadsDir = "uploads"
	}
	if c.PublicPrefix == "" {
		c.PublicPrefix = "/uploads"
	}
	if c.ContentCacheTTL == 0 {
		c.ContentCacheTTL = 5 * time.Minute
	}
	if c.WriteLimit == 0 {
		c.WriteLimit = 60
	}
	if c.WriteLimitWindow == 0 {
		c.WriteLimitWindow = time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes, before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}
