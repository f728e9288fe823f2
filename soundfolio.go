// Package soundfolio is the persistence backend for a single-user content
// site: one owner profile plus published posts carrying uploaded audio and
// source attachments, stored in SQLite and exposed as a JSON API.
package soundfolio

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
)

// App is the central soundfolio application. It wires together the record
// store, blob store, cache, limiter, middleware, and routes.
type App struct {
	Config Config
	Echo   *echo.Echo
	Store  *Store
	Blobs  *BlobStore
	Cache  *ContentCache

	writeLimiter *writeLimiter
	customRoutes []func(*App)
}

// New creates a new App with the given configuration.
func New(cfg Config, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes dependencies, middleware, and routes, then starts the
// server.
func (a *App) Start() error {
	if err := a.init(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// init wires dependencies and routes without binding the listen socket, so
// tests can drive the Echo instance directly.
func (a *App) init() error {
	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("soundfolio: init store: %w", err)
	}
	a.Store = store
	a.Blobs = NewBlobStore(a.Config.UploadsDir, a.Config.PublicPrefix)
	a.Cache = NewContentCache(store, a.Config.ContentCacheTTL)
	a.writeLimiter = newWriteLimiter(a.Config.WriteLimit, a.Config.WriteLimitWindow)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Uploaded blobs are served read-only under the public prefix; the
	// reference paths stored on posts resolve against this route.
	e.Static(a.Config.PublicPrefix, a.Config.UploadsDir)

	e.POST("/api/profile", a.handleSaveProfile)
	e.GET("/api/profile", a.handleGetProfile)
	e.POST("/api/posts", a.handlePublishPost)
	e.GET("/api/posts", a.handleListPosts)
	e.DELETE("/api/posts/:id", a.handleDeletePost)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if
// empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally
// exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("soundfolio: required environment variable %s is not set", key)
	}
	return v
}
