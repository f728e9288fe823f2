package soundfolio

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func (a *App) setupMiddleware() {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			c.Logger().Infof("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	e.Use(middleware.Recover())

	// The browser frontend is served from a different origin.
	e.Use(middleware.CORS())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, a.Config.PublicPrefix+"/")
		},
	}))

	e.Use(a.rateLimitWrites)
}

// rateLimitWrites rejects mutating requests from IPs that exceeded the
// per-window submission budget. Reads are never limited.
func (a *App) rateLimitWrites(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		switch c.Request().Method {
		case http.MethodPost, http.MethodDelete:
			if !a.writeLimiter.allow(c.RealIP()) {
				return c.JSON(http.StatusTooManyRequests, map[string]string{"message": "Too many requests. Try again later."})
			}
		}
		return next(c)
	}
}

// httpErrorHandler renders every error as a {message} JSON body. Validation
// failures carry their own message at 400; server-class faults are logged
// with their concrete cause and reported generically.
func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var ve ValidationError
	if errors.As(err, &ve) {
		_ = c.JSON(http.StatusBadRequest, map[string]string{"message": ve.Message})
		return
	}
	code := http.StatusInternalServerError
	message := "Internal Server Error"
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		}
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
	}
	_ = c.JSON(code, map[string]string{"message": message})
}
