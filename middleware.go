package folio

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func (a *App) setupMiddleware() {
	e := a.Echo

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Pre(middleware.RemoveTrailingSlash())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			a.log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		HSTSMaxAge:         31536000,
	}))
}

// httpErrorHandler handles errors that escape a handler. Route handlers
// answer their own failures, so anything reaching here is routing (404, 405)
// or a recovered panic. A panic inside an endpoint still gets that
// endpoint's fixed failure body.
func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	}
	if code < 500 {
		a.Echo.DefaultHTTPErrorHandler(err, c)
		return
	}
	a.log.Error("server error", zap.Error(err), zap.String("uri", c.Request().RequestURI))

	var werr error
	switch c.Path() {
	case "/api/devlog":
		werr = c.JSON(code, errorBody{Error: msgDevlogFailed})
	case "/api/projects":
		werr = c.JSON(code, errorBody{Error: msgProjectsFailed})
	case "/api/feed.xml":
		werr = c.String(code, msgFeedFailed)
	case "/sitemap.xml":
		werr = c.String(code, msgSitemapFailed)
	default:
		a.Echo.DefaultHTTPErrorHandler(err, c)
		return
	}
	if werr != nil {
		a.log.Error("write error response", zap.Error(werr))
	}
}
