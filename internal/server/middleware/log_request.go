package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
)

// Logger is the subset of the structured logger the middleware needs.
type Logger interface {
	Infow(template string, args ...interface{})
	Errorw(template string, args ...interface{})
}

type LogRequestConfig struct {
	Logger  Logger
	Enabled func(c echo.Context) bool
}

// LogRequest writes one structured line per request.
func LogRequest(config LogRequestConfig) echo.MiddlewareFunc {
	if config.Logger == nil {
		panic("Logger is required to use LogRequest")
	}
	if config.Enabled == nil {
		config.Enabled = func(echo.Context) bool { return true }
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !config.Enabled(c) {
				return next(c)
			}

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			config.Logger.Infow("http request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"took", time.Since(start),
				"request_id", GetRequestID(c.Request().Context()),
				"remote_ip", c.RealIP(),
			)
			return err
		}
	}
}
