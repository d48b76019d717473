package echoServer

import (
	"log/slog"
	"strconv"
	"time"

	"shareit/util/apperr"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// UserIDHeader identifies the acting user on nearly every call. The gateway is
// trusted to have validated it; the server still rejects malformed values.
const UserIDHeader = "X-Sharer-User-Id"

func RegisterMiddlewares(e *echo.Echo) {

	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))

	e.Use(Slog())
}

func Slog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			lat := time.Since(start).Milliseconds()

			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			slog.Info("http",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency_ms", lat,
				"req_id", rid,
				"ip", c.RealIP(),
				"ua", c.Request().UserAgent(),
			)
			return err
		}
	}
}

// RequireUserID extracts the sharer header into the context as "user_id".
func RequireUserID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Request().Header.Get(UserIDHeader)
			if h == "" {
				return apperr.Validationf("%s header is required", UserIDHeader)
			}
			id, err := strconv.ParseInt(h, 10, 64)
			if err != nil || id <= 0 {
				return apperr.Validationf("%s header must be a positive integer", UserIDHeader)
			}
			c.Set("user_id", id)
			return next(c)
		}
	}
}

// OptionalUserID is RequireUserID for routes whose behavior merely changes with
// the caller's identity. Absent header leaves user_id at zero value.
func OptionalUserID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if h := c.Request().Header.Get(UserIDHeader); h != "" {
				id, err := strconv.ParseInt(h, 10, 64)
				if err != nil {
					return apperr.Validationf("%s header must be a positive integer", UserIDHeader)
				}
				c.Set("user_id", id)
			}
			return next(c)
		}
	}
}
