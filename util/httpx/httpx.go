// Package httpx provides the HTTP error mapping shared by the gateway and the
// backend server.
package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"shareit/util/apperr"

	"github.com/labstack/echo/v4"
)

// ErrorHandler maps business errors to HTTP responses in one place. Every
// error body is {"error": <message>} with the message exposed verbatim.
func ErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		msg := err.Error()

		switch apperr.CodeOf(err) {
		case apperr.NotFound:
			status = http.StatusNotFound
		case apperr.Validation:
			status = http.StatusBadRequest
		case apperr.Conflict:
			status = http.StatusConflict
		case apperr.Forbidden:
			status = http.StatusForbidden
		default:
			var he *echo.HTTPError
			if errors.As(err, &he) {
				status = he.Code
				if m, ok := he.Message.(string); ok {
					msg = m
				} else {
					msg = http.StatusText(he.Code)
				}
			} else {
				msg = "internal server error"
			}
		}

		if status >= http.StatusInternalServerError {
			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			log.Error("request failed",
				"err", err,
				"req_id", rid,
				"path", c.Path(),
				"method", c.Request().Method,
			)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, echo.Map{"error": msg})
	}
}
