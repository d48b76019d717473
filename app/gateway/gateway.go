// Package gateway is the request-validating front of the platform: it checks
// headers, bodies, and query parameters, then forwards calls unchanged to the
// backend service.
package gateway

import (
	"encoding/json"
	"io"
	"log/slog"
	"strconv"
	"time"

	"shareit/util/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const UserIDHeader = "X-Sharer-User-Id"

type Handlers struct {
	Client *Client
	V      *validator.Validate
	Log    *slog.Logger
}

func RegisterMiddlewares(e *echo.Echo) {

	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))

	e.Use(accessLog())
}

func accessLog() echo.MiddlewareFunc {
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
			)
			return err
		}
	}
}

func Register(e *echo.Echo, h *Handlers) {
	e.POST("/users", h.CreateUser)
	e.GET("/users", h.forward)
	e.GET("/users/:id", h.forward)
	e.PATCH("/users/:id", h.UpdateUser)
	e.DELETE("/users/:id", h.forward)

	items := e.Group("/items")
	items.GET("/search", h.SearchItems)
	items.GET("/:id", h.forward)
	items.POST("", h.CreateItem, requireUserID())
	items.PATCH("/:id", h.UpdateItem, requireUserID())
	items.GET("", h.forward, requireUserID())
	items.POST("/:id/comment", h.AddComment, requireUserID())

	bookings := e.Group("/bookings", requireUserID())
	bookings.POST("", h.CreateBooking)
	bookings.GET("/owner", h.ListBookings)
	bookings.PATCH("/:id", h.ApproveBooking)
	bookings.GET("/:id", h.forward)
	bookings.GET("", h.ListBookings)

	requests := e.Group("/requests", requireUserID())
	requests.POST("", h.CreateRequest)
	requests.GET("", h.forward)
	requests.GET("/all", h.ListAllRequests)
	requests.GET("/:id", h.forward)
}

func requireUserID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			v := c.Request().Header.Get(UserIDHeader)
			if v == "" {
				return apperr.Validationf("%s header is required", UserIDHeader)
			}
			if id, err := strconv.ParseInt(v, 10, 64); err != nil || id <= 0 {
				return apperr.Validationf("%s header must be a positive integer", UserIDHeader)
			}
			return next(c)
		}
	}
}

// forward passes a body-less request straight through.
func (h *Handlers) forward(c echo.Context) error {
	return h.Client.Forward(c, nil)
}

// checkAndForward decodes the body into req, validates it, and forwards the
// original bytes so the backend sees exactly what the caller sent.
func (h *Handlers) checkAndForward(c echo.Context, req any) error {
	body, err := h.decode(c, req)
	if err != nil {
		return err
	}
	return h.Client.Forward(c, body)
}

// decode returns the raw body after structural validation.
func (h *Handlers) decode(c echo.Context, req any) ([]byte, error) {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, apperr.Validationf("failed to read request body")
	}
	if err := json.Unmarshal(body, req); err != nil {
		return nil, apperr.Validationf("invalid request body")
	}
	if err := h.V.Struct(req); err != nil {
		h.Log.Warn("validation failed", "path", c.Path(), "err", err)
		return nil, apperr.Validationf("%s", err.Error())
	}
	return body, nil
}
