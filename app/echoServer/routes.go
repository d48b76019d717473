package echoServer

import (
	"shareit/app/echoServer/controller/booking"
	"shareit/app/echoServer/controller/item"
	"shareit/app/echoServer/controller/request"
	"shareit/app/echoServer/controller/user"

	"github.com/labstack/echo/v4"
)

type C struct {
	User    *user.Controller
	Item    *item.Controller
	Booking *booking.Controller
	Request *request.Controller
}

func Register(e *echo.Echo, c C) {
	// Users are managed without the sharer header.
	e.POST("/users", c.User.Create)
	e.GET("/users", c.User.GetAll)
	e.GET("/users/:id", c.User.GetByID)
	e.PATCH("/users/:id", c.User.Update)
	e.DELETE("/users/:id", c.User.Delete)

	items := e.Group("/items")
	items.GET("/search", c.Item.Search)
	items.GET("/:id", c.Item.GetByID, OptionalUserID())
	items.POST("", c.Item.Create, RequireUserID())
	items.PATCH("/:id", c.Item.Update, RequireUserID())
	items.GET("", c.Item.ListByOwner, RequireUserID())
	items.POST("/:id/comment", c.Item.AddComment, RequireUserID())

	bookings := e.Group("/bookings", RequireUserID())
	bookings.POST("", c.Booking.Create)
	bookings.GET("/owner", c.Booking.ListByOwner)
	bookings.PATCH("/:id", c.Booking.Approve)
	bookings.GET("/:id", c.Booking.GetByID)
	bookings.GET("", c.Booking.ListByBooker)

	requests := e.Group("/requests", RequireUserID())
	requests.POST("", c.Request.Create)
	requests.GET("", c.Request.GetUserRequests)
	requests.GET("/all", c.Request.GetAll)
	requests.GET("/:id", c.Request.GetByID)
}
