package booking

import (
	"log/slog"
	"net/http"
	"strconv"

	"shareit/model"
	bookingsvc "shareit/service/booking"
	"shareit/util/apperr"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc bookingsvc.Service
	Log *slog.Logger
}

// POST /bookings
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return apperr.Validationf("invalid request body")
	}
	uid, _ := c.Get("user_id").(int64)

	view, err := h.Svc.Create(c.Request().Context(), uid, req.ItemID, req.Start, req.End)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, view)
}

// PATCH /bookings/:id?approved=
func (h *Controller) Approve(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	approved, err := strconv.ParseBool(c.QueryParam("approved"))
	if err != nil {
		return apperr.Validationf("approved must be true or false")
	}
	uid, _ := c.Get("user_id").(int64)

	view, err := h.Svc.Approve(c.Request().Context(), id, uid, approved)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// GET /bookings/:id
func (h *Controller) GetByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	uid, _ := c.Get("user_id").(int64)

	view, err := h.Svc.GetByID(c.Request().Context(), id, uid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// GET /bookings?state=&from=&size=
func (h *Controller) ListByBooker(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	state, from, size, err := listParams(c)
	if err != nil {
		return err
	}

	views, err := h.Svc.ListByBooker(c.Request().Context(), uid, state, from, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emptyIfNil(views))
}

// GET /bookings/owner?state=&from=&size=
func (h *Controller) ListByOwner(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)
	state, from, size, err := listParams(c)
	if err != nil {
		return err
	}

	views, err := h.Svc.ListByOwner(c.Request().Context(), uid, state, from, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emptyIfNil(views))
}

func listParams(c echo.Context) (state string, from, size int, err error) {
	state = c.QueryParam("state")
	if state == "" {
		state = string(model.StateAll)
	}
	from, size = 0, 10
	if v := c.QueryParam("from"); v != "" {
		if from, err = strconv.Atoi(v); err != nil {
			return "", 0, 0, apperr.Validationf("from must be an integer")
		}
	}
	if v := c.QueryParam("size"); v != "" {
		if size, err = strconv.Atoi(v); err != nil {
			return "", 0, 0, apperr.Validationf("size must be an integer")
		}
	}
	return state, from, size, nil
}

func emptyIfNil(views []model.BookingView) []model.BookingView {
	if views == nil {
		return []model.BookingView{}
	}
	return views
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validationf("invalid %s", name)
	}
	return id, nil
}
