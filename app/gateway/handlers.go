package gateway

import (
	"strconv"
	"time"

	"shareit/model"
	"shareit/util/apperr"

	"github.com/labstack/echo/v4"
)

func (h *Handlers) CreateUser(c echo.Context) error {
	var req CreateUserReq
	return h.checkAndForward(c, &req)
}

func (h *Handlers) UpdateUser(c echo.Context) error {
	var req UpdateUserReq
	return h.checkAndForward(c, &req)
}

func (h *Handlers) CreateItem(c echo.Context) error {
	var req CreateItemReq
	return h.checkAndForward(c, &req)
}

func (h *Handlers) UpdateItem(c echo.Context) error {
	var req UpdateItemReq
	return h.checkAndForward(c, &req)
}

func (h *Handlers) AddComment(c echo.Context) error {
	var req CommentReq
	return h.checkAndForward(c, &req)
}

func (h *Handlers) SearchItems(c echo.Context) error {
	if err := checkPagination(c); err != nil {
		return err
	}
	return h.Client.Forward(c, nil)
}

func (h *Handlers) CreateBooking(c echo.Context) error {
	var req CreateBookingReq
	body, err := h.decode(c, &req)
	if err != nil {
		return err
	}

	now := time.Now()
	if !req.Start.After(now) {
		return apperr.Validationf("booking start must be in the future")
	}
	if !req.End.After(now) {
		return apperr.Validationf("booking end must be in the future")
	}
	if !req.Start.Before(*req.End) {
		return apperr.Validationf("booking start must be before its end")
	}
	return h.Client.Forward(c, body)
}

func (h *Handlers) ApproveBooking(c echo.Context) error {
	v := c.QueryParam("approved")
	if v == "" {
		return apperr.Validationf("approved parameter is required")
	}
	if _, err := strconv.ParseBool(v); err != nil {
		return apperr.Validationf("approved must be true or false")
	}
	return h.Client.Forward(c, nil)
}

func (h *Handlers) ListBookings(c echo.Context) error {
	if state := c.QueryParam("state"); state != "" {
		if _, ok := model.ParseBookingState(state); !ok {
			return apperr.Validationf("Unknown state: %s", state)
		}
	}
	if err := checkPagination(c); err != nil {
		return err
	}
	return h.Client.Forward(c, nil)
}

func (h *Handlers) CreateRequest(c echo.Context) error {
	var req CreateRequestReq
	return h.checkAndForward(c, &req)
}

func (h *Handlers) ListAllRequests(c echo.Context) error {
	if err := checkPagination(c); err != nil {
		return err
	}
	return h.Client.Forward(c, nil)
}

// checkPagination enforces from >= 0 and size > 0 when the params are present.
func checkPagination(c echo.Context) error {
	if v := c.QueryParam("from"); v != "" {
		from, err := strconv.Atoi(v)
		if err != nil || from < 0 {
			return apperr.Validationf("from must be a non-negative integer")
		}
	}
	if v := c.QueryParam("size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size <= 0 {
			return apperr.Validationf("size must be a positive integer")
		}
	}
	return nil
}
