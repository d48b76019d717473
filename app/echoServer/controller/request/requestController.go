package request

import (
	"log/slog"
	"net/http"
	"strconv"

	"shareit/model"
	requestsvc "shareit/service/request"
	"shareit/util/apperr"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc requestsvc.Service
	Log *slog.Logger
}

// POST /requests
func (h *Controller) Create(c echo.Context) error {
	var req CreateRequestReq
	if err := c.Bind(&req); err != nil {
		return apperr.Validationf("invalid request body")
	}
	uid, _ := c.Get("user_id").(int64)

	view, err := h.Svc.Create(c.Request().Context(), uid, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, view)
}

// GET /requests
func (h *Controller) GetUserRequests(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	views, err := h.Svc.GetUserRequests(c.Request().Context(), uid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emptyIfNil(views))
}

// GET /requests/all?from=&size=
func (h *Controller) GetAll(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	from, size := 0, 10
	var err error
	if v := c.QueryParam("from"); v != "" {
		if from, err = strconv.Atoi(v); err != nil {
			return apperr.Validationf("from must be an integer")
		}
	}
	if v := c.QueryParam("size"); v != "" {
		if size, err = strconv.Atoi(v); err != nil {
			return apperr.Validationf("size must be an integer")
		}
	}

	views, err := h.Svc.GetAll(c.Request().Context(), uid, from, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emptyIfNil(views))
}

// GET /requests/:id
func (h *Controller) GetByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return apperr.Validationf("invalid id")
	}
	uid, _ := c.Get("user_id").(int64)

	view, err := h.Svc.GetByID(c.Request().Context(), id, uid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

func emptyIfNil(views []model.ItemRequestView) []model.ItemRequestView {
	if views == nil {
		return []model.ItemRequestView{}
	}
	return views
}
