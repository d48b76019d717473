package item

import (
	"log/slog"
	"net/http"
	"strconv"

	"shareit/model"
	itemsvc "shareit/service/item"
	"shareit/util/apperr"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc itemsvc.Service
	Log *slog.Logger
}

// POST /items
func (h *Controller) Create(c echo.Context) error {
	var req CreateItemReq
	if err := c.Bind(&req); err != nil {
		return apperr.Validationf("invalid request body")
	}
	uid, _ := c.Get("user_id").(int64)

	it, err := h.Svc.Create(c.Request().Context(), uid, itemsvc.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		RequestID:   req.RequestID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, it)
}

// PATCH /items/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateItemReq
	if err := c.Bind(&req); err != nil {
		return apperr.Validationf("invalid request body")
	}
	uid, _ := c.Get("user_id").(int64)

	it, err := h.Svc.Update(c.Request().Context(), id, uid, itemsvc.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, it)
}

// GET /items/:id
// The sharer header is optional here; owners get last/next booking info.
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

// GET /items
func (h *Controller) ListByOwner(c echo.Context) error {
	uid, _ := c.Get("user_id").(int64)

	views, err := h.Svc.ListByOwner(c.Request().Context(), uid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// GET /items/search?text=&from=&size=
func (h *Controller) Search(c echo.Context) error {
	from, size, err := pagination(c)
	if err != nil {
		return err
	}

	items, err := h.Svc.Search(c.Request().Context(), c.QueryParam("text"), from, size)
	if err != nil {
		return err
	}
	if items == nil {
		items = []model.Item{}
	}
	return c.JSON(http.StatusOK, items)
}

// POST /items/:id/comment
func (h *Controller) AddComment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req CommentReq
	if err := c.Bind(&req); err != nil {
		return apperr.Validationf("invalid request body")
	}
	uid, _ := c.Get("user_id").(int64)

	comment, err := h.Svc.AddComment(c.Request().Context(), id, uid, req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, comment)
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validationf("invalid %s", name)
	}
	return id, nil
}

func pagination(c echo.Context) (from, size int, err error) {
	from, size = 0, 10
	if v := c.QueryParam("from"); v != "" {
		if from, err = strconv.Atoi(v); err != nil {
			return 0, 0, apperr.Validationf("from must be an integer")
		}
	}
	if v := c.QueryParam("size"); v != "" {
		if size, err = strconv.Atoi(v); err != nil {
			return 0, 0, apperr.Validationf("size must be an integer")
		}
	}
	return from, size, nil
}
