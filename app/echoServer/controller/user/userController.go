package user

import (
	"log/slog"
	"net/http"
	"strconv"

	"shareit/model"
	usersvc "shareit/service/user"
	"shareit/util/apperr"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc usersvc.Service
	Log *slog.Logger
}

// Create a user
// @Summary      Create user
// @Description  Register a user with a globally unique email
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        payload  body  user.CreateUserReq  true  "User payload"
// @Success      201  {object}  model.User
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string "email already in use"
// @Router       /users [post]
func (h *Controller) Create(c echo.Context) error {
	var req CreateUserReq
	if err := c.Bind(&req); err != nil {
		return apperr.Validationf("invalid request body")
	}

	u, err := h.Svc.Create(c.Request().Context(), req.Name, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, u)
}

// GET /users/:id
func (h *Controller) GetByID(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	u, err := h.Svc.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// GET /users
func (h *Controller) GetAll(c echo.Context) error {
	users, err := h.Svc.GetAll(c.Request().Context())
	if err != nil {
		return err
	}
	if users == nil {
		users = []model.User{}
	}
	return c.JSON(http.StatusOK, users)
}

// PATCH /users/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateUserReq
	if err := c.Bind(&req); err != nil {
		return apperr.Validationf("invalid request body")
	}

	u, err := h.Svc.Update(c.Request().Context(), id, req.Name, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// DELETE /users/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validationf("invalid %s", name)
	}
	return id, nil
}
