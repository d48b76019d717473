package user

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shareit/model"
	"shareit/util/apperr"
	"shareit/util/httpx"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	createFn  func(ctx context.Context, name, email string) (*model.User, error)
	getByIDFn func(ctx context.Context, id int64) (*model.User, error)
	getAllFn  func(ctx context.Context) ([]model.User, error)
	updateFn  func(ctx context.Context, id int64, name, email *string) (*model.User, error)
	deleteFn  func(ctx context.Context, id int64) error
}

func (m *mockService) Create(ctx context.Context, name, email string) (*model.User, error) {
	return m.createFn(ctx, name, email)
}

func (m *mockService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockService) GetAll(ctx context.Context) ([]model.User, error) {
	return m.getAllFn(ctx)
}

func (m *mockService) Update(ctx context.Context, id int64, name, email *string) (*model.User, error) {
	return m.updateFn(ctx, id, name, email)
}

func (m *mockService) Delete(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

func newApp(svc *mockService) *echo.Echo {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := echo.New()
	e.HTTPErrorHandler = httpx.ErrorHandler(log)
	h := &Controller{Svc: svc, Log: log}
	e.POST("/users", h.Create)
	e.GET("/users", h.GetAll)
	e.GET("/users/:id", h.GetByID)
	e.PATCH("/users/:id", h.Update)
	e.DELETE("/users/:id", h.Delete)
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestCreate_Created(t *testing.T) {
	svc := &mockService{createFn: func(ctx context.Context, name, email string) (*model.User, error) {
		return &model.User{ID: 1, Name: name, Email: email}, nil
	}}
	e := newApp(svc)

	w := do(e, http.MethodPost, "/users", `{"name":"Ann","email":"ann@example.com"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	require.JSONEq(t, `{"id":1,"name":"Ann","email":"ann@example.com"}`, w.Body.String())
}

func TestCreate_ConflictBody(t *testing.T) {
	svc := &mockService{createFn: func(ctx context.Context, name, email string) (*model.User, error) {
		return nil, apperr.Conflictf("email %s is already in use", email)
	}}
	e := newApp(svc)

	w := do(e, http.MethodPost, "/users", `{"name":"Ann","email":"ann@example.com"}`)

	require.Equal(t, http.StatusConflict, w.Code)
	require.JSONEq(t, `{"error":"email ann@example.com is already in use"}`, w.Body.String())
}

func TestGetByID_NotFoundBody(t *testing.T) {
	svc := &mockService{getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
		return nil, apperr.NotFoundf("user with id %d not found", id)
	}}
	e := newApp(svc)

	w := do(e, http.MethodGet, "/users/99", "")

	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"error":"user with id 99 not found"}`, w.Body.String())
}

func TestGetByID_BadPathParam(t *testing.T) {
	e := newApp(&mockService{})

	w := do(e, http.MethodGet, "/users/abc", "")

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAll_EmptyIsArray(t *testing.T) {
	svc := &mockService{getAllFn: func(ctx context.Context) ([]model.User, error) {
		return nil, nil
	}}
	e := newApp(svc)

	w := do(e, http.MethodGet, "/users", "")

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `[]`, w.Body.String())
}

func TestUpdate_PartialPayload(t *testing.T) {
	svc := &mockService{updateFn: func(ctx context.Context, id int64, name, email *string) (*model.User, error) {
		require.Nil(t, email)
		require.NotNil(t, name)
		return &model.User{ID: id, Name: *name, Email: "ann@example.com"}, nil
	}}
	e := newApp(svc)

	w := do(e, http.MethodPatch, "/users/1", `{"name":"Anna"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var got model.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, "Anna", got.Name)
	require.Equal(t, "ann@example.com", got.Email)
}

func TestDelete_OK(t *testing.T) {
	var deleted int64
	svc := &mockService{deleteFn: func(ctx context.Context, id int64) error {
		deleted = id
		return nil
	}}
	e := newApp(svc)

	w := do(e, http.MethodDelete, "/users/1", "")

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, int64(1), deleted)
}

func TestUnclassifiedErrorIsInternal(t *testing.T) {
	svc := &mockService{getAllFn: func(ctx context.Context) ([]model.User, error) {
		return nil, io.ErrUnexpectedEOF
	}}
	e := newApp(svc)

	w := do(e, http.MethodGet, "/users", "")

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}
