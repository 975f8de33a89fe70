package rest

import (
	"context"
	"net/http"
	"time"

	"smartPricer/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ResponseError is the plain error envelope shared by all handlers.
type ResponseError struct {
	Message string `json:"message"`
}

type (
	UserHandler struct {
		validate    *validator.Validate
		userService UserService
		timeout     time.Duration
	}

	UserService interface {
		Register(ctx context.Context, user *domain.User) (domain.User, error)
		Login(ctx context.Context, email, password string) (string, domain.User, error)
	}

	RegisterRequest struct {
		FullName string `json:"full_name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string      `json:"token"`
		User  domain.User `json:"user"`
	}
)

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		validate:    validator.New(),
		userService: svc,
		timeout:     10 * time.Second,
	}
}

func (h *UserHandler) Register(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	user := domain.User{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	}

	created, err := h.userService.Register(ctx, &user)
	if err != nil {
		return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(created))
}

func (h *UserHandler) Login(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	token, user, err := h.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(LoginResponse{
		Token: token,
		User:  user,
	}))
}
