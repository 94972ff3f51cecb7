package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/productmgmt/product-api/internal/core/domain"
	"github.com/productmgmt/product-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// Login exchanges a username/password pair for a bearer token. Any rejected
// pair gets a bare 401 so callers cannot tell which field was wrong.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	issued, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return c.NoContent(http.StatusUnauthorized)
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{Token: issued.Token, Expires: issued.ExpiresAt})
}
