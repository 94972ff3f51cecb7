package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const welcomeMessage = "Bem-vindo à Product Management API!"

var endpoints = []string{
	"GET /health",
	"GET /health/ready",
	"POST /login",
	"GET /products",
	"GET /products/{id}",
	"POST /products",
	"PUT /products/{id}",
	"DELETE /products/{id}",
	"GET /metrics",
}

type welcomeResponse struct {
	Message   string   `json:"message"`
	Endpoints []string `json:"endpoints"`
}

// Home handles GET /, a discovery document listing the available routes.
func Home(c echo.Context) error {
	return c.JSON(http.StatusOK, welcomeResponse{
		Message:   welcomeMessage,
		Endpoints: endpoints,
	})
}
