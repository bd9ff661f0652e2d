package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Camilo-marin10/restaurante/internal/handler"
	"github.com/Camilo-marin10/restaurante/internal/middleware"
	"github.com/Camilo-marin10/restaurante/internal/model"
)

// RegisterCustomer wires the self-service endpoints under
// /v1/reservations for authenticated customers.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, jwtSecret string) {
	g := e.Group("/v1/reservations")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleCustomer))

	g.POST("", h.Create)
	g.GET("", h.ListMine)
	g.GET("/:id", h.Get)
	g.DELETE("/:id", h.Cancel)
}
