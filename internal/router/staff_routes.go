package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Camilo-marin10/restaurante/internal/handler"
	"github.com/Camilo-marin10/restaurante/internal/middleware"
	"github.com/Camilo-marin10/restaurante/internal/model"
)

// RegisterStaff wires the staff-only endpoints under /v1/staff. Every
// route requires a valid token carrying the STAFF role.
func RegisterStaff(e *echo.Echo, h *handler.StaffHandler, jwtSecret string) {
	g := e.Group("/v1/staff")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleStaff))

	// Floor plan.
	g.GET("/tables", h.ListTables)
	g.POST("/tables", h.CreateTable)
	g.PUT("/tables/:id", h.UpdateTable)
	g.DELETE("/tables/:id", h.DeleteTable)
	g.GET("/zones", h.ListZones)

	// Weekly schedule.
	g.GET("/hours", h.ListHours)
	g.PUT("/hours/:weekday", h.UpdateHours)

	// Reservation book.
	g.GET("/reservations", h.ListReservations)
	g.POST("/reservations", h.CreateReservation)
	g.GET("/reservations/code/:code", h.GetReservationByCode)
	g.GET("/reservations/:id", h.GetReservation)
	g.PUT("/reservations/:id", h.UpdateReservation)
	g.PATCH("/reservations/:id/status", h.UpdateReservationStatus)
	g.DELETE("/reservations/:id", h.DeleteReservation)

	// Customer accounts, booking form support and daily overview.
	g.GET("/customers", h.SearchCustomers)
	g.POST("/customers", h.CreateCustomer)
	g.PUT("/customers/:id", h.UpdateCustomer)
	g.DELETE("/customers/:id", h.DeleteCustomer)
	g.GET("/dashboard", h.Dashboard)
	g.POST("/sweep", h.RunSweep)
}
