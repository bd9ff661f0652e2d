// Package router registers the API's HTTP routes.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/Camilo-marin10/restaurante/internal/config"
	"github.com/Camilo-marin10/restaurante/internal/handler"
	"github.com/Camilo-marin10/restaurante/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the /v1/auth endpoints plus the protected /v1/me
// and /v1/auth/logout routes.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout, middleware.JWTAuth(jwtSecret))

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic exposes the availability lookup to guests. The Redis
// response cache sits in front of it because the endpoint is hit for
// every table picker render.
func RegisterPublic(e *echo.Echo, av *handler.AvailabilityHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	e.GET("/v1/availability", av.Availability, middleware.NewRedisCache(cacheCfg, rdb))
	e.GET("/v1/booking-options", av.BookingOptions)
}
