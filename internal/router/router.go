// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/ehsanmz/recipe-box/internal/handler"
)

// RegisterRoutes registers routes that do not belong to a specific
// resource. Currently it exposes only a health check, used by load
// balancers and monitoring systems to verify that the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}
