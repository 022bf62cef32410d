package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing

    "github.com/linstore/linstore-api/internal/handler" // handlers implementing the endpoints
)

// RegisterRoutes registers routes that do not belong to a feature group.
// Currently that is only the health check used by load balancers and
// monitoring to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}
