package router

import (
    "github.com/labstack/echo/v4"

    "github.com/linstore/linstore-api/internal/handler"
    "github.com/linstore/linstore-api/internal/middleware"
    "github.com/linstore/linstore-api/internal/model"
)

// RegisterCatalog registers the public catalog endpoints and the
// admin-only brand/type creation. Public GETs go through the Redis
// response cache; creation requires a bearer token with the Admin role.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, jwtSecret string, cache echo.MiddlewareFunc) {
    admin := []echo.MiddlewareFunc{
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole(model.RoleAdmin),
    }

    e.GET("/filter", h.Filter, cache)

    e.GET("/brands", h.Brands, cache)
    e.GET("/brands/:id", h.Brand, cache)
    e.POST("/brands", h.CreateBrand, admin...)

    e.GET("/types", h.Types, cache)
    e.GET("/types/:id", h.Type, cache)
    e.POST("/types", h.CreateType, admin...)

    e.GET("/search/shortSearch", h.ShortSearch, cache)
}
