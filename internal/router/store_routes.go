package router

import (
    "github.com/labstack/echo/v4"

    "github.com/linstore/linstore-api/internal/handler"
    "github.com/linstore/linstore-api/internal/middleware"
)

// RegisterStore registers the per-user store endpoints: basket, saved
// items and recently-viewed history. Everything here requires a bearer
// token; the basket routes also stamp the edge-cache hint.
func RegisterStore(e *echo.Echo, b *handler.BasketHandler, s *handler.SaveListHandler, o *handler.OldViewsHandler, jwtSecret string) {
    auth := middleware.JWTAuth(jwtSecret)

    basket := e.Group("/basket", auth, middleware.EdgeCacheHint())
    basket.GET("/basketUser", b.Get)
    basket.POST("/basketUser", b.Set)
    basket.POST("/dropBasketUser", b.Drop)

    save := e.Group("/saveList", auth)
    save.GET("", s.Get)
    save.GET("/:id", s.Check)
    save.POST("", s.Add)
    save.DELETE("/:id", s.Remove)

    views := e.Group("/oldViews", auth)
    views.GET("", o.Get)
    views.PUT("", o.Replace)
    views.POST("", o.Add)
}
