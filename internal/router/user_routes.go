package router

import (
    "github.com/labstack/echo/v4"

    "github.com/linstore/linstore-api/internal/handler"
    "github.com/linstore/linstore-api/internal/middleware"
)

// RegisterUsers registers the account endpoints under /users. The
// unauthenticated operations (registration, login, federated signup,
// password recovery) sit behind the rate limiter; the profile pair
// requires a bearer token. All of them stamp the short edge-cache hint
// the storefront expects.
func RegisterUsers(e *echo.Echo, a *handler.AuthHandler, p *handler.ProfileHandler, rec *handler.RecoveryHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
    g := e.Group("/users", middleware.EdgeCacheHint())

    pub := g.Group("", limiter)
    pub.POST("/registration", a.Register)
    pub.POST("/login", a.Login)
    pub.POST("/googleAuthUser", a.GoogleAuth)
    pub.POST("/passwordForgot", rec.Forgot)
    pub.GET("/checkRecoveryLink/:link", rec.CheckLink)
    pub.POST("/recoveryPassword/:link", rec.Recover)

    auth := g.Group("", middleware.JWTAuth(jwtSecret))
    auth.GET("/userProfile", p.Get)
    auth.PUT("/userProfile", p.Update)
}
