package middleware

import "github.com/labstack/echo/v4"

// EdgeCacheHint stamps the short edge-caching policy the storefront relies
// on: responses may be served stale for a second while the edge
// revalidates. Applied to the profile and basket endpoints, whose payloads
// are cheap to rebuild but user-specific.
func EdgeCacheHint() echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            c.Response().Header().Set("Cache-Control", "s-max-age=1, stale-while-revalidate")
            return next(c)
        }
    }
}
