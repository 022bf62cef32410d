package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func requestWithRole(role string, mw echo.MiddlewareFunc) *httptest.ResponseRecorder {
	e := echo.New()
	inject := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if role != "" {
				SetIdentity(c, Identity{UserID: 1, Role: role})
			}
			return next(c)
		}
	}
	e.POST("/admin", func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	}, inject, mw)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin", nil))
	return rec
}

func TestRequireRoleAllowsListedRole(t *testing.T) {
	rec := requestWithRole("Admin", RequireRole("Admin"))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRequireRoleRejectsOtherRole(t *testing.T) {
	rec := requestWithRole("User", RequireRole("Admin"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleRejectsMissingIdentity(t *testing.T) {
	rec := requestWithRole("", RequireRole("Admin"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestEdgeCacheHintSetsHeader(t *testing.T) {
	e := echo.New()
	e.GET("/p", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, EdgeCacheHint())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/p", nil))
	assert.Equal(t, "s-max-age=1, stale-while-revalidate", rec.Header().Get("Cache-Control"))
}
