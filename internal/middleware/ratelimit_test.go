package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/linstore/linstore-api/internal/config"
)

func TestTokenBucketDisabledWithoutClient(t *testing.T) {
	mw := NewTokenBucket(config.LoadRateLimitConfig(), nil)
	e := echo.New()
	e.POST("/users/login", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, mw)

	// Without Redis the limiter must stand aside, not reject.
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users/login", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestBuildRateKeyStrategies(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/users/login", nil)
	req.RemoteAddr = "203.0.113.9:1234"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/users/login")

	ipKey := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip"}, c)
	routeKey := buildRateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "route"}, c)

	assert.Contains(t, ipKey, "203.0.113.9")
	assert.Contains(t, routeKey, "POST /users/login")
	assert.NotEqual(t, ipKey, routeKey)
}
