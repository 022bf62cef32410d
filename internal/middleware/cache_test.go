package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linstore/linstore-api/internal/config"
)

func TestCachePayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": []string{"application/json"}}
	body := []byte(`{"brands":[]}`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsShortInput(t *testing.T) {
	_, _, _, ok := decodePayload([]byte{1, 2, 3})
	assert.False(t, ok)
}

func TestCacheKeyDependsOnQuery(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "catalog", KeyStrategy: "route_query"}
	e := echo.New()

	ctxFor := func(target string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/search/shortSearch")
		return c
	}

	k1 := cacheKeyFrom(cfg, ctxFor("/search/shortSearch?name=boots"))
	k2 := cacheKeyFrom(cfg, ctxFor("/search/shortSearch?name=coat"))
	assert.NotEqual(t, k1, k2)
	assert.Equal(t, k1, cacheKeyFrom(cfg, ctxFor("/search/shortSearch?name=boots")))
}

func TestRedisCacheDisabledWithoutClient(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: true}, nil)
	e := echo.New()
	e.GET("/filter", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"brands": []string{}})
	}, mw)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/filter", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}
