package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linstore/linstore-api/internal/config"
	"github.com/linstore/linstore-api/internal/utils"
)

// The handlers are constructed with a nil repository on purpose: the cases
// below must short-circuit before any store access, so a query attempt
// panics and fails the test.

func testAuthHandler() *AuthHandler {
	return NewAuthHandler(config.Config{
		JWTSecret:    "test-jwt-secret",
		CookieSecret: "test-cookie-secret",
		AccessTTLMin: 15,
		BcryptCost:   4,
	}, nil)
}

func postJSON(e *echo.Echo, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestLoginRejectsMalformedInputWithoutStoreAccess(t *testing.T) {
	h := testAuthHandler()
	e := echo.New()
	e.POST("/users/login", h.Login)

	cases := []string{
		`{"email":"","password":"secret1"}`,
		`{"email":"not-an-email","password":"secret1"}`,
		`{"email":"a@b.com","password":""}`,
		`this is not json`,
	}
	for _, body := range cases {
		rec := postJSON(e, "/users/login", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body=%s", body)
	}
}

func TestLoginBlockedDuringLockout(t *testing.T) {
	h := testAuthHandler()
	e := echo.New()
	e.POST("/users/login", h.Login)

	state := utils.FailedAuth{
		Count:     4,
		BlockAuth: time.Now().Add(2 * time.Minute).UnixMilli(),
	}
	val, err := utils.EncodeFailedAuth("test-cookie-secret", state)
	require.NoError(t, err)

	rec := postJSON(e, "/users/login",
		`{"email":"a@b.com","password":"whatever"}`,
		&http.Cookie{Name: utils.FailedAuthCookie, Value: val})

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotZero(t, body["retry_after_minutes"])
}

func TestLoginRejectsTamperedThrottleCookie(t *testing.T) {
	h := testAuthHandler()
	e := echo.New()
	e.POST("/users/login", h.Login)

	rec := postJSON(e, "/users/login",
		`{"email":"a@b.com","password":"secret1"}`,
		&http.Cookie{Name: utils.FailedAuthCookie, Value: "eyJjb3VudCI6MH0.forged"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterRejectsMalformedInputWithoutStoreAccess(t *testing.T) {
	h := testAuthHandler()
	e := echo.New()
	e.POST("/users/registration", h.Register)

	cases := []string{
		`{"email":"bad","username":"alice","password":"secret1"}`,
		`{"email":"a@b.com","username":"","password":"secret1"}`,
		`{"email":"a@b.com","username":"` + strings.Repeat("x", 21) + `","password":"secret1"}`,
		`{"email":"a@b.com","username":"alice","password":"12345"}`,
	}
	for _, body := range cases {
		rec := postJSON(e, "/users/registration", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body=%s", body)
	}
}

func TestGoogleAuthRejectsMissingUID(t *testing.T) {
	h := testAuthHandler()
	e := echo.New()
	e.POST("/users/googleAuthUser", h.GoogleAuth)

	rec := postJSON(e, "/users/googleAuthUser",
		`{"email":"a@b.com","username":"alice","uid":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
