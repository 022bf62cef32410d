package handler

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/linstore/linstore-api/internal/config"
)

func TestForgotRejectsMalformedEmailWithoutStoreAccess(t *testing.T) {
	h := NewRecoveryHandler(config.Config{BcryptCost: 4}, nil)
	e := echo.New()
	e.POST("/users/passwordForgot", h.Forgot)

	for _, body := range []string{
		`{"email":""}`,
		`{"email":"not-an-email"}`,
	} {
		rec := postJSON(e, "/users/passwordForgot", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body=%s", body)
	}
}

func TestRecoverRejectsShortPasswordWithoutStoreAccess(t *testing.T) {
	h := NewRecoveryHandler(config.Config{BcryptCost: 4}, nil)
	e := echo.New()
	e.POST("/users/recoveryPassword/:link", h.Recover)

	rec := postJSON(e, "/users/recoveryPassword/sometoken", `{"password":"12345"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
