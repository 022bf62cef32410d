package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linstore/linstore-api/internal/config"
	"github.com/linstore/linstore-api/internal/model"
	"github.com/linstore/linstore-api/internal/repository"
)

// memRecoveryStore implements RecoveryStore with the same token contract as
// the database: consumption clears the token, so a replayed link no longer
// resolves.
type memRecoveryStore struct {
	user   model.User
	tokens map[string]time.Time
	hashes []string
}

func (s *memRecoveryStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	if email != s.user.Email {
		return model.User{}, repository.ErrNotFound
	}
	return s.user, nil
}

func (s *memRecoveryStore) SetResetToken(_ context.Context, _ string, token string, expiresAt time.Time) error {
	s.tokens[token] = expiresAt
	return nil
}

func (s *memRecoveryStore) GetByResetToken(_ context.Context, token string) (model.User, error) {
	exp, ok := s.tokens[token]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	if time.Now().After(exp) {
		return model.User{}, repository.ErrTokenExpired
	}
	u := s.user
	u.ResetToken = token
	u.ResetExpiresAt = &exp
	return u, nil
}

func (s *memRecoveryStore) ConsumeResetToken(ctx context.Context, token, newHash string) error {
	if _, err := s.GetByResetToken(ctx, token); err != nil {
		return err
	}
	delete(s.tokens, token)
	s.hashes = append(s.hashes, newHash)
	return nil
}

func newRecoveryTestServer(s *memRecoveryStore) *echo.Echo {
	h := NewRecoveryHandler(config.Config{BcryptCost: 4}, s)
	e := echo.New()
	e.GET("/users/checkRecoveryLink/:link", h.CheckLink)
	e.POST("/users/recoveryPassword/:link", h.Recover)
	return e
}

func TestCheckRecoveryLinkAcceptsOutstandingToken(t *testing.T) {
	s := &memRecoveryStore{
		user:   model.User{ID: 1, Email: "a@b.com"},
		tokens: map[string]time.Time{"tok123": time.Now().Add(3 * time.Minute)},
	}
	e := newRecoveryTestServer(s)

	rec := getJSON(e, "/users/checkRecoveryLink/tok123")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecoveryTokenSingleUse(t *testing.T) {
	s := &memRecoveryStore{
		user:   model.User{ID: 1, Email: "a@b.com"},
		tokens: map[string]time.Time{"tok123": time.Now().Add(3 * time.Minute)},
	}
	e := newRecoveryTestServer(s)

	rec := postJSON(e, "/users/recoveryPassword/tok123", `{"password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, s.hashes, 1)

	// The consumed token no longer resolves: replaying the link fails.
	rec = postJSON(e, "/users/recoveryPassword/tok123", `{"password":"secret2"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, s.hashes, 1)

	rec = getJSON(e, "/users/checkRecoveryLink/tok123")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecoveryTokenExpires(t *testing.T) {
	s := &memRecoveryStore{
		user:   model.User{ID: 1, Email: "a@b.com"},
		tokens: map[string]time.Time{"tok123": time.Now().Add(-time.Second)},
	}
	e := newRecoveryTestServer(s)

	rec := getJSON(e, "/users/checkRecoveryLink/tok123")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(e, "/users/recoveryPassword/tok123", `{"password":"secret1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, s.hashes)
}
