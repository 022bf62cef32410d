package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/linstore/linstore-api/internal/config"
	"github.com/linstore/linstore-api/internal/model"
	"github.com/linstore/linstore-api/internal/queue"
	"github.com/linstore/linstore-api/internal/repository"
	queue_publisher "github.com/linstore/linstore-api/internal/service"
	"github.com/linstore/linstore-api/internal/utils"
)

// resetTokenTTL is how long a recovery link stays valid.
const resetTokenTTL = 3 * time.Minute

// RecoveryStore is the account surface the recovery flow needs.
// *repository.UserRepo satisfies it; tests exercise the token lifecycle
// with an in-memory implementation.
type RecoveryStore interface {
	GetByEmail(ctx context.Context, email string) (model.User, error)
	SetResetToken(ctx context.Context, email, token string, expiresAt time.Time) error
	GetByResetToken(ctx context.Context, token string) (model.User, error)
	ConsumeResetToken(ctx context.Context, token, newHash string) error
}

// RecoveryHandler implements the three-step password-recovery flow:
// request a link, validate it, consume it. The mail itself is sent by the
// background queue consumer so a slow SMTP server never blocks the request.
type RecoveryHandler struct {
	Cfg   config.Config
	Users RecoveryStore
}

func NewRecoveryHandler(cfg config.Config, u RecoveryStore) *RecoveryHandler {
	return &RecoveryHandler{Cfg: cfg, Users: u}
}

type forgotReq struct {
	Email string `json:"email"`
}
type recoverReq struct {
	Password string `json:"password"`
}

// Forgot issues a recovery token and queues the mail. The response is
// success-shaped whether or not the email belongs to an account, so the
// endpoint cannot be used to discover which addresses are registered; only a
// malformed address is rejected.
func (h *RecoveryHandler) Forgot(c echo.Context) error {
	var req forgotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	email, ok := utils.NormalizeEmail(req.Email)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "a valid email is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusOK, "ok")
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	token := utils.NewResetToken()
	expiresAt := time.Now().UTC().Add(resetTokenTTL)
	if err := h.Users.SetResetToken(ctx, email, token, expiresAt); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "request failed"})
	}

	ev := queue.PasswordResetRequestedEvent{
		UserID:      u.ID,
		Email:       u.Email,
		Username:    u.Username,
		RecoveryURL: h.Cfg.ClientAppURL + "auth/recoveryPassword/" + token,
		ExpiresAt:   expiresAt.Format(time.RFC3339),
		RequestedAt: time.Now().UTC().Format(time.RFC3339),
	}
	// A broker hiccup must look identical to a sent mail from outside.
	if err := queue_publisher.PublishPasswordReset(ctx, ev); err != nil {
		log.Printf("recovery: publish reset event failed for user_id=%d: %v", u.ID, err)
	}
	return c.JSON(http.StatusOK, "ok")
}

// CheckLink validates a recovery token before the client shows the
// new-password form. Unknown and expired tokens are both 400.
func (h *RecoveryHandler) CheckLink(c echo.Context) error {
	token := utils.SanitizeText(c.Param("link"))
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid link"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.GetByResetToken(ctx, token); err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "this link is no longer valid"})
		case repository.ErrTokenExpired:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "the recovery window has passed, request a new link"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
	}
	return c.JSON(http.StatusOK, "ok")
}

// Recover consumes a recovery token: the new password is hashed, the token
// cleared and the previous hash archived, all in one transaction. A
// consumed token no longer matches any row, so replaying the link fails.
func (h *RecoveryHandler) Recover(c echo.Context) error {
	token := utils.SanitizeText(c.Param("link"))
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid link"})
	}
	var req recoverReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	password, ok := utils.ValidPassword(req.Password)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 6 characters"})
	}

	hash, err := utils.HashPassword(password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.ConsumeResetToken(ctx, token, hash); err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "this link is no longer valid"})
		case repository.ErrTokenExpired:
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "the recovery window has passed, request a new link"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}
	return c.JSON(http.StatusOK, "ok")
}
