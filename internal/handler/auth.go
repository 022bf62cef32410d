package handler

import (
    "context"      // provides context with cancellation for DB calls
    "net/http"     // HTTP status codes and primitives
    "time"         // timeouts for DB calls and throttle timestamps

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/linstore/linstore-api/internal/config"     // app configuration
    "github.com/linstore/linstore-api/internal/model"      // domain models
    "github.com/linstore/linstore-api/internal/repository" // DB repositories
    "github.com/linstore/linstore-api/internal/utils"      // hashing, tokens, validation
)

// AuthHandler bundles dependencies for the account endpoints: local login
// with cookie-based throttling, registration and Google-federated signup.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

// ----- DTOs -----

type registerReq struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type googleAuthReq struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	UID      string `json:"uid"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type userPart struct {
	ID       uint64 `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
type authResp struct {
	User   userPart  `json:"user"`
	Access tokenPart `json:"access"`
}

func toUserPart(u model.User) userPart {
	return userPart{ID: u.ID, Email: u.Email, Username: u.Username, Role: u.Role}
}

// setThrottleCookie writes the signed failed-auth state. The cookie is
// httpOnly/secure/SameSite=None with a 240 second max-age, so the throttle
// window expires on its own regardless of the lockout timer inside it.
func (h *AuthHandler) setThrottleCookie(c echo.Context, s utils.FailedAuth) {
	val, err := utils.EncodeFailedAuth(h.Cfg.CookieSecret, s)
	if err != nil {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     utils.FailedAuthCookie,
		Value:    val,
		MaxAge:   utils.FailedAuthMaxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		Path:     "/",
	})
}

func (h *AuthHandler) readThrottleCookie(c echo.Context) (utils.FailedAuth, error) {
	ck, err := c.Cookie(utils.FailedAuthCookie)
	if err != nil {
		// No cookie yet: zero state.
		return utils.FailedAuth{}, nil
	}
	return utils.DecodeFailedAuth(h.Cfg.CookieSecret, ck.Value)
}

// Login authenticates a local account. Failed attempts are counted in the
// signed countFailAuth cookie: the fourth consecutive failure imposes a
// three-minute lockout, enforced before credentials are even checked.
// Unknown email and wrong password share one generic message.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	email, ok := utils.NormalizeEmail(req.Email)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "a valid email is required"})
	}
	if req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password is required"})
	}

	state, err := h.readThrottleCookie(c)
	if err != nil {
		// A tampered cookie must not clear a lockout.
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	dec := utils.CheckThrottle(state, time.Now())
	if dec.Blocked {
		return c.JSON(http.StatusTooManyRequests, echo.Map{
			"error":               "too many login attempts",
			"retry_after_minutes": dec.MinutesLeft,
		})
	}
	state = dec.State

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if u.PasswordHash == "" || !utils.VerifyPassword(u.PasswordHash, req.Password) {
		next, locked := utils.RecordFailure(state, time.Now())
		h.setThrottleCookie(c, next)
		if locked {
			return c.JSON(http.StatusTooManyRequests, echo.Map{
				"error":               "too many login attempts",
				"retry_after_minutes": 3,
			})
		}
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid email or password"})
	}

	// Success clears the lockout but keeps the count; the cookie max-age is
	// what eventually forgets old failures.
	h.setThrottleCookie(c, utils.RecordSuccess(state))

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(http.StatusOK, authResp{
		User:   toUserPart(u),
		Access: tokenPart{Token: access.Token, Expires: access.Exp},
	})
}

// Register creates a local account together with its basket, save list and
// recently-viewed list, then returns the user and a fresh access token.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	email, ok := utils.NormalizeEmail(req.Email)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "a valid email is required"})
	}
	username, ok := utils.ValidUsername(req.Username)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username must be 1-20 characters"})
	}
	password, ok := utils.ValidPassword(req.Password)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 6 characters"})
	}

	hash, err := utils.HashPassword(password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Register(ctx, email, username, hash)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(http.StatusCreated, authResp{
		User:   toUserPart(u),
		Access: tokenPart{Token: access.Token, Expires: access.Exp},
	})
}

// GoogleAuth signs a Google-federated user in, creating the account (with
// the same dependent rows as local registration) on first contact. Identity
// is keyed by the external uid; no password is involved.
func (h *AuthHandler) GoogleAuth(c echo.Context) error {
	var req googleAuthReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	email, ok := utils.NormalizeEmail(req.Email)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "a valid email is required"})
	}
	username, ok := utils.ValidUsername(req.Username)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username must be 1-20 characters"})
	}
	uid := utils.SanitizeText(req.UID)
	if uid == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "uid is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByGoogleUID(ctx, uid)
	if err == repository.ErrNotFound {
		u, err = h.Users.RegisterGoogle(ctx, uid, email, username)
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "google sign-in failed"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(http.StatusOK, authResp{
		User:   toUserPart(u),
		Access: tokenPart{Token: access.Token, Expires: access.Exp},
	})
}
