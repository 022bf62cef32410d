package middleware

// identity.go defines the typed authenticated-identity value that the JWT
// middleware attaches to the request context. Handlers retrieve it through
// CurrentIdentity instead of poking at raw claims, so the token format is a
// concern of this package alone.

import (
    "errors"

    "github.com/labstack/echo/v4"
)

// identityKey is the context key under which Identity is stored.
const identityKey = "identity"

// Identity is the verified caller of a protected endpoint.
type Identity struct {
    UserID uint64
    Role   string
}

var ErrNoIdentity = errors.New("no authenticated identity in context")

// SetIdentity stores the verified identity on the request context. Only the
// JWT middleware (and tests) should call this.
func SetIdentity(c echo.Context, id Identity) {
    c.Set(identityKey, id)
}

// CurrentIdentity returns the identity attached by the JWT middleware.
// Handlers on protected routes treat an absent identity as a programming
// error and answer 401.
func CurrentIdentity(c echo.Context) (Identity, error) {
    id, ok := c.Get(identityKey).(Identity)
    if !ok || id.UserID == 0 {
        return Identity{}, ErrNoIdentity
    }
    return id, nil
}
