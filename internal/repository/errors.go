// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios without inspecting
// driver-specific errors.
package repository

import "errors"

// ErrNotFound is returned when a requested row (user, basket, product,
// brand, type) does not exist. Handlers translate this into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when registration collides with an existing
// email address. Handlers translate this into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrDuplicateItem is returned when a basket or save-list insert collides
// with an already-present entry. Handlers treat this as a friendly no-op.
var ErrDuplicateItem = errors.New("item already present")

// ErrTokenExpired is returned when a password-recovery token exists but its
// expiry has passed. Handlers translate this into HTTP 400.
var ErrTokenExpired = errors.New("recovery token expired")
