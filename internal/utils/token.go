package utils

import (
    "strings"

    "github.com/google/uuid"
)

// NewResetToken returns a high-entropy opaque token for password-recovery
// links: two random UUIDs with the dashes stripped (64 hex chars).  The
// token is stored on the user row and embedded in the emailed link.
func NewResetToken() string {
    a := strings.ReplaceAll(uuid.NewString(), "-", "")
    b := strings.ReplaceAll(uuid.NewString(), "-", "")
    return a + b
}
