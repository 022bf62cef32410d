package utils

import (
    "regexp"
    "strings"
    "unicode"
)

// Field validation for the public endpoints.  Each input class gets its own
// typed check instead of one generic sanitizer pass, so rejection rules are
// explicit per field: emails must match the address shape, usernames are
// length-bounded, passwords have a minimum length, and free-text profile
// values are stripped of control characters before any length check.

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const (
    usernameMaxLen = 20
    passwordMinLen = 6
)

// NormalizeEmail trims and lowercases an email address and reports whether
// the result is address-shaped.  An empty result is always invalid.
func NormalizeEmail(s string) (string, bool) {
    s = strings.ToLower(strings.TrimSpace(s))
    if s == "" || !emailRe.MatchString(s) {
        return "", false
    }
    return s, true
}

// SanitizeText removes control characters and trims surrounding whitespace.
// It is the allow-list step applied to free-text fields (username, profile
// values, colors) before their per-field shape checks.
func SanitizeText(s string) string {
    s = strings.Map(func(r rune) rune {
        if unicode.IsControl(r) {
            return -1
        }
        return r
    }, s)
    return strings.TrimSpace(s)
}

// ValidUsername sanitizes a username and reports whether the result has
// between 1 and 20 characters.
func ValidUsername(s string) (string, bool) {
    s = SanitizeText(s)
    if s == "" || len([]rune(s)) > usernameMaxLen {
        return "", false
    }
    return s, true
}

// ValidPassword reports whether a password meets the minimum length.  The
// password is not sanitized beyond trimming: any printable characters are
// allowed because the value is only ever hashed.
func ValidPassword(s string) (string, bool) {
    s = strings.TrimSpace(s)
    if len(s) < passwordMinLen {
        return "", false
    }
    return s, true
}
