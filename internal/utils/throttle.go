package utils

import (
    "crypto/hmac"
    "crypto/sha256"
    "encoding/base64"
    "encoding/hex"
    "encoding/json"
    "errors"
    "math"
    "strings"
    "time"
)

// Login throttling keeps its state on the client: a signed cookie holds the
// failed-attempt count and the lockout deadline.  The server never persists
// the counter, so the cookie value carries an HMAC to stop clients from
// resetting it themselves.  The cookie's own max-age bounds the throttling
// window independently of the lockout timer.

// FailedAuth is the throttle state transported in the countFailAuth cookie.
// Count is the number of consecutive failed attempts; BlockAuth is the Unix
// millisecond timestamp until which logins are rejected (0 when no lockout
// is active).
type FailedAuth struct {
    Count     int   `json:"count"`
    BlockAuth int64 `json:"blockAuth"`
}

const (
    // FailedAuthCookie is the cookie name shared with the storefront.
    FailedAuthCookie = "countFailAuth"
    // FailedAuthMaxAge bounds the throttling window in seconds.
    FailedAuthMaxAge = 240
    // maxFailedAttempts is the count at which a lockout is imposed.
    maxFailedAttempts = 4
    // lockoutDuration is how long a lockout lasts once imposed.
    lockoutDuration = 3 * time.Minute
)

var ErrBadCookieSignature = errors.New("bad throttle cookie signature")

// EncodeFailedAuth serializes and signs the throttle state for transport in
// a cookie: base64url(JSON) + "." + hex(HMAC-SHA256).
func EncodeFailedAuth(secret string, s FailedAuth) (string, error) {
    payload, err := json.Marshal(s)
    if err != nil {
        return "", err
    }
    body := base64.RawURLEncoding.EncodeToString(payload)
    return body + "." + signFailedAuth(secret, body), nil
}

// DecodeFailedAuth verifies the signature and deserializes the throttle
// state.  A missing value decodes to the zero state; a present but tampered
// value is rejected so a forged cookie cannot clear a lockout.
func DecodeFailedAuth(secret, value string) (FailedAuth, error) {
    if value == "" {
        return FailedAuth{}, nil
    }
    body, sig, ok := strings.Cut(value, ".")
    if !ok || !hmac.Equal([]byte(sig), []byte(signFailedAuth(secret, body))) {
        return FailedAuth{}, ErrBadCookieSignature
    }
    payload, err := base64.RawURLEncoding.DecodeString(body)
    if err != nil {
        return FailedAuth{}, ErrBadCookieSignature
    }
    var s FailedAuth
    if err := json.Unmarshal(payload, &s); err != nil {
        return FailedAuth{}, ErrBadCookieSignature
    }
    if s.Count < 0 {
        s.Count = 0
    }
    return s, nil
}

func signFailedAuth(secret, body string) string {
    mac := hmac.New(sha256.New, []byte(secret))
    mac.Write([]byte(body))
    return hex.EncodeToString(mac.Sum(nil))
}

// ThrottleDecision is the outcome of evaluating the throttle state before a
// credential check.
type ThrottleDecision struct {
    Blocked     bool       // true when the attempt must be rejected outright
    MinutesLeft int        // minutes until the lockout expires, when Blocked
    State       FailedAuth // state after lockout-expiry reset, to evaluate further
}

// CheckThrottle decides whether a login attempt may proceed.  With four or
// more failures and an active lockout the attempt is rejected and the state
// left unchanged.  An expired lockout resets the counter before the
// credential check runs.
func CheckThrottle(s FailedAuth, now time.Time) ThrottleDecision {
    nowMs := now.UnixMilli()
    if s.Count >= maxFailedAttempts && s.BlockAuth > nowMs {
        left := int(math.Ceil(float64(s.BlockAuth-nowMs) / 1000 / 60))
        return ThrottleDecision{Blocked: true, MinutesLeft: left, State: s}
    }
    if s.Count >= maxFailedAttempts {
        s.Count = 0
        s.BlockAuth = 0
    }
    return ThrottleDecision{State: s}
}

// RecordFailure advances the state after a failed credential check.  The
// returned bool is true when this failure triggered a lockout: the count
// reached four and BlockAuth was set three minutes ahead.
func RecordFailure(s FailedAuth, now time.Time) (FailedAuth, bool) {
    s.Count++
    if s.Count >= maxFailedAttempts {
        s.Count = maxFailedAttempts
        s.BlockAuth = now.Add(lockoutDuration).UnixMilli()
        return s, true
    }
    s.BlockAuth = 0
    return s, false
}

// RecordSuccess clears the lockout after a successful login.  The count is
// deliberately kept, matching the storefront contract: only the cookie's
// max-age forgets past failures.
func RecordSuccess(s FailedAuth) FailedAuth {
    s.BlockAuth = 0
    return s
}
