// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into outbound mail.
package queue

// PasswordResetRequestedEvent is published when a user asks for a recovery
// link. It carries everything the mail worker needs so the worker never
// queries the primary database; the token is embedded in the link only,
// never logged.
type PasswordResetRequestedEvent struct {
    UserID      uint64 `json:"user_id"`
    Email       string `json:"email"`
    Username    string `json:"username"`
    RecoveryURL string `json:"recovery_url"`
    ExpiresAt   string `json:"expires_at"`
    RequestedAt string `json:"requested_at"`
}

// ResetQueueName is the durable queue carrying reset events.
const ResetQueueName = "user.password-reset"
