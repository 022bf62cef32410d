// Package notification sends transactional mail over SMTP.
package notification

import (
    "fmt"
    "html"
    "net/smtp"
)

// MailConfig carries the SMTP connection settings.
type MailConfig struct {
    Host     string
    Port     int
    User     string
    Password string
    From     string
}

// Mailer sends the store's transactional mail. Construction is cheap; the
// SMTP connection is opened per message.
type Mailer struct {
    cfg MailConfig
}

// NewMailer returns a Mailer, or nil when no SMTP host is configured so
// callers can treat mail as disabled.
func NewMailer(cfg MailConfig) *Mailer {
    if cfg.Host == "" {
        return nil
    }
    return &Mailer{cfg: cfg}
}

// resetMailBody renders the recovery mail. The username is user-controlled
// and is escaped so it cannot inject markup into the HTML body; the URL is
// server-built from the configured storefront base and the hex token.
func resetMailBody(username, resetURL string) string {
    return fmt.Sprintf(`<html><body>
        <p>Hi %s,</p>
        <p>You received this mail because a password recovery was requested for your account.</p>
        <p><a href="%s">Click here to set a new password</a></p>
        <p>Or copy this link to your browser: %s</p>
        <p>The link is valid for 3 minutes from the moment it was sent.</p>
        <p>If this was not you, ignore this message.</p>
    </body></html>`, html.EscapeString(username), resetURL, resetURL)
}

// SendPasswordReset mails a recovery link. The link is valid for three
// minutes from issuance, which the body states so users act promptly.
func (m *Mailer) SendPasswordReset(to, username, resetURL string) error {
    return m.send(to, "Password recovery", resetMailBody(username, resetURL))
}

func (m *Mailer) send(to, subject, body string) error {
    msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
        m.cfg.From, to, subject, body)

    auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
    addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
    return smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg))
}
