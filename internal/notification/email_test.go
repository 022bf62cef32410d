package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResetMailBodyEscapesUsername(t *testing.T) {
	body := resetMailBody(`<a href="https://evil.example">click</a>`,
		"https://store.example/auth/recoveryPassword/tok123")

	assert.NotContains(t, body, `<a href="https://evil.example">`)
	assert.Contains(t, body, "&lt;a href=")
	assert.Contains(t, body, "https://store.example/auth/recoveryPassword/tok123")
}

func TestNewMailerNilWithoutHost(t *testing.T) {
	assert.Nil(t, NewMailer(MailConfig{}))
	assert.NotNil(t, NewMailer(MailConfig{Host: "smtp.example", Port: 587}))
}
