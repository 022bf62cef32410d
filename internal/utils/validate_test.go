package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"a@b.com", "a@b.com", true},
		{"  Alice@Example.COM ", "alice@example.com", true},
		{"first.last+tag@sub.example.org", "first.last+tag@sub.example.org", true},
		{"", "", false},
		{"   ", "", false},
		{"plainaddress", "", false},
		{"@missing-local.com", "", false},
		{"user@", "", false},
		{"user@nodot", "", false},
		{"user@domain..com", "user@domain..com", true}, // shape check only, MX is the mailer's problem
		{"user name@example.com", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeEmail(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, "input %q", tt.in)
		}
	}
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "hello", SanitizeText("  hello  "))
	assert.Equal(t, "hello", SanitizeText("he\x00llo\n"))
	assert.Equal(t, "", SanitizeText("\t\r\n"))
}

func TestValidUsername(t *testing.T) {
	got, ok := ValidUsername("  alice  ")
	assert.True(t, ok)
	assert.Equal(t, "alice", got)

	_, ok = ValidUsername("")
	assert.False(t, ok)
	_, ok = ValidUsername("\x00\x01")
	assert.False(t, ok)

	twenty := strings.Repeat("x", 20)
	got, ok = ValidUsername(twenty)
	assert.True(t, ok)
	assert.Equal(t, twenty, got)

	_, ok = ValidUsername(strings.Repeat("x", 21))
	assert.False(t, ok)
}

func TestValidPassword(t *testing.T) {
	_, ok := ValidPassword("12345")
	assert.False(t, ok)

	got, ok := ValidPassword("secret1")
	assert.True(t, ok)
	assert.Equal(t, "secret1", got)

	// Trimmed before the length check.
	_, ok = ValidPassword("  1234  ")
	assert.False(t, ok)
}
