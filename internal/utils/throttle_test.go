package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "throttle-test-secret"

func TestFailedAuthCookieRoundTrip(t *testing.T) {
	s := FailedAuth{Count: 3, BlockAuth: 1700000000000}
	val, err := EncodeFailedAuth(testSecret, s)
	require.NoError(t, err)

	got, err := DecodeFailedAuth(testSecret, val)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestDecodeFailedAuthEmptyIsZeroState(t *testing.T) {
	got, err := DecodeFailedAuth(testSecret, "")
	require.NoError(t, err)
	assert.Equal(t, FailedAuth{}, got)
}

func TestDecodeFailedAuthRejectsTampering(t *testing.T) {
	val, err := EncodeFailedAuth(testSecret, FailedAuth{Count: 4, BlockAuth: time.Now().Add(time.Hour).UnixMilli()})
	require.NoError(t, err)

	cases := map[string]string{
		"flipped payload byte": "A" + val[1:],
		"truncated signature":  val[:len(val)-2],
		"no separator":         "bm9zZXA",
		"wrong secret":         mustEncode(t, "other-secret", FailedAuth{Count: 0}),
	}
	for name, tampered := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeFailedAuth(testSecret, tampered)
			assert.ErrorIs(t, err, ErrBadCookieSignature)
		})
	}
}

func mustEncode(t *testing.T, secret string, s FailedAuth) string {
	t.Helper()
	val, err := EncodeFailedAuth(secret, s)
	require.NoError(t, err)
	return val
}

func TestCheckThrottleBlocksActiveLockout(t *testing.T) {
	now := time.Now()
	s := FailedAuth{Count: 4, BlockAuth: now.Add(2*time.Minute + 30*time.Second).UnixMilli()}

	dec := CheckThrottle(s, now)
	require.True(t, dec.Blocked)
	assert.Equal(t, 3, dec.MinutesLeft) // rounded up
	assert.Equal(t, s, dec.State)       // state unchanged while blocked
}

func TestCheckThrottleResetsExpiredLockout(t *testing.T) {
	now := time.Now()
	s := FailedAuth{Count: 4, BlockAuth: now.Add(-time.Second).UnixMilli()}

	dec := CheckThrottle(s, now)
	require.False(t, dec.Blocked)
	assert.Equal(t, 0, dec.State.Count)
	assert.Zero(t, dec.State.BlockAuth)
}

func TestCheckThrottleAllowsBelowLimit(t *testing.T) {
	dec := CheckThrottle(FailedAuth{Count: 3}, time.Now())
	require.False(t, dec.Blocked)
	assert.Equal(t, 3, dec.State.Count)
}

func TestRecordFailureProgression(t *testing.T) {
	now := time.Now()
	s := FailedAuth{}
	for i := 1; i <= 3; i++ {
		var locked bool
		s, locked = RecordFailure(s, now)
		assert.False(t, locked, "failure %d must not lock", i)
		assert.Equal(t, i, s.Count)
		assert.Zero(t, s.BlockAuth)
	}

	s, locked := RecordFailure(s, now)
	require.True(t, locked, "fourth failure imposes the lockout")
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, now.Add(3*time.Minute).UnixMilli(), s.BlockAuth)
}

func TestFifthAttemptBlockedUntilLockoutPasses(t *testing.T) {
	now := time.Now()
	s := FailedAuth{}
	for i := 0; i < 4; i++ {
		s, _ = RecordFailure(s, now)
	}

	// Within the lockout window every attempt is rejected outright.
	dec := CheckThrottle(s, now.Add(time.Minute))
	assert.True(t, dec.Blocked)

	// Once three minutes have passed the counter resets and the attempt
	// may proceed to the credential check.
	dec = CheckThrottle(s, now.Add(3*time.Minute+time.Second))
	require.False(t, dec.Blocked)
	assert.Equal(t, 0, dec.State.Count)
}

func TestRecordSuccessKeepsCountClearsLockout(t *testing.T) {
	s := RecordSuccess(FailedAuth{Count: 2, BlockAuth: 12345})
	assert.Equal(t, 2, s.Count)
	assert.Zero(t, s.BlockAuth)
}
