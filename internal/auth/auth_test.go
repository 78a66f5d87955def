package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSign_Deterministic(t *testing.T) {
	a := Sign([]byte("s"), "/svc/M", "100", "n")
	assert.Equal(t, a, Sign([]byte("s"), "/svc/M", "100", "n"))
	assert.NotEqual(t, a, Sign([]byte("other"), "/svc/M", "100", "n"))
	assert.NotEqual(t, a, Sign([]byte("s"), "/svc/N", "100", "n"))
}

// TestVerifier verifies accepted, stale, forged and replayed signatures.
func TestVerifier(t *testing.T) {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	v := NewVerifier([]byte("secret"), time.Minute)
	v.now = func() time.Time { return now }

	ts := Timestamp(now)
	sig := Sign([]byte("secret"), "/svc/M", ts, "n1")

	assert.NoError(t, v.Verify("/svc/M", ts, "n1", sig))
	assert.ErrorIs(t, v.Verify("/svc/M", ts, "n1", sig), ErrReplayedNonce)
	assert.ErrorIs(t, v.Verify("/svc/M", ts, "n2", sig), ErrBadSignature)
	assert.ErrorIs(t, v.Verify("/svc/M", "", "n2", sig), ErrMissingSignature)
	assert.ErrorIs(t, v.Verify("/svc/M", "abc", "n2", sig), ErrBadSignature)

	old := Timestamp(now.Add(-2 * time.Minute))
	assert.ErrorIs(t, v.Verify("/svc/M", old, "n3", Sign([]byte("secret"), "/svc/M", old, "n3")), ErrStaleSignature)

	// nonces are forgotten once their window has passed
	now = now.Add(3 * time.Minute)
	ts = Timestamp(now)
	assert.NoError(t, v.Verify("/svc/M", ts, "n1", Sign([]byte("secret"), "/svc/M", ts, "n1")))
}
