// Package auth holds the metadata keys and request signature shared by the
// trading client and server.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strconv"
	"sync"
	"time"
)

const (
	KeyMetadata       = "key"
	TimestampMetadata = "ts"
	NonceMetadata     = "nonce"
	SignatureMetadata = "sig"
	RequestIDMetadata = "x-request-id"
)

var (
	ErrMissingSignature = errors.New("missing request signature")
	ErrBadSignature     = errors.New("bad request signature")
	ErrStaleSignature   = errors.New("request signature outside the allowed time window")
	ErrReplayedNonce    = errors.New("request nonce already used")
)

// Sign returns the base64 HMAC-SHA256 of method, ts and nonce joined by new lines.
func Sign(secret []byte, method, ts, nonce string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(method))
	mac.Write([]byte{'\n'})
	mac.Write([]byte(ts))
	mac.Write([]byte{'\n'})
	mac.Write([]byte(nonce))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Timestamp formats t the way Sign expects it: unix seconds.
func Timestamp(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}

// Verifier checks request signatures and rejects reused nonces within the
// allowed clock skew.
type Verifier struct {
	secret []byte
	skew   time.Duration
	now    func() time.Time

	mu   sync.Mutex
	seen map[string]time.Time
}

func NewVerifier(secret []byte, skew time.Duration) *Verifier {
	return &Verifier{
		secret: secret,
		skew:   skew,
		now:    time.Now,
		seen:   make(map[string]time.Time),
	}
}

func (v *Verifier) Verify(method, ts, nonce, sig string) error {
	if ts == "" || nonce == "" || sig == "" {
		return ErrMissingSignature
	}
	unix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return ErrBadSignature
	}
	now := v.now()
	at := time.Unix(unix, 0)
	if at.Before(now.Add(-v.skew)) || at.After(now.Add(v.skew)) {
		return ErrStaleSignature
	}
	want := Sign(v.secret, method, ts, nonce)
	if !hmac.Equal([]byte(want), []byte(sig)) {
		return ErrBadSignature
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	for n, exp := range v.seen {
		if now.After(exp) {
			delete(v.seen, n)
		}
	}
	if _, ok := v.seen[nonce]; ok {
		return ErrReplayedNonce
	}
	v.seen[nonce] = at.Add(v.skew)
	return nil
}
