package electricitytrading

import (
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
)

const (
	defaultCallTimeout        = 60 * time.Second
	defaultRetryBackoff       = 500 * time.Millisecond
	maxRetryBackoff           = 30 * time.Second
	defaultStreamBackoff      = time.Second
	defaultStreamBackoffLimit = 30 * time.Second
	defaultStreamBuffer       = 50
)

type options struct {
	authKey       string
	signSecret    []byte
	callTimeout   time.Duration
	maxRetries    int
	retryBackoff  time.Duration
	streamBackoff time.Duration
	streamMax     time.Duration
	streamBuffer  int
	logger        zerolog.Logger
	dialOptions   []grpc.DialOption
	now           func() time.Time
}

func defaultOptions() options {
	return options{
		callTimeout:   defaultCallTimeout,
		retryBackoff:  defaultRetryBackoff,
		streamBackoff: defaultStreamBackoff,
		streamMax:     defaultStreamBackoffLimit,
		streamBuffer:  defaultStreamBuffer,
		logger:        zerolog.Nop(),
		now:           time.Now,
	}
}

// Option configures a Client.
type Option func(*options)

// WithAuthKey sends key as the "key" metadata of every call.
func WithAuthKey(key string) Option {
	return func(o *options) { o.authKey = key }
}

// WithSignSecret signs every call with HMAC-SHA256 over the method name, a
// timestamp and a nonce.
func WithSignSecret(secret string) Option {
	return func(o *options) { o.signSecret = []byte(secret) }
}

// WithCallTimeout bounds each unary call attempt. Zero disables the bound.
func WithCallTimeout(d time.Duration) Option {
	return func(o *options) { o.callTimeout = d }
}

// WithRetries retries idempotent calls (Get and List) up to max times when
// the server reports a transient failure. backoff is the first delay and
// doubles on every attempt, up to 30s.
func WithRetries(max int, backoff time.Duration) Option {
	return func(o *options) {
		o.maxRetries = max
		if backoff > 0 {
			o.retryBackoff = min(backoff, maxRetryBackoff)
		}
	}
}

// WithStreamBackoff sets the reconnect delays of streams.
func WithStreamBackoff(initial, max time.Duration) Option {
	return func(o *options) {
		if initial > 0 {
			o.streamBackoff = initial
		}
		if max >= o.streamBackoff {
			o.streamMax = max
		}
	}
}

// WithStreamBuffer sets how many messages a subscription buffers before the
// oldest is dropped.
func WithStreamBuffer(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.streamBuffer = n
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithDialOptions appends raw gRPC dial options.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(o *options) { o.dialOptions = append(o.dialOptions, opts...) }
}

func withClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}
