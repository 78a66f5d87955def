package electricitytrading

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/olyamironova/electricity-trading-client/internal/auth"
	pb "github.com/olyamironova/electricity-trading-client/internal/tradingpb"
)

// Client talks to the Electricity Trading API. It is safe for concurrent use.
type Client struct {
	conn *grpc.ClientConn
	stub pb.ElectricityTradingServiceClient
	opts options
	log  zerolog.Logger

	mu           sync.Mutex
	closed       bool
	orderStreams map[string]*broadcaster[OrderDetail]
	tradeStreams map[string]*broadcaster[PublicTrade]
}

// NewClient connects lazily to serverURL; the first call establishes the
// connection.
func NewClient(serverURL string, opts ...Option) (*Client, error) {
	u, err := parseServerURL(serverURL)
	if err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	creds, err := transportCredentials(u)
	if err != nil {
		return nil, err
	}

	c := &Client{
		opts:         o,
		log:          o.logger.With().Str("component", "electricity-trading-client").Str("server", u.target).Logger(),
		orderStreams: make(map[string]*broadcaster[OrderDetail]),
		tradeStreams: make(map[string]*broadcaster[PublicTrade]),
	}

	dial := append([]grpc.DialOption{
		grpc.WithTransportCredentials(creds),
		grpc.WithChainUnaryInterceptor(c.authUnary),
		grpc.WithChainStreamInterceptor(c.authStream),
	}, o.dialOptions...)

	conn, err := grpc.NewClient(u.target, dial...)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", u.target, err)
	}
	c.conn = conn
	c.stub = pb.NewElectricityTradingServiceClient(conn)
	return c, nil
}

func transportCredentials(u serverURL) (credentials.TransportCredentials, error) {
	if !u.ssl {
		return insecure.NewCredentials(), nil
	}
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if u.rootCertsPath != "" {
		pem, err := os.ReadFile(u.rootCertsPath)
		if err != nil {
			return nil, fmt.Errorf("read root certificates: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("%w: no certificates in %s", ErrInvalidParameter, u.rootCertsPath)
		}
		cfg.RootCAs = pool
	}
	if u.certChainPath != "" {
		cert, err := tls.LoadX509KeyPair(u.certChainPath, u.privateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("load client certificate: %w", err)
		}
		cfg.Certificates = []tls.Certificate{cert}
	}
	return credentials.NewTLS(cfg), nil
}

// Close stops every stream and releases the connection. Later calls fail
// with ErrClientClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	var stops []func(error)
	for _, b := range c.orderStreams {
		stops = append(stops, b.shutdown)
	}
	for _, b := range c.tradeStreams {
		stops = append(stops, b.shutdown)
	}
	clear(c.orderStreams)
	clear(c.tradeStreams)
	c.mu.Unlock()

	for _, stop := range stops {
		stop(ErrClientClosed)
	}
	return c.conn.Close()
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Client) outgoing(ctx context.Context, method string) context.Context {
	var kv []string
	if c.opts.authKey != "" {
		kv = append(kv, auth.KeyMetadata, c.opts.authKey)
	}
	if len(c.opts.signSecret) > 0 {
		ts := auth.Timestamp(c.opts.now())
		nonce := uuid.NewString()
		kv = append(kv,
			auth.TimestampMetadata, ts,
			auth.NonceMetadata, nonce,
			auth.SignatureMetadata, auth.Sign(c.opts.signSecret, method, ts, nonce),
		)
	}
	if len(kv) == 0 {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, kv...)
}

func (c *Client) authUnary(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
	return invoker(c.outgoing(ctx, method), method, req, reply, cc, opts...)
}

func (c *Client) authStream(ctx context.Context, desc *grpc.StreamDesc, cc *grpc.ClientConn, method string, streamer grpc.Streamer, opts ...grpc.CallOption) (grpc.ClientStream, error) {
	return streamer(c.outgoing(ctx, method), desc, cc, method, opts...)
}

// call runs fn with the per-call timeout. Idempotent calls are retried with
// jittered exponential backoff while the server reports a transient failure.
func (c *Client) call(ctx context.Context, method string, idempotent bool, fn func(ctx context.Context) error) error {
	if c.isClosed() {
		return ErrClientClosed
	}
	retries := 0
	if idempotent {
		retries = c.opts.maxRetries
	}
	backoff := c.opts.retryBackoff

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			delay := jittered(backoff)
			c.log.Debug().Str("method", method).Int("attempt", attempt).Dur("delay", delay).Err(lastErr).Msg("retrying")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			backoff = nextBackoff(backoff, maxRetryBackoff)
		}

		lastErr = c.attempt(ctx, method, fn)
		if lastErr == nil {
			return nil
		}
		var apiErr *APIError
		if !errors.As(lastErr, &apiErr) || !apiErr.IsRetryable() || ctx.Err() != nil {
			return lastErr
		}
	}
	return lastErr
}

// jittered spreads d over [d/2, 3d/2).
func jittered(d time.Duration) time.Duration {
	return d/2 + time.Duration(rand.Int64N(int64(d)))
}

// nextBackoff doubles d up to limit.
func nextBackoff(d, limit time.Duration) time.Duration {
	if d >= limit/2 {
		return limit
	}
	return d * 2
}

func (c *Client) attempt(ctx context.Context, method string, fn func(ctx context.Context) error) error {
	if c.opts.callTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.callTimeout)
		defer cancel()
	}
	return toAPIError(method, fn(ctx))
}
