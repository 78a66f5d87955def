package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/olyamironova/electricity-trading-client/internal/logger"
)

const (
	ClientIDHeader  = "X-Client-ID"
	RequestIDHeader = "X-Request-ID"
)

type bucket struct {
	tokens float64
	last   time.Time
}

// RateLimiter allows each client rate requests per second with bursts of
// up to burst requests. Clients are told apart by the X-Client-ID header.
// A bucket idle long enough to have refilled completely is forgotten.
type RateLimiter struct {
	clients map[string]*bucket
	mu      sync.Mutex
	rate    float64
	burst   float64
	idle    time.Duration
	swept   time.Time
	now     func() time.Time
}

func NewRateLimiter(rate float64, burst int) *RateLimiter {
	r := &RateLimiter{
		clients: make(map[string]*bucket),
		rate:    rate,
		burst:   float64(max(burst, 1)),
		now:     time.Now,
	}
	if rate > 0 {
		r.idle = time.Duration(r.burst / rate * float64(time.Second))
	}
	return r
}

// sweep drops full buckets, at most once per idle period. Must be called
// with r.mu held.
func (r *RateLimiter) sweep(now time.Time) {
	if r.idle <= 0 || now.Sub(r.swept) < r.idle {
		return
	}
	r.swept = now
	for id, b := range r.clients {
		if now.Sub(b.last) >= r.idle {
			delete(r.clients, id)
		}
	}
}

func (r *RateLimiter) tracked() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

func (r *RateLimiter) allow(clientID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(now)
	b, ok := r.clients[clientID]
	if !ok {
		b = &bucket{tokens: r.burst, last: now}
		r.clients[clientID] = b
	}
	b.tokens = min(r.burst, b.tokens+now.Sub(b.last).Seconds()*r.rate)
	b.last = now
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID := c.GetHeader(ClientIDHeader)
		if clientID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ClientIDHeader + " header required"})
			return
		}
		if !r.allow(clientID) {
			logger.FromContext(c.Request.Context()).Warn().Str("client_id", clientID).Msg("rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

// RequestID puts a child logger carrying the request id into the request
// context and echoes the id back.
func RequestID(base *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		l := base.GetChildLogger()
		l.UpdateContext(func(zc zerolog.Context) zerolog.Context {
			return zc.Str("request_id", requestID)
		})
		c.Request = c.Request.WithContext(l.WithContext(c.Request.Context()))
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.FromContext(c.Request.Context()).Info().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Int("size", c.Writer.Size()).
			Send()
	}
}
