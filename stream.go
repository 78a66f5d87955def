package electricitytrading

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	pb "github.com/olyamironova/electricity-trading-client/internal/tradingpb"
)

// Subscription receives the messages of a stream shared with every other
// subscription using the same filter. C is closed after Close, after the
// context given at subscription time is done, or when the stream fails
// permanently; Err then reports why.
type Subscription[T any] struct {
	ch   chan T
	gaps chan struct{}
	stop chan struct{}
	b    *broadcaster[T]

	mu   sync.Mutex
	done bool
	err  error
}

func (s *Subscription[T]) C() <-chan T { return s.ch }

// Gaps receives a value when messages may have been missed since the last
// receive from it: the buffer overflowed or the stream was reconnected.
// Signals are coalesced. Callers that must see every message re-read the
// missed range with a List call.
func (s *Subscription[T]) Gaps() <-chan struct{} { return s.gaps }

func (s *Subscription[T]) markGap() {
	select {
	case s.gaps <- struct{}{}:
	default:
	}
}

// Err returns nil while the subscription is live or after Close.
func (s *Subscription[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Subscription[T]) Close() { s.b.remove(s, nil) }

// finish closes C once and records err. It reports whether this call did it.
func (s *Subscription[T]) finish(err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return false
	}
	s.done = true
	s.err = err
	close(s.ch)
	close(s.stop)
	return true
}

// deliver never blocks: with a full buffer the oldest message makes room.
func (s *Subscription[T]) deliver(v T) (dropped bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return false
	}
	select {
	case s.ch <- v:
		return false
	default:
	}
	// the gap is visible before the oldest message leaves the buffer
	s.markGap()
	select {
	case <-s.ch:
		dropped = true
	default:
	}
	select {
	case s.ch <- v:
	default:
	}
	return dropped
}

type recvFunc[T any] func() (T, error)

type openFunc[T any] func(ctx context.Context) (recvFunc[T], error)

// broadcaster owns one server stream and fans it out to its subscriptions,
// reconnecting until the last subscription leaves.
type broadcaster[T any] struct {
	open       openFunc[T]
	log        zerolog.Logger
	backoff    time.Duration
	maxBackoff time.Duration
	buffer     int
	onIdle     func(*broadcaster[T])

	ctx       context.Context
	cancel    context.CancelFunc
	ready     chan struct{}
	readyOnce sync.Once

	mu      sync.Mutex
	subs    map[*Subscription[T]]struct{}
	stopped bool
}

func newBroadcaster[T any](o options, log zerolog.Logger, open openFunc[T]) *broadcaster[T] {
	ctx, cancel := context.WithCancel(context.Background())
	return &broadcaster[T]{
		open:       open,
		log:        log,
		backoff:    o.streamBackoff,
		maxBackoff: o.streamMax,
		buffer:     o.streamBuffer,
		ctx:        ctx,
		cancel:     cancel,
		ready:      make(chan struct{}),
		subs:       make(map[*Subscription[T]]struct{}),
	}
}

// add returns nil once the broadcaster has stopped.
func (b *broadcaster[T]) add() *Subscription[T] {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		return nil
	}
	s := &Subscription[T]{
		ch:   make(chan T, b.buffer),
		gaps: make(chan struct{}, 1),
		stop: make(chan struct{}),
		b:    b,
	}
	b.subs[s] = struct{}{}
	return s
}

func (b *broadcaster[T]) remove(s *Subscription[T], err error) {
	if !s.finish(err) {
		return
	}
	b.mu.Lock()
	delete(b.subs, s)
	idle := len(b.subs) == 0 && !b.stopped
	b.mu.Unlock()
	if idle && b.onIdle != nil {
		b.onIdle(b)
	}
}

// stopIfIdle stops b when nobody listens and reports whether b is stopped.
func (b *broadcaster[T]) stopIfIdle() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.subs) == 0 && !b.stopped {
		b.stopped = true
		b.cancel()
	}
	return b.stopped
}

// shutdown stops b and ends every subscription with err.
func (b *broadcaster[T]) shutdown(err error) {
	b.mu.Lock()
	b.stopped = true
	b.cancel()
	subs := make([]*Subscription[T], 0, len(b.subs))
	for s := range b.subs {
		subs = append(subs, s)
	}
	clear(b.subs)
	b.mu.Unlock()

	for _, s := range subs {
		s.finish(err)
	}
	b.markReady()
}

func (b *broadcaster[T]) markReady() { b.readyOnce.Do(func() { close(b.ready) }) }

func (b *broadcaster[T]) publish(v T) {
	b.mu.Lock()
	subs := make([]*Subscription[T], 0, len(b.subs))
	for s := range b.subs {
		subs = append(subs, s)
	}
	b.mu.Unlock()

	for _, s := range subs {
		if s.deliver(v) {
			b.log.Warn().Int("buffer", b.buffer).Msg("subscriber too slow, dropped oldest message")
		}
	}
}

// reconnected tells every subscription that messages published while the
// stream was down are lost.
func (b *broadcaster[T]) reconnected() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for s := range b.subs {
		s.markGap()
	}
}

func (b *broadcaster[T]) run() {
	backoff := b.backoff
	interrupted := false
	for {
		recv, err := b.open(b.ctx)
		if err == nil {
			if interrupted {
				b.reconnected()
			}
			b.markReady()
			backoff = b.backoff
			for {
				var v T
				if v, err = recv(); err != nil {
					break
				}
				b.publish(v)
			}
		}
		if b.ctx.Err() != nil {
			return
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.terminal() {
			b.log.Error().Err(err).Msg("stream ended")
			b.shutdown(err)
			return
		}
		b.markReady()
		interrupted = true

		delay := jittered(backoff)
		b.log.Warn().Err(err).Dur("retry_in", delay).Msg("stream interrupted, reconnecting")
		select {
		case <-b.ctx.Done():
			return
		case <-time.After(delay):
		}
		backoff = nextBackoff(backoff, b.maxBackoff)
	}
}

// subscribe joins the broadcaster registered under key, starting one when
// none is running, and waits for its first connection attempt.
func subscribe[T any](ctx context.Context, c *Client, streams map[string]*broadcaster[T], key string, open openFunc[T]) (*Subscription[T], error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClientClosed
	}
	var s *Subscription[T]
	b := streams[key]
	if b != nil {
		s = b.add()
	}
	if s == nil {
		b = newBroadcaster(c.opts, c.log.With().Str("stream", key).Logger(), open)
		b.onIdle = func(b *broadcaster[T]) {
			c.mu.Lock()
			defer c.mu.Unlock()
			if b.stopIfIdle() && streams[key] == b {
				delete(streams, key)
			}
		}
		streams[key] = b
		s = b.add()
		go b.run()
	}
	c.mu.Unlock()

	select {
	case <-b.ready:
	case <-ctx.Done():
		b.remove(s, ctx.Err())
		return nil, ctx.Err()
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	if done := ctx.Done(); done != nil {
		go func() {
			select {
			case <-done:
				b.remove(s, ctx.Err())
			case <-s.stop:
			}
		}()
	}
	return s, nil
}

// StreamGridpoolOrders subscribes to updates of the gridpool's orders that
// match filter. Cancelling ctx ends the subscription.
func (c *Client) StreamGridpoolOrders(ctx context.Context, gridpoolID int64, filter GridpoolOrderFilter) (*Subscription[OrderDetail], error) {
	if err := validateGridpoolID(gridpoolID); err != nil {
		return nil, err
	}
	req := &pb.ReceiveGridpoolOrdersStreamRequest{GridpoolId: gridpoolID, Filter: pb.GridpoolOrderFilterToProto(filter)}
	open := func(ctx context.Context) (recvFunc[OrderDetail], error) {
		stream, err := c.stub.ReceiveGridpoolOrdersStream(ctx, req)
		if err != nil {
			return nil, toAPIError(pb.ReceiveGridpoolOrdersStreamMethod, err)
		}
		if _, err := stream.Header(); err != nil {
			return nil, toAPIError(pb.ReceiveGridpoolOrdersStreamMethod, err)
		}
		return func() (OrderDetail, error) {
			for {
				msg, err := stream.Recv()
				if err != nil {
					return OrderDetail{}, toAPIError(pb.ReceiveGridpoolOrdersStreamMethod, err)
				}
				d, err := orderDetailFromWire(msg.OrderDetail)
				if err != nil {
					c.log.Warn().Err(err).Int64("gridpool_id", gridpoolID).Msg("skipping undecodable order update")
					continue
				}
				return d, nil
			}
		}, nil
	}
	key := fmt.Sprintf("orders/%d/%s", gridpoolID, filter.Key())
	return subscribe(ctx, c, c.orderStreams, key, open)
}

// StreamPublicTrades subscribes to public trades matching filter.
func (c *Client) StreamPublicTrades(ctx context.Context, filter PublicTradeFilter) (*Subscription[PublicTrade], error) {
	req := &pb.ReceivePublicTradesStreamRequest{Filter: pb.PublicTradeFilterToProto(filter)}
	open := func(ctx context.Context) (recvFunc[PublicTrade], error) {
		stream, err := c.stub.ReceivePublicTradesStream(ctx, req)
		if err != nil {
			return nil, toAPIError(pb.ReceivePublicTradesStreamMethod, err)
		}
		if _, err := stream.Header(); err != nil {
			return nil, toAPIError(pb.ReceivePublicTradesStreamMethod, err)
		}
		return func() (PublicTrade, error) {
			for {
				msg, err := stream.Recv()
				if err != nil {
					return PublicTrade{}, toAPIError(pb.ReceivePublicTradesStreamMethod, err)
				}
				t, err := publicTradeFromWire(msg.PublicTrade)
				if err != nil {
					c.log.Warn().Err(err).Msg("skipping undecodable public trade")
					continue
				}
				return t, nil
			}
		}, nil
	}
	return subscribe(ctx, c, c.tradeStreams, "trades/"+filter.Key(), open)
}
