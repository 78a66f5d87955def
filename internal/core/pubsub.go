package core

import "sync"

// PubSub fans values out to subscribers grouped by key. Publishing never
// blocks: a subscriber whose buffer is full is evicted and its channel
// closed, so it learns it fell behind instead of silently missing values.
type PubSub[K comparable, T any] struct {
	mu     sync.Mutex
	subs   map[K]map[chan T]struct{}
	buf    int
	closed bool
}

func NewPubSub[K comparable, T any](buf int) *PubSub[K, T] {
	if buf <= 0 {
		buf = 1
	}
	return &PubSub[K, T]{
		subs: make(map[K]map[chan T]struct{}),
		buf:  buf,
	}
}

// Subscribe returns an already closed channel once p is closed.
func (p *PubSub[K, T]) Subscribe(key K) chan T {
	p.mu.Lock()
	defer p.mu.Unlock()
	ch := make(chan T, p.buf)
	if p.closed {
		close(ch)
		return ch
	}
	if _, ok := p.subs[key]; !ok {
		p.subs[key] = make(map[chan T]struct{})
	}
	p.subs[key][ch] = struct{}{}
	return ch
}

func (p *PubSub[K, T]) Unsubscribe(key K, ch chan T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.remove(key, ch)
}

func (p *PubSub[K, T]) remove(key K, ch chan T) {
	m, ok := p.subs[key]
	if !ok {
		return
	}
	if _, ok := m[ch]; !ok {
		return
	}
	delete(m, ch)
	close(ch)
	if len(m) == 0 {
		delete(p.subs, key)
	}
}

// Publish delivers v to every subscriber of key and returns how many
// subscribers were evicted for lagging.
func (p *PubSub[K, T]) Publish(key K, v T) (evicted int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for ch := range p.subs[key] {
		select {
		case ch <- v:
		default:
			p.remove(key, ch)
			evicted++
		}
	}
	return evicted
}

func (p *PubSub[K, T]) Subscribers(key K) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.subs[key])
}

// Close closes every subscriber channel. Later subscriptions get a closed
// channel and Publish delivers nothing.
func (p *PubSub[K, T]) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	for key, m := range p.subs {
		for ch := range m {
			close(ch)
		}
		delete(p.subs, key)
	}
}
