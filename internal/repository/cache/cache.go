package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	v       V
	expires time.Time
}

func (e entry[V]) expired(now time.Time) bool {
	return !e.expires.IsZero() && now.After(e.expires)
}

// TTL is a keyed in-memory cache. Entries expire ttl after they were written;
// a zero ttl keeps them until deleted. With a positive ttl a janitor goroutine
// purges expired entries every ttl/2 until Close.
type TTL[V any] struct {
	mu   sync.RWMutex
	data map[string]entry[V]

	ttl  time.Duration
	now  func() time.Time
	stop chan struct{}
	once sync.Once
}

type config struct {
	ttl     time.Duration
	janitor bool
	now     func() time.Time
}

type Option func(*config)

func WithTTL(ttl time.Duration) Option      { return func(c *config) { c.ttl = ttl } }
func WithNoJanitor() Option                 { return func(c *config) { c.janitor = false } }
func WithClock(now func() time.Time) Option { return func(c *config) { c.now = now } }

func New[V any](opts ...Option) *TTL[V] {
	cfg := config{janitor: true, now: time.Now}
	for _, o := range opts {
		o(&cfg)
	}

	c := &TTL[V]{
		data: make(map[string]entry[V]),
		ttl:  cfg.ttl,
		now:  cfg.now,
		stop: make(chan struct{}),
	}
	if c.ttl > 0 && cfg.janitor {
		go c.janitor(time.NewTicker(c.ttl / 2))
	}
	return c
}

func (c *TTL[V]) janitor(t *time.Ticker) {
	defer t.Stop()
	for {
		select {
		case <-t.C:
			c.Purge()
		case <-c.stop:
			return
		}
	}
}

func (c *TTL[V]) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *TTL[V]) Put(key string, v V) {
	e := entry[V]{v: v}
	if c.ttl > 0 {
		e.expires = c.now().Add(c.ttl)
	}
	c.mu.Lock()
	c.data[key] = e
	c.mu.Unlock()
}

func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.data[key]
	c.mu.RUnlock()

	var zero V
	if !ok {
		return zero, false
	}
	if e.expired(c.now()) {
		c.mu.Lock()
		if cur, ok := c.data[key]; ok && cur.expires.Equal(e.expires) {
			delete(c.data, key)
		}
		c.mu.Unlock()
		return zero, false
	}
	return e.v, true
}

func (c *TTL[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.data, key)
	c.mu.Unlock()
}

// Purge drops every expired entry.
func (c *TTL[V]) Purge() {
	now := c.now()
	c.mu.Lock()
	for k, e := range c.data {
		if e.expired(now) {
			delete(c.data, k)
		}
	}
	c.mu.Unlock()
}

// Len counts live entries.
func (c *TTL[V]) Len() int {
	now := c.now()
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, e := range c.data {
		if !e.expired(now) {
			n++
		}
	}
	return n
}
