// Package ratelimit provides per-client rate limiting backed by golang.org/x/time/rate.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int // burst capacity of the bucket that answered
	Remaining  int
	RetryAfter time.Duration
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per client and endpoint.
type Limiter struct {
	config      *Config
	mu          sync.Mutex
	entries     map[string]*entry
	now         func() time.Time
	cleanupStop chan struct{}
	stopOnce    sync.Once
}

// NewLimiter creates a new rate limiter with the given configuration.
// A nil config disables limiting.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = &Config{}
	}

	l := &Limiter{
		config:  config,
		entries: make(map[string]*entry),
		now:     time.Now,
	}

	if config.Enabled && config.CleanupInterval > 0 {
		l.cleanupStop = make(chan struct{})
		go l.cleanup(config.CleanupInterval)
	}
	return l
}

// Allow reports whether a request from clientID to method+path may proceed.
func (l *Limiter) Allow(clientID, path, method string) (bool, Info) {
	if !l.config.Enabled || l.config.Whitelist[clientID] {
		return true, Info{Allowed: true}
	}
	if l.config.Blacklist[clientID] {
		return false, Info{}
	}

	ep := MatchEndpoint(path, method, l.config.EndpointConfigs)
	if ep == nil {
		ep = &EndpointConfig{Rate: l.config.DefaultRate, Burst: l.config.DefaultBurst}
	}
	if ep.Unlimited() {
		return true, Info{Allowed: true}
	}

	key := clientID + ":" + method + ":" + ep.key()
	lim := l.limiterFor(key, ep)
	now := l.now()

	if lim.AllowN(now, 1) {
		return true, Info{
			Allowed:   true,
			Limit:     lim.Burst(),
			Remaining: int(lim.TokensAt(now)),
		}
	}

	// Peek at the wait for the next token without consuming it.
	res := lim.ReserveN(now, 1)
	retry := res.DelayFrom(now)
	res.CancelAt(now)

	return false, Info{
		Limit:      lim.Burst(),
		RetryAfter: retry,
	}
}

func (l *Limiter) limiterFor(key string, ep *EndpointConfig) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		burst := ep.Burst
		if burst <= 0 {
			burst = max(1, int(ep.Rate))
		}
		e = &entry{limiter: rate.NewLimiter(rate.Limit(ep.Rate), burst)}
		l.entries[key] = e
	}
	e.lastSeen = l.now()
	return e.limiter
}

func (l *Limiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.evictIdle()
		case <-l.cleanupStop:
			return
		}
	}
}

// evictIdle drops buckets not used within the configured idle TTL.
func (l *Limiter) evictIdle() {
	ttl := l.config.IdleTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	cutoff := l.now().Add(-ttl)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, e := range l.entries {
		if e.lastSeen.Before(cutoff) {
			delete(l.entries, key)
		}
	}
}

func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Stop stops the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		if l.cleanupStop != nil {
			close(l.cleanupStop)
		}
	})
}
