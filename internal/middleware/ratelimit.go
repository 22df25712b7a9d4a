// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"newsdesk/internal/metrics"
	"newsdesk/internal/render"
)

// Limiter decides whether the client identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// limiterEntry is the token bucket of a single client.
type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter is an in-process token bucket limiter keyed by client IP.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*limiterEntry
	rate    rate.Limit
	burst   int
	ttl     time.Duration
	stopCh  chan struct{}
}

// NewRateLimiter allows perMinute requests per minute per client with the
// given burst. Idle clients are dropped after ttl by a background sweep.
func NewRateLimiter(perMinute, burst int, ttl time.Duration) *RateLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	rl := &RateLimiter{
		clients: make(map[string]*limiterEntry),
		rate:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:   burst,
		ttl:     ttl,
		stopCh:  make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(ttl)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.cleanup()
			case <-rl.stopCh:
				return
			}
		}
	}()

	return rl
}

// Stop terminates the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// Allow consumes one token from the bucket of key.
func (rl *RateLimiter) Allow(_ context.Context, key string) (bool, error) {
	rl.mu.Lock()
	entry, ok := rl.clients[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.clients[key] = entry
	}
	entry.lastSeen = time.Now()
	rl.mu.Unlock()

	return entry.limiter.Allow(), nil
}

// cleanup removes clients idle for longer than ttl.
func (rl *RateLimiter) cleanup() {
	cutoff := time.Now().Add(-rl.ttl)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, entry := range rl.clients {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.clients, key)
		}
	}
}

// ValkeyLimiter is a fixed-window limiter shared by every instance that
// talks to the same Valkey server.
type ValkeyLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

// NewValkeyLimiter allows limit requests per window per client.
func NewValkeyLimiter(client *redis.Client, limit int, window time.Duration) *ValkeyLimiter {
	return &ValkeyLimiter{client: client, limit: limit, window: window, prefix: "newsdesk:ratelimit:"}
}

// Allow increments the counter of the current window for key.
func (vl *ValkeyLimiter) Allow(ctx context.Context, key string) (bool, error) {
	slot := time.Now().UnixNano() / int64(vl.window)
	k := fmt.Sprintf("%s%s:%d", vl.prefix, key, slot)

	var incr *redis.IntCmd
	_, err := vl.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.Expire(ctx, k, vl.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("valkey rate limit: %w", err)
	}
	return incr.Val() <= int64(vl.limit), nil
}

// RateLimit rejects clients that exceed l with a 429 envelope. Limiter
// errors let the request through.
func RateLimit(l Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := l.Allow(r.Context(), clientIP(r))
			if err != nil {
				slog.Warn("rate limiter unavailable", "error", err)
				ok = true
			}
			if !ok {
				metrics.RateLimited.Inc()
				render.Send(w, r, render.ErrTooManyRequests())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the host part of RemoteAddr. Forwarding headers are not
// read here; behind a trusted proxy the router rewrites RemoteAddr first.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
