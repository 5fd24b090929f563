// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package httpapi

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// requestsPerWindow and window implement a per-IP limit of 60 requests
// per 60 seconds. golang.org/x/time/rate's token bucket with
// burst=requestsPerWindow and a refill rate of requestsPerWindow/window
// approximates the sliding window closely enough for a rate limiter whose
// purpose is abuse prevention, not billing precision.
const (
	requestsPerWindow = 60
	window            = 60 * time.Second
	idleEvictAfter    = 10 * time.Minute
)

// ipRateLimiter tracks one rate.Limiter per client IP, evicting idle
// entries so long-running servers don't leak memory over many distinct
// clients.
type ipRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPRateLimiter() *ipRateLimiter {
	return &ipRateLimiter{limiters: make(map[string]*limiterEntry)}
}

// Allow reports whether a request from ip should proceed.
func (rl *ipRateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.evictLocked(now)

	entry, ok := rl.limiters[ip]
	if !ok {
		entry = &limiterEntry{
			limiter: rate.NewLimiter(rate.Limit(float64(requestsPerWindow)/window.Seconds()), requestsPerWindow),
		}
		rl.limiters[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter.Allow()
}

func (rl *ipRateLimiter) evictLocked(now time.Time) {
	for ip, entry := range rl.limiters {
		if now.Sub(entry.lastSeen) > idleEvictAfter {
			delete(rl.limiters, ip)
		}
	}
}
