// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/MKhiriev/go-pass-vault/internal/utils"
)

// ownerLimiterTTL is how long an idle owner keeps its bucket.
const ownerLimiterTTL = 10 * time.Minute

// ownerLimiter keeps one token bucket per owner id.
type ownerLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
	buckets   map[string]*ownerBucket
	now       func() time.Time
}

type ownerBucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func newOwnerLimiter(limit rate.Limit, burst int, ttl time.Duration) *ownerLimiter {
	return &ownerLimiter{
		limit:   limit,
		burst:   burst,
		ttl:     ttl,
		buckets: make(map[string]*ownerBucket),
		now:     time.Now,
	}
}

func (m *ownerLimiter) allow(ownerID string) bool {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	b := m.buckets[ownerID]
	if b == nil {
		b = &ownerBucket{lim: rate.NewLimiter(m.limit, m.burst)}
		m.buckets[ownerID] = b
	}
	b.lastSeen = now

	if now.Sub(m.lastSweep) > m.ttl {
		for id, bucket := range m.buckets {
			if now.Sub(bucket.lastSeen) > m.ttl {
				delete(m.buckets, id)
			}
		}
		m.lastSweep = now
	}

	return b.lim.AllowN(now, 1)
}

func (m *ownerLimiter) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.buckets)
}

// withRateLimit rejects requests of an owner that ran out of tokens with
// 429. It must run after withIdentity.
func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	if h.limiter == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := utils.GetIdentityFromContext(r.Context())
		if !ok {
			writeError(w, r, ErrNoIdentityInContext, "Handler.withRateLimit")
			return
		}

		if !h.limiter.allow(identity.OwnerID) {
			w.Header().Set("Retry-After", "1")
			writeError(w, r, ErrRateLimited, "Handler.withRateLimit")
			return
		}

		next.ServeHTTP(w, r)
	})
}
