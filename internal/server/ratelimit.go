// SPDX-License-Identifier: EPL-2.0

package server

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterStore keeps one token bucket per client IP.
type limiterStore struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

func newLimiterStore(perSecond float64, burst int) *limiterStore {
	return &limiterStore{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Limit(perSecond),
		burst:   max(burst, 1),
		now:     time.Now,
	}
}

func (l *limiterStore) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	cl, ok := l.clients[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = cl
	}
	cl.lastSeen = l.now()

	return cl.limiter
}

// sweep forgets clients idle for longer than idle and returns how many are
// left.
func (l *limiterStore) sweep(idle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-idle)
	for key, cl := range l.clients {
		if cl.lastSeen.Before(cutoff) {
			delete(l.clients, key)
		}
	}

	return len(l.clients)
}

func (l *limiterStore) sweepEvery(ctx context.Context, every, idle time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.sweep(idle)
		case <-ctx.Done():
			return
		}
	}
}

// Middleware rejects requests over the per-client rate with 429.
func (l *limiterStore) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.get(c.ClientIP()).Allow() {
			c.Next()
			return
		}

		if l.limit > 0 {
			retry := math.Ceil(1 / float64(l.limit))
			c.Header("Retry-After", strconv.Itoa(int(retry)))
		}
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error": "Rate limit exceeded. Please slow down your requests.",
		})
	}
}
