package middleware

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finwallet/fintech-api/pkg/web"
)

var errTooManyRequests = errors.New("too many requests, please try again later")

type visitor struct {
	count       int
	windowStart time.Time
}

// RateLimiter limits each client IP to maxRequests per window.
//
// State lives in process memory; the limiter gates requests before the core
// is invoked and keeps no durable state.
func RateLimiter(maxRequests int, window time.Duration) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		visitors = make(map[string]*visitor)
	)

	return func(ctx *gin.Context) {
		now := time.Now()
		ip := ctx.ClientIP()

		mu.Lock()

		v, ok := visitors[ip]
		if !ok || now.Sub(v.windowStart) >= window {
			visitors[ip] = &visitor{count: 1, windowStart: now}
			mu.Unlock()
			ctx.Next()

			return
		}

		v.count++
		if v.count > maxRequests {
			// Sweep stale entries while the lock is held so the map
			// does not grow without bound.
			for key, vis := range visitors {
				if now.Sub(vis.windowStart) >= window {
					delete(visitors, key)
				}
			}

			mu.Unlock()
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests,
				web.Error(http.StatusTooManyRequests, errTooManyRequests))

			return
		}

		mu.Unlock()
		ctx.Next()
	}
}
