package middleware

import (
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-de-belleza/internal/cache"
	"github.com/BruksfildServices01/salon-de-belleza/internal/httperr"
)

// RateLimit limita os POST públicos por IP. onBlocked decide a resposta
// (redirect com flash nas páginas HTML).
func RateLimit(
	limiter *cache.FixedWindowLimiter,
	scope string,
	logger *slog.Logger,
	onBlocked gin.HandlerFunc,
) gin.HandlerFunc {
	if !limiter.Enabled() {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		ok, remaining, err := limiter.Allow(c.Request.Context(), scope, c.ClientIP())
		if err != nil {
			RequestLog(c, logger).Warn("rate limit check failed", "scope", scope, "error", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !ok {
			if onBlocked != nil {
				onBlocked(c)
				c.Abort()
				return
			}
			httperr.TooManyRequests(c, "too_many_requests", "Demasiadas solicitudes, intenta nuevamente en un minuto.")
			return
		}

		c.Next()
	}
}
