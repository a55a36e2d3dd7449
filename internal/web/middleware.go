// internal/web/middleware.go
package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	apperrors "mortgage-dashboard/internal/common/errors"
	"mortgage-dashboard/internal/common/logger"
	"mortgage-dashboard/internal/common/metrics"
	"mortgage-dashboard/internal/common/observability"
	"mortgage-dashboard/internal/common/session"
)

// RequireSession resolves the session cookie into a session record. Requests
// without a live session are bounced to the auth screen.
func RequireSession(store *session.Store, cookieName string, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cookieName)
		if err != nil || id == "" {
			c.Redirect(http.StatusFound, "/auth")
			c.Abort()
			return
		}

		rec, err := store.Get(c.Request.Context(), id)
		if err != nil {
			if !errors.Is(err, apperrors.ErrSessionNotFound) {
				log.WithError(err).Error("session lookup failed", map[string]interface{}{
					"session_id": id,
				})
			}
			c.SetCookie(cookieName, "", -1, "/", "", false, true)
			c.Redirect(http.StatusFound, "/auth")
			c.Abort()
			return
		}

		session.SetContext(c, rec)
		c.Next()
	}
}

// RequestMetrics feeds the prometheus vectors and the otel meter per request.
func RequestMetrics(obs *observability.Observability) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		page := c.FullPath()
		if page == "" {
			page = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		elapsed := time.Since(start)

		metrics.PageRequestsTotal.WithLabelValues(page, status).Inc()
		metrics.PageRequestDuration.WithLabelValues(page).Observe(elapsed.Seconds())
		obs.RecordRequestServed(c.Request.Context(), page, status)
		obs.RecordRequestDuration(c.Request.Context(), elapsed, page)
	}
}

// RequestLogger logs every request at debug, failures at warn.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]interface{}{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"client":   c.ClientIP(),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Error("request completed", fields)
		} else if c.Writer.Status() >= http.StatusBadRequest {
			log.Warn("request completed", fields)
		} else {
			log.Debug("request completed", fields)
		}
	}
}

// CORS permits the configured origins; empty config falls back to same-origin
// defaults that still allow local development tooling.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(allowedOrigins) > 0 {
		cfg.AllowOrigins = allowedOrigins
	} else {
		cfg.AllowOrigins = []string{"http://localhost:8080", "http://127.0.0.1:8080"}
	}
	cfg.AllowCredentials = true
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	return cors.New(cfg)
}
