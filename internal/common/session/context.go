// internal/common/session/context.go
package session

import "github.com/gin-gonic/gin"

const contextKey = "dashboard.session"

// SetContext attaches the session record to the request context for handlers.
func SetContext(c *gin.Context, rec *Record) {
	c.Set(contextKey, rec)
}

// FromContext retrieves the session record placed by the session middleware.
func FromContext(c *gin.Context) (*Record, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil, false
	}
	rec, ok := v.(*Record)
	return rec, ok
}
