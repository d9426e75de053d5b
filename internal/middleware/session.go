package middleware

import (
	"github.com/gin-gonic/gin"
)

const SessionIDKey = "session_id"

// DefaultSessionID is used when a client sends no session header; casual use
// of the API then behaves like a single shared search.
const DefaultSessionID = "default"

// SessionID extracts the search-session identifier from the X-Session-ID
// header so that concurrent users keep independent raw sets, filters and
// toggles.
func SessionID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Session-ID")
		if id == "" {
			id = DefaultSessionID
		}
		c.Set(SessionIDKey, id)
		c.Next()
	}
}

// GetSessionID retrieves the session ID from the context.
func GetSessionID(c *gin.Context) string {
	id, exists := c.Get(SessionIDKey)
	if !exists {
		return DefaultSessionID
	}
	return id.(string)
}
