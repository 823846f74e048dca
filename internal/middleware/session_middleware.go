package middleware

import (
	"crypto/sha256"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const sessionContextKey = "sessionID"

// Session resolves the caller's session identifier and stores it on the
// request context. The id correlates read-state across requests; it is
// not an authentication credential.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(sessionContextKey, ResolveSessionID(c.Request))
		c.Next()
	}
}

// SessionID returns the id resolved by Session.
func SessionID(c *gin.Context) string {
	if value, ok := c.Get(sessionContextKey); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}

// ResolveSessionID extracts the session id from the X-Session-ID header,
// then the sessionId query parameter (websocket clients can't set
// headers), then falls back to a hash of the caller's address so
// anonymous clients still get stable read-state.
func ResolveSessionID(r *http.Request) string {
	if id := r.Header.Get("X-Session-ID"); id != "" {
		return id
	}
	if id := r.URL.Query().Get("sessionId"); id != "" {
		return id
	}

	addr := r.RemoteAddr
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		addr = forwarded
	}
	sum := sha256.Sum256([]byte(addr))
	return fmt.Sprintf("user_%x", sum[:8])
}
