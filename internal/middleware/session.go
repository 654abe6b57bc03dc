package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionCookie is the cookie carrying the per-browser session ID that
// scopes interaction (debounce) state.
const SessionCookie = "quake_session"

// SessionKey is the gin context key holding the resolved session ID.
const SessionKey = "sessionID"

// Session assigns each browser a session ID on first contact and makes it
// available to handlers. Filter debouncing is scoped by this ID, so two
// browsers never share interaction state.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetCookie(SessionCookie, id, 0, "/", "", false, true)
		}
		c.Set(SessionKey, id)
		c.Next()
	}
}

// SessionID returns the session ID set by Session.
func SessionID(c *gin.Context) string {
	if v, ok := c.Get(SessionKey); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
