package http

import (
	"github.com/gin-gonic/gin"
	"tce-quiz-dashboard/internal/app"
	"tce-quiz-dashboard/internal/domain"
)

const (
	// SessionCookie carries the session id for browser clients.
	SessionCookie = "session_id"
	// SessionHeader carries the session id for API clients.
	SessionHeader = "X-Session-ID"

	sessionKey = "session"
)

// withWarnings gives every request its own warnings collector.
func withWarnings() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, w := app.WithWarnings(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)
		c.Set(warningsKey, w)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	if id := c.GetHeader(SessionHeader); id != "" {
		return id
	}
	if id, err := c.Cookie(SessionCookie); err == nil && id != "" {
		return id
	}
	// browsers cannot set headers on websocket handshakes
	return c.Query("session")
}

// requireSession resolves the caller's session and stores it on the context.
func requireSession(service *app.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := service.CurrentSession(c.Request.Context(), sessionID(c))
		if err != nil {
			fail(c, err)
			return
		}
		c.Set(sessionKey, session)
		c.Next()
	}
}

// requireAdmin must run after requireSession.
func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentSession(c).IsAdmin() {
			fail(c, domain.ErrForbidden)
			return
		}
		c.Next()
	}
}

// requireStudent must run after requireSession.
func requireStudent() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentSession(c).IsAdmin() {
			fail(c, domain.ErrForbidden)
			return
		}
		c.Next()
	}
}

func currentSession(c *gin.Context) app.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(app.Session); ok {
			return s
		}
	}
	return app.Session{}
}
