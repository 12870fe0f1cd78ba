package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"learnlog/internal/session"
	"learnlog/internal/transport/http/middleware"
)

// wantsJSON reports whether the client is an API consumer rather than a
// browser form post. API consumers get envelopes, browsers get redirects.
func wantsJSON(c *gin.Context) bool {
	if strings.HasPrefix(strings.TrimSpace(c.GetHeader("Authorization")), "Bearer ") {
		return true
	}
	if c.ContentType() == "application/json" {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}

// flash queues a one-shot message on the request's session, if it has one.
func flash(c *gin.Context, sessions *session.Store, category, message string) {
	sid, ok := middleware.SessionID(c)
	if !ok {
		return
	}
	_ = sessions.AddFlash(c.Request.Context(), sid, category, message)
}

// popFlashes drains the session's pending flash messages for display.
func popFlashes(c *gin.Context, sessions *session.Store) []session.Flash {
	sid, ok := middleware.SessionID(c)
	if !ok {
		return nil
	}
	flashes, err := sessions.PopFlashes(c.Request.Context(), sid)
	if err != nil {
		return nil
	}
	return flashes
}
