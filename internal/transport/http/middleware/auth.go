package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"learnlog/internal/pkg/jwtutil"
	"learnlog/internal/session"
	"learnlog/internal/transport/http/response"
)

const (
	ContextUserIDKey    = "user_id"
	ContextSessionIDKey = "session_id"
)

// CurrentUser resolves the request identity without enforcing it. A Bearer
// token wins over the session cookie so API clients are unaffected by any
// browser session in the same jar. Handlers that need a verified identity
// add RequireUser.
func CurrentUser(sessions *session.Store, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := bearerUserID(c, jwtSecret); ok {
			c.Set(ContextUserIDKey, userID)
			c.Next()
			return
		}

		cookie, err := c.Cookie(session.CookieName)
		if err == nil && cookie != "" {
			record, err := sessions.Get(c.Request.Context(), cookie)
			if err == nil && record != nil && record.UserID != 0 {
				c.Set(ContextUserIDKey, record.UserID)
				c.Set(ContextSessionIDKey, cookie)
			}
		}
		c.Next()
	}
}

// RequireUser gates a route on a resolved identity. Browser requests are
// redirected to the login page; Bearer requests get a 401.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(ContextUserIDKey); exists {
			c.Next()
			return
		}

		if strings.TrimSpace(c.GetHeader("Authorization")) != "" {
			response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "authentication required")
			c.Abort()
			return
		}

		c.Redirect(http.StatusFound, "/login")
		c.Abort()
	}
}

func bearerUserID(c *gin.Context, secret string) (uint, bool) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	const prefix = "Bearer "
	if !strings.HasPrefix(authHeader, prefix) {
		return 0, false
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
	claims, err := jwtutil.ParseToken(secret, token)
	if err != nil {
		return 0, false
	}
	return claims.UserID, true
}

// UserID returns the identity CurrentUser resolved for this request.
func UserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := value.(uint)
	if !ok || userID == 0 {
		return 0, false
	}
	return userID, true
}

// SessionID returns the session token for cookie-authenticated requests.
// Bearer requests have none.
func SessionID(c *gin.Context) (string, bool) {
	value, exists := c.Get(ContextSessionIDKey)
	if !exists {
		return "", false
	}
	sid, ok := value.(string)
	return sid, ok && sid != ""
}
