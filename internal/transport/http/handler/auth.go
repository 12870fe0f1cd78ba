package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"learnlog/internal/app"
	"learnlog/internal/forms"
	"learnlog/internal/model"
	"learnlog/internal/session"
	"learnlog/internal/transport/http/middleware"
	"learnlog/internal/transport/http/response"
)

type AuthHandler struct {
	authService *app.AuthService
	sessions    *session.Store
}

func NewAuthHandler(authService *app.AuthService, sessions *session.Store) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

// LoginPage serves the login form state: any pending flash messages plus
// whether an identity is already attached.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	var user *model.User
	if userID, ok := middleware.UserID(c); ok {
		user, _ = h.authService.GetUserByID(userID)
	}

	payload := gin.H{
		"authenticated": user.IsAuthenticated(),
		"flashes":       popFlashes(c, h.sessions),
	}
	if user.IsAuthenticated() {
		payload["user"] = gin.H{"id": user.ID, "email": user.Email}
	}
	response.OK(c, payload)
}

// Login validates credentials, opens a session and hands browsers a redirect
// to the journal list. API clients get the JWT in the envelope instead.
func (h *AuthHandler) Login(c *gin.Context) {
	var form forms.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	if errs, ok := form.Validate(); !ok {
		response.FormErrors(c, errs)
		return
	}

	result, err := h.authService.Login(app.LoginInput{
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrInvalidCredential):
			response.Error(c, http.StatusUnauthorized, response.CodeInvalidCredentials, "your email or password doesn't match")
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "login failed")
		}
		return
	}

	sid, err := h.sessions.Create(c.Request.Context(), result.User.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "session creation failed")
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, sid, int(h.sessions.TTL()/time.Second), "/", "", false, true)

	_ = h.sessions.AddFlash(c.Request.Context(), sid, "success", "You've been logged in!")

	if wantsJSON(c) {
		response.OK(c, gin.H{
			"token": result.Token,
			"user": gin.H{
				"id":    result.User.ID,
				"email": result.User.Email,
			},
		})
		return
	}
	c.Redirect(http.StatusFound, "/journals")
}

// Logout closes the session and sends the browser back to the login page.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sid, ok := middleware.SessionID(c); ok {
		_ = h.sessions.Delete(c.Request.Context(), sid)
	}
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)

	if wantsJSON(c) {
		response.OK(c, gin.H{"logged_out": true})
		return
	}
	c.Redirect(http.StatusFound, "/")
}
