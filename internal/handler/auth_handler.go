package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safestep/safestep-api/internal/middleware"
	"github.com/safestep/safestep-api/internal/models"
	"github.com/safestep/safestep-api/pkg/config"
	appErrors "github.com/safestep/safestep-api/pkg/errors"
	"github.com/safestep/safestep-api/pkg/response"
)

type authService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResult, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResult, error)
	Logout(ctx context.Context, token string) error
}

// AuthHandler wires the auth service to HTTP endpoints and owns the session
// cookie handling.
type AuthHandler struct {
	service authService
	cookie  config.SessionConfig
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc authService, cookie config.SessionConfig) *AuthHandler {
	return &AuthHandler{service: svc, cookie: cookie}
}

// Register creates an account and opens a session for it.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid registration payload"))
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	res, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, res.Token)
	response.Created(c, response.Fields{
		"message": "Account created successfully",
		"user":    res.User,
	})
}

// Login authenticates a user and opens a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, res.Token)
	response.OK(c, http.StatusOK, response.Fields{
		"message": fmt.Sprintf("Welcome back, %s!", res.User.Name),
		"user":    res.User,
	})
}

// Logout ends the current session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(h.cookie.CookieName)
	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}

	h.clearSessionCookie(c)
	response.OK(c, http.StatusOK, response.Fields{"message": "Logged out successfully"})
}

// Check reports whether the request carries a valid session.
func (h *AuthHandler) Check(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		response.OK(c, http.StatusOK, response.Fields{"logged_in": false})
		return
	}
	response.OK(c, http.StatusOK, response.Fields{
		"logged_in": true,
		"user":      user.Info(),
	})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.CookieName, token, int(h.cookie.TTL.Seconds()), "/", "", h.cookie.CookieSecure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.CookieName, "", -1, "/", "", h.cookie.CookieSecure, true)
}
