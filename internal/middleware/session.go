package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/safestep/safestep-api/internal/models"
	appErrors "github.com/safestep/safestep-api/pkg/errors"
	"github.com/safestep/safestep-api/pkg/response"
)

// ContextUserKey is the gin context key storing the resolved user.
const ContextUserKey = "currentUser"

type identityResolver interface {
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

// RequireSession resolves the session cookie to a user and rejects the
// request before any handler runs when no valid session exists. Handlers
// behind it always see an authenticated identity and never authenticate
// themselves.
func RequireSession(auth identityResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := resolve(c, auth, cookieName)
		if user == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// OptionalSession attaches the user when a valid session exists but never
// blocks: anonymous is a legitimate state for the routes using it.
func OptionalSession(auth identityResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := resolve(c, auth, cookieName); user != nil {
			c.Set(ContextUserKey, user)
		}
		c.Next()
	}
}

// CurrentUser returns the resolved user from the gin context, or nil.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

func resolve(c *gin.Context, auth identityResolver, cookieName string) *models.User {
	token, err := c.Cookie(cookieName)
	if err != nil || token == "" {
		return nil
	}
	user, err := auth.CurrentUser(c.Request.Context(), token)
	if err != nil {
		return nil
	}
	return user
}
