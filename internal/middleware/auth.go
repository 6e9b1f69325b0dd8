package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recipes-be/internal/apperrors"
	"recipes-be/internal/entities"
	"recipes-be/internal/logging"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session"

const currentUserKey = "current_user"

// SessionResolver maps a session token to its user.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*entities.User, error)
}

// SessionToken extracts the session token from the session cookie or, failing
// that, from an "Authorization: Bearer" header. It returns "" when neither is set.
func SessionToken(c *gin.Context) string {
	if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
		return token
	}
	if token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// RequireSession rejects requests without a live session with 401 and
// otherwise stores the session's user on the context.
func RequireSession(sessions SessionResolver, log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := sessions.Resolve(c.Request.Context(), SessionToken(c))
		if err != nil {
			if errors.Is(err, apperrors.ErrUnauthorized) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": apperrors.Message(err)})
				return
			}
			log.Error(c.Request.Context(), "resolve session", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user stored by RequireSession.
func CurrentUser(c *gin.Context) (*entities.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entities.User)
	return user, ok
}
