package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/Gameminde/Zinouchawebsie/auth"
	"github.com/Gameminde/Zinouchawebsie/models"
	"github.com/Gameminde/Zinouchawebsie/store"
	"github.com/gin-gonic/gin"
)

const (
	userKey   = "user"
	userIDKey = "user_id"
)

// Authenticate resolves the session, when present, into the current user.
// Requests without a valid session continue anonymously.
func Authenticate(st store.Store, sessions *auth.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessions.TokenFromRequest(c)
		if token == "" {
			c.Next()
			return
		}

		userID, err := sessions.Parse(token)
		if err != nil {
			c.Next()
			return
		}

		// the admin flag is read fresh on every request
		user, err := st.GetUser(c.Request.Context(), userID)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				log.Printf("❌ Failed to load session user %s: %v", userID, err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
				return
			}
			c.Next()
			return
		}

		c.Set(userKey, user)
		c.Set(userIDKey, user.ID)
		c.Next()
	}
}

// RequireUser rejects anonymous requests with 401.
func RequireUser(c *gin.Context) {
	if _, ok := CurrentUser(c); !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.Next()
}

// RequireAdmin rejects anonymous requests with 401 and non-admins with 403.
func RequireAdmin(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if !user.IsAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
		return
	}
	c.Next()
}

// CurrentUser returns the user set by Authenticate.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(userKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}
