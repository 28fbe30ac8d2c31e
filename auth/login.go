package auth

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Gameminde/Zinouchawebsie/models"
	"github.com/Gameminde/Zinouchawebsie/store"
	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// POST /api/auth/login
func Login(st store.Store, sessions *SessionManager, verifier IdentityVerifier, superAdminEmail string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Login is not configured"})
			return
		}

		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		// 1️⃣ Verify with the identity provider
		identity, err := verifier.Verify(c.Request.Context(), req.IDToken)
		if err != nil {
			log.Printf("❌ Login rejected: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid ID token"})
			return
		}

		// 2️⃣ Fetch or create the user, refreshing the profile
		user, err := st.GetUser(c.Request.Context(), identity.UID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			user = &models.User{ID: identity.UID}
		case err != nil:
			log.Printf("❌ Failed to load user %s: %v", identity.UID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		user.Email = identity.Email
		user.FirstName = identity.FirstName
		user.LastName = identity.LastName
		user.ProfileImageURL = identity.Picture
		if superAdminEmail != "" && strings.EqualFold(identity.Email, superAdminEmail) {
			user.IsAdmin = true
		}

		if err := st.UpsertUser(c.Request.Context(), user); err != nil {
			log.Printf("❌ Failed to save user %s: %v", identity.UID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save user"})
			return
		}

		// 3️⃣ Issue the session
		token, err := sessions.Issue(user.ID)
		if err != nil {
			log.Printf("❌ %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
			return
		}
		sessions.SetCookie(c, token)

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user":    user,
			"token":   token,
		})
	}
}

// POST /api/auth/logout
func Logout(sessions *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions.ClearCookie(c)
		c.Status(http.StatusNoContent)
	}
}
