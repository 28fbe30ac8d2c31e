package userControllers

import (
	"log"
	"net/http"
	"strings"

	"github.com/Gameminde/Zinouchawebsie/models"
	"github.com/Gameminde/Zinouchawebsie/store"
	"github.com/gin-gonic/gin"
)

type UpdateUserInput struct {
	FirstName       *string `json:"first_name" binding:"omitempty,max=255"`
	LastName        *string `json:"last_name" binding:"omitempty,max=255"`
	ProfileImageURL *string `json:"profile_image_url" binding:"omitempty,max=1024"`
}

func sessionUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// GET /api/auth/me
func GetMe(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// GET /api/admin/users
func GetAllUsers(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := st.ListUsers(c.Request.Context())
		if err != nil {
			log.Println("❌ Failed to fetch users:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// PUT /api/users/me
// The email and admin flag are owned by the identity provider and are never changed here.
func UpdateMe(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := sessionUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input UpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		user := *current
		if input.FirstName != nil {
			user.FirstName = strings.TrimSpace(*input.FirstName)
		}
		if input.LastName != nil {
			user.LastName = strings.TrimSpace(*input.LastName)
		}
		if input.ProfileImageURL != nil {
			user.ProfileImageURL = strings.TrimSpace(*input.ProfileImageURL)
		}

		if err := st.UpsertUser(c.Request.Context(), &user); err != nil {
			log.Printf("❌ Failed to update user %s: %v", user.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
