package routes

import (
	"github.com/Gameminde/Zinouchawebsie/auth"
	userControllers "github.com/Gameminde/Zinouchawebsie/controllers/user"
	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes registers all "/api/auth/*" endpoints.
func SetupAuthRoutes(api *gin.RouterGroup, deps Deps) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", auth.Login(deps.Store, deps.Sessions, deps.Verifier, deps.SuperAdminEmail))
		authGroup.POST("/logout", auth.Logout(deps.Sessions))
		authGroup.GET("/me", userControllers.GetMe)
	}
}
