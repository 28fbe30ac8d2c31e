package routes

import (
	addressControllers "github.com/Gameminde/Zinouchawebsie/controllers/address"
	cartControllers "github.com/Gameminde/Zinouchawebsie/controllers/cart"
	userControllers "github.com/Gameminde/Zinouchawebsie/controllers/user"
	wishlistControllers "github.com/Gameminde/Zinouchawebsie/controllers/wishlist"
	"github.com/Gameminde/Zinouchawebsie/middleware"
	"github.com/gin-gonic/gin"
)

// SetupUserRoutes registers the endpoints that need a signed-in user.
func SetupUserRoutes(api *gin.RouterGroup, deps Deps) {
	st := deps.Store
	userGroup := api.Group("")
	userGroup.Use(middleware.RequireUser)
	{
		// ──────────────── Profile ────────────────
		userGroup.PUT("/users/me", userControllers.UpdateMe(st))

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetUserCart(st))
			cartGroup.POST("", cartControllers.AddCartItem(st))
			cartGroup.PUT("/:productId", cartControllers.UpdateCartItem(st))
			cartGroup.DELETE("/:productId", cartControllers.DeleteCartItem(st))
			cartGroup.DELETE("", cartControllers.ClearUserCart(st))
		}

		// ──────────────── Wishlist ────────────────
		wishlistGroup := userGroup.Group("/wishlist")
		{
			wishlistGroup.GET("", wishlistControllers.GetWishlist(st))
			wishlistGroup.POST("", wishlistControllers.AddToWishlist(st))
			wishlistGroup.DELETE("/:productId", wishlistControllers.RemoveFromWishlist(st))
		}

		// ──────────────── Address book ────────────────
		addressGroup := userGroup.Group("/addresses")
		{
			addressGroup.GET("", addressControllers.GetAddresses(st))
			addressGroup.GET("/:id", addressControllers.GetAddress(st))
			addressGroup.POST("", addressControllers.CreateAddress(st))
			addressGroup.PUT("/:id", addressControllers.UpdateAddress(st))
			addressGroup.DELETE("/:id", addressControllers.DeleteAddress(st))
		}
	}
}
