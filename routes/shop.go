package routes

import (
	productcontroller "github.com/Gameminde/Zinouchawebsie/controllers/product"
	promoControllers "github.com/Gameminde/Zinouchawebsie/controllers/promo"
	reviewControllers "github.com/Gameminde/Zinouchawebsie/controllers/review"
	"github.com/Gameminde/Zinouchawebsie/middleware"
	"github.com/gin-gonic/gin"
)

// SetupShopRoutes registers the storefront endpoints. Reads are public.
func SetupShopRoutes(api *gin.RouterGroup, deps Deps) {
	st := deps.Store

	// ─────────── Catalog ───────────
	products := api.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(st))
		products.GET("/:id", productcontroller.GetProductByID(st))
		products.POST("", middleware.RequireAdmin, productcontroller.CreateProduct(st))
		products.PUT("/:id", middleware.RequireAdmin, productcontroller.UpdateProduct(st))
		products.DELETE("/:id", middleware.RequireAdmin, productcontroller.DeleteProduct(st))
	}

	// ─────────── Reviews ───────────
	api.GET("/reviews", reviewControllers.GetReviews(st))
	api.POST("/reviews", middleware.RequireUser, reviewControllers.CreateReview(st))

	// ─────────── Promo codes ───────────
	api.POST("/promo-codes/validate", promoControllers.ValidatePromoCode(st))
}
