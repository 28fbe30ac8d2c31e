package routes

import (
	adminController "github.com/Gameminde/Zinouchawebsie/controllers/admin"
	productcontroller "github.com/Gameminde/Zinouchawebsie/controllers/product"
	promoControllers "github.com/Gameminde/Zinouchawebsie/controllers/promo"
	userControllers "github.com/Gameminde/Zinouchawebsie/controllers/user"
	"github.com/Gameminde/Zinouchawebsie/middleware"
	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes registers all "/api/admin/*" endpoints.
func SetupAdminRoutes(api *gin.RouterGroup, deps Deps) {
	st := deps.Store
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.RequireAdmin)
	{
		// ─────────── Dashboard ───────────
		adminGroup.GET("/stats", adminController.GetStats(st))
		adminGroup.GET("/users", userControllers.GetAllUsers(st))

		// ─────────── Product spreadsheets ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.GET("/export", productcontroller.ExportProductsToExcel(st))
			productAdmin.POST("/import", productcontroller.ImportProductsFromExcel(st))
		}

		// ─────────── Promo codes ───────────
		promoAdmin := adminGroup.Group("/promo-codes")
		{
			promoAdmin.GET("", promoControllers.ListPromoCodes(st))
			promoAdmin.POST("", promoControllers.CreatePromoCode(st))
			promoAdmin.PUT("/:id", promoControllers.UpdatePromoCode(st))
		}

		// ─────────── Live order feed ───────────
		if deps.Hub != nil {
			adminGroup.GET("/orders/ws", deps.Hub.ServeWS)
		}
	}
}
