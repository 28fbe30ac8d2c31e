package routes

import (
	orderControllers "github.com/Gameminde/Zinouchawebsie/controllers/order"
	"github.com/Gameminde/Zinouchawebsie/middleware"
	"github.com/gin-gonic/gin"
)

func SetupOrderRoutes(api *gin.RouterGroup, deps Deps) {
	st := deps.Store
	orders := api.Group("/orders")
	orders.Use(middleware.RequireUser)
	{
		// Place an order from the current cart
		orders.POST("", orderControllers.PlaceOrderHandler(st, deps.Hub))

		// Own orders, or every order for admins
		orders.GET("", orderControllers.GetOrdersHandler(st))
		orders.GET("/:id", orderControllers.GetOrderByIDHandler(st))

		// Update order status (e.g., shipped, cancelled)
		orders.PUT("/:id/status", middleware.RequireAdmin, orderControllers.UpdateOrderStatusHandler(st, deps.Hub))

		// Update payment status (pending or paid)
		orders.PUT("/:id/payment-status", middleware.RequireAdmin, orderControllers.UpdatePaymentStatusHandler(st))
	}
}
