package routes

import (
	"github.com/Gameminde/Zinouchawebsie/auth"
	adminController "github.com/Gameminde/Zinouchawebsie/controllers/admin"
	orderControllers "github.com/Gameminde/Zinouchawebsie/controllers/order"
	"github.com/Gameminde/Zinouchawebsie/middleware"
	"github.com/Gameminde/Zinouchawebsie/store"
	"github.com/gin-gonic/gin"
)

// Deps carries what the handlers need. Verifier and Hub may be nil.
type Deps struct {
	Store           store.Store
	Sessions        *auth.SessionManager
	Verifier        auth.IdentityVerifier
	Hub             *orderControllers.Hub
	SuperAdminEmail string
}

// SetupRoutes is the single entry-point that wires every route group under /api.
func SetupRoutes(r *gin.Engine, deps Deps) {
	api := r.Group("/api")
	api.Use(middleware.Authenticate(deps.Store, deps.Sessions))

	api.GET("/health", adminController.Health(deps.Store))

	// 1️⃣ Login, logout and the current identity
	SetupAuthRoutes(api, deps)

	// 2️⃣ Catalog, reviews and promo validation
	SetupShopRoutes(api, deps)

	// 3️⃣ Signed-in customer routes
	SetupUserRoutes(api, deps)

	// 4️⃣ Orders
	SetupOrderRoutes(api, deps)

	// 5️⃣ Admin dashboard
	SetupAdminRoutes(api, deps)
}
