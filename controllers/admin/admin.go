package adminController

import (
	"log"
	"net/http"

	"github.com/Gameminde/Zinouchawebsie/store"
	"github.com/gin-gonic/gin"
)

// GET /api/admin/stats
// Computed on every call. Cancelled orders count as orders but not as revenue.
func GetStats(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := st.Stats(c.Request.Context())
		if err != nil {
			log.Println("❌ Failed to compute stats:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stats"})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// GET /api/health
func Health(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := st.Ping(c.Request.Context()); err != nil {
			log.Println("❌ Health check failed:", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "store unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
