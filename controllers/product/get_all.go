package productcontroller

import (
	"log"
	"net/http"

	"github.com/Gameminde/Zinouchawebsie/catalog"
	"github.com/Gameminde/Zinouchawebsie/store"
	"github.com/gin-gonic/gin"
)

// GET /api/products
func GetProducts(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1️⃣ Filtering & sorting params
		query, err := catalog.ParseQuery(c.Request.URL.Query())
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// 2️⃣ Full catalog, newest first
		products, err := st.ListProducts(c.Request.Context())
		if err != nil {
			log.Printf("❌ Failed to fetch products: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, catalog.Apply(products, query))
	}
}
