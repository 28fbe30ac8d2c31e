package productcontroller

import (
	"errors"
	"log"
	"net/http"

	"github.com/Gameminde/Zinouchawebsie/store"
	"github.com/gin-gonic/gin"
)

// GET /api/products/:id
func GetProductByID(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := st.GetProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			log.Printf("❌ Failed to retrieve product: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
