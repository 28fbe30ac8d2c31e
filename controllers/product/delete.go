package productcontroller

import (
	"errors"
	"log"
	"net/http"

	"github.com/Gameminde/Zinouchawebsie/store"
	"github.com/gin-gonic/gin"
)

// DELETE /api/products/:id
func DeleteProduct(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := st.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			log.Printf("❌ Failed to delete product: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
