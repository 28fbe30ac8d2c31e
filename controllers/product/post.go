package productcontroller

import (
	"log"
	"net/http"

	"github.com/Gameminde/Zinouchawebsie/store"
	"github.com/gin-gonic/gin"
)

// POST /api/products
func CreateProduct(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		product := req.toProduct()
		if err := checkPrices(product); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := st.CreateProduct(c.Request.Context(), product); err != nil {
			log.Printf("❌ Failed to create product: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		log.Printf("✅ Product created: %s (%s)", product.Name, product.ID)
		c.JSON(http.StatusCreated, product)
	}
}
