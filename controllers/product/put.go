package productcontroller

import (
	"errors"
	"log"
	"net/http"

	"github.com/Gameminde/Zinouchawebsie/store"
	"github.com/gin-gonic/gin"
)

// PUT /api/products/:id
func UpdateProduct(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		// 1️⃣ Fetch existing product
		product, err := st.GetProduct(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			log.Printf("❌ Failed to load product: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load product"})
			return
		}

		// 2️⃣ Apply the present fields and re-check prices
		req.applyTo(product)
		if err := checkPrices(product); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// 3️⃣ Save
		if err := st.UpdateProduct(c.Request.Context(), product); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			log.Printf("❌ Failed to update product: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
