package wishlistControllers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/Gameminde/Zinouchawebsie/models"
	"github.com/Gameminde/Zinouchawebsie/store"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

type AddToWishlistRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// WishlistResponse lists the saved ids plus the products that still exist.
type WishlistResponse struct {
	ProductIDs []string         `json:"product_ids"`
	Products   []models.Product `json:"products"`
}

func loadWishlist(ctx context.Context, st store.Store, userID string) (*models.Wishlist, error) {
	w, err := st.GetWishlist(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return &models.Wishlist{UserID: userID, ProductIDs: pq.StringArray{}}, nil
	}
	return w, err
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func respond(c *gin.Context, st store.Store, w *models.Wishlist) {
	resp := WishlistResponse{ProductIDs: []string(w.ProductIDs), Products: []models.Product{}}
	if resp.ProductIDs == nil {
		resp.ProductIDs = []string{}
	}
	if len(w.ProductIDs) > 0 {
		products, err := st.GetProductsByIDs(c.Request.Context(), w.ProductIDs)
		if err != nil {
			log.Printf("❌ Failed to load wishlist products for %s: %v", w.UserID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}
		if products != nil {
			resp.Products = products
		}
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/wishlist
func GetWishlist(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		w, err := loadWishlist(c.Request.Context(), st, userID)
		if err != nil {
			log.Printf("❌ Failed to fetch wishlist for %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}
		respond(c, st, w)
	}
}

// POST /api/wishlist
// Adding a product that is already saved changes nothing.
func AddToWishlist(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input AddToWishlistRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		ctx := c.Request.Context()
		if _, err := st.GetProduct(ctx, input.ProductID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			log.Printf("❌ Failed to validate product %s: %v", input.ProductID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		var saved *models.Wishlist
		err := st.WithTx(ctx, func(tx store.Store) error {
			w, err := loadWishlist(ctx, tx, userID)
			if err != nil {
				return err
			}
			if !contains(w.ProductIDs, input.ProductID) {
				ids := make(pq.StringArray, 0, len(w.ProductIDs)+1)
				ids = append(ids, w.ProductIDs...)
				w.ProductIDs = append(ids, input.ProductID)
				if err := tx.SaveWishlist(ctx, w); err != nil {
					return err
				}
			}
			saved = w
			return nil
		})
		if err != nil {
			log.Printf("❌ Failed to add to wishlist for %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist"})
			return
		}
		respond(c, st, saved)
	}
}

// DELETE /api/wishlist/:productId
func RemoveFromWishlist(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		productID := c.Param("productId")
		ctx := c.Request.Context()

		var saved *models.Wishlist
		err := st.WithTx(ctx, func(tx store.Store) error {
			w, err := loadWishlist(ctx, tx, userID)
			if err != nil {
				return err
			}
			if contains(w.ProductIDs, productID) {
				ids := pq.StringArray{}
				for _, id := range w.ProductIDs {
					if id != productID {
						ids = append(ids, id)
					}
				}
				w.ProductIDs = ids
				if err := tx.SaveWishlist(ctx, w); err != nil {
					return err
				}
			}
			saved = w
			return nil
		})
		if err != nil {
			log.Printf("❌ Failed to remove from wishlist for %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update wishlist"})
			return
		}
		respond(c, st, saved)
	}
}
