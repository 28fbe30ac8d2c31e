package cartControllers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/Gameminde/Zinouchawebsie/models"
	"github.com/Gameminde/Zinouchawebsie/pricing"
	"github.com/Gameminde/Zinouchawebsie/store"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// -------- Request Structs --------

type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type UpdateCartItemRequest struct {
	Quantity int    `json:"quantity"`
	Size     string `json:"size"`
	Color    string `json:"color"`
}

// CartResponse is the cart as the storefront renders it.
type CartResponse struct {
	Items     []pricing.Line `json:"items"`
	ItemCount int            `json:"item_count"`
	Totals    pricing.Totals `json:"totals"`
}

// -------- Helpers --------

func userIDFrom(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	userID, ok := userIDVal.(string)
	return userID, ok && userID != ""
}

// loadCart treats a missing cart as an empty one.
func loadCart(ctx context.Context, st store.Store, userID string) (*models.Cart, error) {
	cart, err := st.GetCart(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	return cart, err
}

// BuildResponse enriches the stored items with live product data.
func BuildResponse(ctx context.Context, st store.Store, items []models.CartItem, method models.ShippingMethod) (*CartResponse, error) {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	var products []models.Product
	if len(ids) > 0 {
		var err error
		products, err = st.GetProductsByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	lines := pricing.Enrich(items, products)
	return &CartResponse{
		Items:     lines,
		ItemCount: pricing.ItemCount(items),
		Totals:    pricing.Compute(lines, method, decimal.Zero),
	}, nil
}

// mutateCart applies change to the user's cart inside a transaction and saves it.
func mutateCart(ctx context.Context, st store.Store, userID string, change func([]models.CartItem) []models.CartItem) (*models.Cart, error) {
	var saved *models.Cart
	err := st.WithTx(ctx, func(tx store.Store) error {
		cart, err := loadCart(ctx, tx, userID)
		if err != nil {
			return err
		}
		cart.Items = change(cart.Items)
		if err := tx.SaveCart(ctx, cart); err != nil {
			return err
		}
		saved = cart
		return nil
	})
	return saved, err
}

func respondWithCart(c *gin.Context, st store.Store, cart *models.Cart, status int) {
	resp, err := BuildResponse(c.Request.Context(), st, cart.Items, models.ShippingStandard)
	if err != nil {
		log.Printf("❌ Failed to price cart for %s: %v", cart.UserID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return
	}
	c.JSON(status, resp)
}

// -------- Handlers --------

// GET /api/cart
func GetUserCart(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		method, err := pricing.ParseShippingMethod(c.Query("shipping_method"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		cart, err := loadCart(ctx, st, userID)
		if err != nil {
			log.Printf("❌ Failed to fetch cart for %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		resp, err := BuildResponse(ctx, st, cart.Items, method)
		if err != nil {
			log.Printf("❌ Failed to price cart for %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// POST /api/cart
func AddCartItem(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input AddCartItemRequest
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

		item := models.CartItem{
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
			Size:      input.Size,
			Color:     input.Color,
		}
		cart, err := mutateCart(ctx, st, userID, func(items []models.CartItem) []models.CartItem {
			return pricing.AddItem(items, item)
		})
		if err != nil {
			log.Printf("❌ Failed to add item to cart for %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}
		respondWithCart(c, st, cart, http.StatusOK)
	}
}

// PUT /api/cart/:productId
func UpdateCartItem(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input UpdateCartItemRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		key := pricing.ItemKey{ProductID: c.Param("productId"), Size: input.Size, Color: input.Color}
		cart, err := mutateCart(c.Request.Context(), st, userID, func(items []models.CartItem) []models.CartItem {
			return pricing.SetQuantity(items, key, input.Quantity)
		})
		if err != nil {
			log.Printf("❌ Failed to update cart item for %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		respondWithCart(c, st, cart, http.StatusOK)
	}
}

// DELETE /api/cart/:productId?size=&color=
func DeleteCartItem(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		key := pricing.ItemKey{ProductID: c.Param("productId"), Size: c.Query("size"), Color: c.Query("color")}
		cart, err := mutateCart(c.Request.Context(), st, userID, func(items []models.CartItem) []models.CartItem {
			return pricing.RemoveItem(items, key)
		})
		if err != nil {
			log.Printf("❌ Failed to delete cart item for %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		respondWithCart(c, st, cart, http.StatusOK)
	}
}

// DELETE /api/cart
func ClearUserCart(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		if err := st.ClearCart(c.Request.Context(), userID); err != nil {
			log.Printf("❌ Failed to clear cart for %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
