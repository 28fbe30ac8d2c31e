package reviewControllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/Gameminde/Zinouchawebsie/models"
	"github.com/Gameminde/Zinouchawebsie/store"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CreateReviewRequest struct {
	ProductID string   `json:"product_id" binding:"required"`
	Rating    int      `json:"rating" binding:"required,min=1,max=5"`
	Comment   string   `json:"comment" binding:"max=2000"`
	Images    []string `json:"images" binding:"max=5"`
}

type ReviewsResponse struct {
	Reviews       []models.Review `json:"reviews"`
	AverageRating decimal.Decimal `json:"average_rating"`
	Count         int             `json:"count"`
}

// AverageRating is the arithmetic mean rounded to one decimal, zero when empty.
func AverageRating(reviews []models.Review) decimal.Decimal {
	if len(reviews) == 0 {
		return decimal.Zero
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(len(reviews)))).Round(1)
}

// GET /api/reviews?product_id=
func GetReviews(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := strings.TrimSpace(c.Query("product_id"))
		if productID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product_id is required"})
			return
		}

		reviews, err := st.ListReviews(c.Request.Context(), productID)
		if err != nil {
			log.Printf("❌ Failed to fetch reviews for %s: %v", productID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}
		if reviews == nil {
			reviews = []models.Review{}
		}

		c.JSON(http.StatusOK, ReviewsResponse{
			Reviews:       reviews,
			AverageRating: AverageRating(reviews),
			Count:         len(reviews),
		})
	}
}

// POST /api/reviews
func CreateReview(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req CreateReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		ctx := c.Request.Context()
		if _, err := st.GetProduct(ctx, req.ProductID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			log.Printf("❌ Failed to validate product %s: %v", req.ProductID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		review := &models.Review{
			ProductID: req.ProductID,
			UserID:    userID,
			Rating:    req.Rating,
			Comment:   strings.TrimSpace(req.Comment),
			Images:    req.Images,
		}
		if review.Images == nil {
			review.Images = []string{}
		}

		if err := st.CreateReview(ctx, review); err != nil {
			log.Printf("❌ Failed to create review: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
			return
		}
		c.JSON(http.StatusCreated, review)
	}
}
