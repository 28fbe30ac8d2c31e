package promoControllers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Gameminde/Zinouchawebsie/models"
	"github.com/Gameminde/Zinouchawebsie/pricing"
	"github.com/Gameminde/Zinouchawebsie/store"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ValidatePromoRequest struct {
	Code     string           `json:"code" binding:"required"`
	Subtotal *decimal.Decimal `json:"subtotal"`
}

// POST /api/promo-codes/validate
// Validation is read-only; usage is only counted when an order is placed.
func ValidatePromoCode(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ValidatePromoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		code := strings.TrimSpace(req.Code)

		promo, err := st.GetPromoCode(c.Request.Context(), code)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			log.Printf("❌ Failed to fetch promo code %s: %v", code, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate promo code"})
			return
		}

		status := pricing.ValidatePromo(promo, time.Now())
		if status == pricing.PromoValid && req.Subtotal != nil {
			status = pricing.CheckMinimum(promo, *req.Subtotal)
		}

		switch status {
		case pricing.PromoValid:
		case pricing.PromoNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "Promo code not found", "reason": status})
			return
		default:
			promoErr := &pricing.PromoError{Code: code, Status: status}
			c.JSON(http.StatusBadRequest, gin.H{"error": promoErr.Error(), "reason": status})
			return
		}

		resp := gin.H{
			"code":           promo.Code,
			"discount_type":  promo.DiscountType,
			"discount_value": promo.DiscountValue,
		}
		if req.Subtotal != nil {
			resp["discount"] = pricing.Discount(promo, *req.Subtotal)
		}
		c.JSON(http.StatusOK, resp)
	}
}

// -------- Admin --------

type PromoCodeRequest struct {
	Code           string              `json:"code" binding:"required,max=50"`
	DiscountType   models.DiscountType `json:"discount_type" binding:"required,oneof=percentage fixed"`
	DiscountValue  *decimal.Decimal    `json:"discount_value" binding:"required"`
	MinOrderAmount *decimal.Decimal    `json:"min_order_amount"`
	MaxUses        *int                `json:"max_uses" binding:"omitempty,min=1"`
	Active         *bool               `json:"active"`
	ExpiresAt      *time.Time          `json:"expires_at"`
}

var (
	errDiscountNotPositive = errors.New("discount_value must be positive")
	errPercentageOver100   = errors.New("percentage discount cannot exceed 100")
	errNegativeMinOrder    = errors.New("min_order_amount must not be negative")
)

func (r PromoCodeRequest) validate() error {
	if !r.DiscountValue.IsPositive() {
		return errDiscountNotPositive
	}
	if r.DiscountType == models.DiscountPercentage && r.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
		return errPercentageOver100
	}
	if r.MinOrderAmount != nil && r.MinOrderAmount.IsNegative() {
		return errNegativeMinOrder
	}
	return nil
}

func (r PromoCodeRequest) applyTo(p *models.PromoCode) {
	p.Code = strings.TrimSpace(r.Code)
	p.DiscountType = r.DiscountType
	p.DiscountValue = *r.DiscountValue
	p.MinOrderAmount = decimal.NullDecimal{}
	if r.MinOrderAmount != nil {
		p.MinOrderAmount = decimal.NewNullDecimal(*r.MinOrderAmount)
	}
	p.MaxUses = r.MaxUses
	p.Active = r.Active == nil || *r.Active
	p.ExpiresAt = r.ExpiresAt
}

// GET /api/admin/promo-codes
func ListPromoCodes(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		promos, err := st.ListPromoCodes(c.Request.Context())
		if err != nil {
			log.Println("❌ Failed to fetch promo codes:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch promo codes"})
			return
		}
		if promos == nil {
			promos = []models.PromoCode{}
		}
		c.JSON(http.StatusOK, promos)
	}
}

// POST /api/admin/promo-codes
func CreatePromoCode(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PromoCodeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if err := req.validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		promo := &models.PromoCode{}
		req.applyTo(promo)
		if err := st.CreatePromoCode(c.Request.Context(), promo); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				c.JSON(http.StatusConflict, gin.H{"error": "Promo code already exists"})
				return
			}
			log.Printf("❌ Failed to create promo code: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create promo code"})
			return
		}

		log.Printf("✅ Promo code created: %s", promo.Code)
		c.JSON(http.StatusCreated, promo)
	}
}

// PUT /api/admin/promo-codes/:id
// The usage counter is kept as is.
func UpdatePromoCode(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PromoCodeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if err := req.validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		promo, err := st.GetPromoCodeByID(ctx, c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Promo code not found"})
				return
			}
			log.Printf("❌ Failed to fetch promo code %s: %v", c.Param("id"), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update promo code"})
			return
		}

		req.applyTo(promo)
		if err := st.UpdatePromoCode(ctx, promo); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				c.JSON(http.StatusConflict, gin.H{"error": "Promo code already exists"})
				return
			}
			log.Printf("❌ Failed to update promo code %s: %v", promo.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update promo code"})
			return
		}
		c.JSON(http.StatusOK, promo)
	}
}
