package orderControllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Gameminde/Zinouchawebsie/models"
	"github.com/Gameminde/Zinouchawebsie/pricing"
	"github.com/Gameminde/Zinouchawebsie/store"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// -------- Request Structs --------

type PlaceOrderRequest struct {
	ShippingAddress models.ShippingAddress `json:"shipping_address"`
	ShippingMethod  string                 `json:"shipping_method"`
	PromoCode       string                 `json:"promo_code"`
	Notes           string                 `json:"notes" binding:"max=1000"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// -------- Errors --------

var ErrEmptyCart = errors.New("cart is empty")

// UnavailableItemsError lists cart products that no longer exist.
type UnavailableItemsError struct {
	ProductIDs []string
}

func (e *UnavailableItemsError) Error() string {
	return "some products are no longer available: " + strings.Join(e.ProductIDs, ", ")
}

const orderNumberAttempts = 3

// -------- Helpers --------

// Map string to OrderStatus
func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusProcessing):
		return models.OrderStatusProcessing, nil
	case string(models.OrderStatusShipped):
		return models.OrderStatusShipped, nil
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

// Map string to PaymentStatus
func mapPaymentStatus(status string) (models.PaymentStatus, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case string(models.PaymentStatusPending):
		return models.PaymentStatusPending, nil
	case string(models.PaymentStatusPaid):
		return models.PaymentStatusPaid, nil
	default:
		return "", errors.New("invalid payment status")
	}
}

// generateOrderNumber gives ORD20250908130500-1A2B3C4D.
func generateOrderNumber(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return "ORD" + now.Format("20060102150405") + "-" + strings.ToUpper(suffix)
}

func itemSnapshots(lines []pricing.Line) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(lines))
	for _, l := range lines {
		image := ""
		if len(l.Product.Images) > 0 {
			image = l.Product.Images[0]
		}
		items = append(items, models.OrderItem{
			ProductID: l.ProductID,
			Name:      l.Product.Name,
			Price:     l.UnitPrice,
			Quantity:  l.Quantity,
			Size:      l.Size,
			Color:     l.Color,
			Image:     image,
		})
	}
	return items
}

// -------- Core Logic --------

// PlaceOrder turns the user's cart into an order. Promo redemption, stock,
// order insert and cart clearing commit together or not at all.
func PlaceOrder(ctx context.Context, st store.Store, userID string, req PlaceOrderRequest, now time.Time) (*models.Order, error) {
	method, err := pricing.ParseShippingMethod(req.ShippingMethod)
	if err != nil {
		return nil, err
	}
	code := strings.TrimSpace(req.PromoCode)

	var order *models.Order
	err = st.WithTx(ctx, func(tx store.Store) error {
		// 1️⃣ Load the cart
		cart, err := tx.GetCart(ctx, userID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrEmptyCart
		}
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		// 2️⃣ Resolve products
		ids := make([]string, 0, len(cart.Items))
		for _, item := range cart.Items {
			ids = append(ids, item.ProductID)
		}
		products, err := tx.GetProductsByIDs(ctx, ids)
		if err != nil {
			return err
		}
		lines := pricing.Enrich(cart.Items, products)
		if missing := pricing.Unavailable(lines); len(missing) > 0 {
			return &UnavailableItemsError{ProductIDs: missing}
		}

		// 3️⃣ Promo code
		discount := decimal.Zero
		if code != "" {
			promo, err := tx.GetPromoCode(ctx, code)
			if errors.Is(err, store.ErrNotFound) {
				promo, err = nil, nil
			}
			if err != nil {
				return err
			}
			if err := pricing.Redeemable(code, promo, pricing.Subtotal(lines), now); err != nil {
				return err
			}
			discount = pricing.Discount(promo, pricing.Subtotal(lines))
			if err := tx.IncrementPromoUse(ctx, code); err != nil {
				if errors.Is(err, store.ErrPromoExhausted) {
					return &pricing.PromoError{Code: code, Status: pricing.PromoExhausted}
				}
				return err
			}
		}
		totals := pricing.Compute(lines, method, discount)

		// 4️⃣ Stock
		for _, l := range lines {
			if err := tx.DecrementStock(ctx, l.ProductID, l.Quantity); err != nil {
				return fmt.Errorf("product %s: %w", l.ProductID, err)
			}
		}

		// 5️⃣ Insert the order
		o := &models.Order{
			UserID:          userID,
			Items:           itemSnapshots(lines),
			Subtotal:        totals.Subtotal,
			ShippingMethod:  method,
			ShippingCost:    totals.Shipping,
			DiscountAmount:  totals.Discount,
			TotalAmount:     totals.Total,
			Status:          models.OrderStatusPending,
			PaymentMethod:   models.PaymentMethodCashOnDelivery,
			PaymentStatus:   models.PaymentStatusPending,
			ShippingAddress: req.ShippingAddress,
			Notes:           strings.TrimSpace(req.Notes),
		}
		if code != "" {
			o.PromoCode = &code
		}
		for attempt := 1; ; attempt++ {
			o.ID = ""
			o.OrderNumber = generateOrderNumber(now)
			err := tx.CreateOrder(ctx, o)
			if err == nil {
				break
			}
			if !errors.Is(err, store.ErrDuplicate) || attempt == orderNumberAttempts {
				return err
			}
		}

		// 6️⃣ Empty the cart
		if err := tx.ClearCart(ctx, userID); err != nil {
			return err
		}

		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// -------- Handlers --------

// POST /api/orders
func PlaceOrderHandler(st store.Store, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := PlaceOrder(c.Request.Context(), st, userID, req, time.Now())
		if err != nil {
			var promoErr *pricing.PromoError
			var unavailable *UnavailableItemsError
			switch {
			case errors.Is(err, ErrEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case errors.As(err, &promoErr):
				c.JSON(http.StatusBadRequest, gin.H{"error": promoErr.Error(), "reason": promoErr.Status})
			case errors.As(err, &unavailable):
				c.JSON(http.StatusConflict, gin.H{"error": unavailable.Error(), "product_ids": unavailable.ProductIDs})
			case errors.Is(err, store.ErrInsufficientStock):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			case errors.Is(err, pricing.ErrInvalidShippingMethod):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				log.Printf("❌ Failed to place order for %s: %v", userID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			}
			return
		}

		log.Printf("✅ Order %s placed by %s", order.OrderNumber, userID)
		hub.Broadcast(EventOrderCreated, *order)
		c.JSON(http.StatusCreated, order)
	}
}

// GET /api/orders
// Admins see every order; customers see their own.
func GetOrdersHandler(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		filter := store.OrderFilter{}
		if !user.IsAdmin {
			filter.UserID = user.ID
		}
		if raw := c.Query("status"); raw != "" {
			status, err := mapOrderStatus(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			filter.Status = status
		}
		if raw := c.Query("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
				return
			}
			filter.Limit = limit
		}

		orders, err := st.ListOrders(c.Request.Context(), filter)
		if err != nil {
			log.Printf("❌ Failed to list orders: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		if orders == nil {
			orders = []models.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/orders/:id
func GetOrderByIDHandler(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		order, err := st.GetOrder(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			log.Printf("❌ Failed to fetch order %s: %v", c.Param("id"), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		if order.UserID != user.ID && !user.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PUT /api/orders/:id/status
func UpdateOrderStatusHandler(st store.Store, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		newStatus, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := st.UpdateOrderStatus(c.Request.Context(), c.Param("id"), newStatus)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			log.Printf("❌ Failed to update order %s status: %v", c.Param("id"), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}

		hub.Broadcast(EventOrderStatusChanged, *order)
		c.JSON(http.StatusOK, order)
	}
}

// PUT /api/orders/:id/payment-status
func UpdatePaymentStatusHandler(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdatePaymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		newStatus, err := mapPaymentStatus(req.PaymentStatus)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := st.UpdatePaymentStatus(c.Request.Context(), c.Param("id"), newStatus)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			log.Printf("❌ Failed to update order %s payment status: %v", c.Param("id"), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment status"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func currentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}
