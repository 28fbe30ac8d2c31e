package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // placed, awaiting confirmation
	OrderStatusProcessing OrderStatus = "processing" // confirmed and being prepared
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"

	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"

	PaymentMethodCashOnDelivery = "cash_on_delivery"
)

type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
)

// Order is immutable after checkout apart from Status and PaymentStatus.
type Order struct {
	ID              string          `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID          string          `gorm:"not null;index" json:"user_id"`
	OrderNumber     string          `gorm:"size:50;not null;uniqueIndex" json:"order_number"`
	Items           []OrderItem     `gorm:"type:jsonb;not null;serializer:json" json:"items"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"subtotal"`
	ShippingMethod  ShippingMethod  `gorm:"size:20;not null;default:'standard'" json:"shipping_method"`
	ShippingCost    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"shipping_cost"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"discount_amount"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Status          OrderStatus     `gorm:"size:50;not null;default:'pending';index" json:"status"`
	PaymentMethod   string          `gorm:"size:50;not null" json:"payment_method"`
	PaymentStatus   PaymentStatus   `gorm:"size:50;not null;default:'pending'" json:"payment_status"`
	ShippingAddress ShippingAddress `gorm:"type:jsonb;not null;serializer:json" json:"shipping_address"`
	PromoCode       *string         `gorm:"size:50" json:"promo_code,omitempty"`
	Notes           string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderItem is a frozen copy of a cart line taken at checkout.
type OrderItem struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Image     string          `json:"image"`
}

type ShippingAddress struct {
	FirstName  string `json:"first_name" binding:"required,min=2"`
	LastName   string `json:"last_name" binding:"required,min=2"`
	Address    string `json:"address" binding:"required,min=10"`
	City       string `json:"city" binding:"required,min=2"`
	PostalCode string `json:"postal_code" binding:"required,min=5"`
	Phone      string `json:"phone" binding:"required,min=10"`
}
