package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// PromoCode is usable while Active, unexpired and under MaxUses.
type PromoCode struct {
	ID             string              `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Code           string              `gorm:"size:50;not null;uniqueIndex" json:"code"`
	DiscountType   DiscountType        `gorm:"size:20;not null" json:"discount_type"`
	DiscountValue  decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"discount_value"`
	MinOrderAmount decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"min_order_amount"`
	MaxUses        *int                `json:"max_uses"`
	CurrentUses    int                 `gorm:"not null;default:0" json:"current_uses"`
	Active         bool                `gorm:"not null;default:true" json:"active"`
	ExpiresAt      *time.Time          `json:"expires_at"`
	CreatedAt      time.Time           `json:"created_at"`
}
