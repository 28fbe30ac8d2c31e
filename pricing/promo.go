package pricing

import (
	"time"

	"github.com/Gameminde/Zinouchawebsie/models"
	"github.com/shopspring/decimal"
)

type PromoStatus string

const (
	PromoValid        PromoStatus = "valid"
	PromoNotFound     PromoStatus = "not_found"
	PromoInactive     PromoStatus = "inactive"
	PromoExpired      PromoStatus = "expired"
	PromoExhausted    PromoStatus = "exhausted"
	PromoBelowMinimum PromoStatus = "below_minimum"
)

// PromoError reports why a code cannot be redeemed.
type PromoError struct {
	Code   string
	Status PromoStatus
}

func (e *PromoError) Error() string {
	switch e.Status {
	case PromoNotFound:
		return "promo code not found"
	case PromoInactive:
		return "promo code is inactive"
	case PromoExpired:
		return "promo code has expired"
	case PromoExhausted:
		return "promo code usage limit reached"
	case PromoBelowMinimum:
		return "order does not reach the promo code minimum amount"
	default:
		return "promo code rejected"
	}
}

// ValidatePromo runs the checks in order: existence, active flag, expiry, usage cap.
// It never mutates p.
func ValidatePromo(p *models.PromoCode, now time.Time) PromoStatus {
	switch {
	case p == nil:
		return PromoNotFound
	case !p.Active:
		return PromoInactive
	case p.ExpiresAt != nil && p.ExpiresAt.Before(now):
		return PromoExpired
	case p.MaxUses != nil && p.CurrentUses >= *p.MaxUses:
		return PromoExhausted
	}
	return PromoValid
}

// CheckMinimum compares subtotal with the optional minimum order amount.
func CheckMinimum(p *models.PromoCode, subtotal decimal.Decimal) PromoStatus {
	if p.MinOrderAmount.Valid && subtotal.LessThan(p.MinOrderAmount.Decimal) {
		return PromoBelowMinimum
	}
	return PromoValid
}

// Redeemable combines ValidatePromo and CheckMinimum into an error.
func Redeemable(code string, p *models.PromoCode, subtotal decimal.Decimal, now time.Time) error {
	status := ValidatePromo(p, now)
	if status == PromoValid {
		status = CheckMinimum(p, subtotal)
	}
	if status != PromoValid {
		return &PromoError{Code: code, Status: status}
	}
	return nil
}

// Discount is the amount the promo takes off subtotal, rounded to cents.
func Discount(p *models.PromoCode, subtotal decimal.Decimal) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	switch p.DiscountType {
	case models.DiscountPercentage:
		return subtotal.Mul(p.DiscountValue).Div(decimal.NewFromInt(100)).Round(2)
	case models.DiscountFixed:
		return p.DiscountValue
	default:
		return decimal.Zero
	}
}
