// Package pricing computes cart lines, totals and promo discounts. It does no I/O.
package pricing

import (
	"errors"
	"fmt"

	"github.com/Gameminde/Zinouchawebsie/models"
	"github.com/shopspring/decimal"
)

var ErrInvalidShippingMethod = errors.New("invalid shipping method")

var (
	FreeShippingThreshold = decimal.NewFromInt(5000)
	StandardShippingCost  = decimal.NewFromInt(500)
	ExpressShippingCost   = decimal.NewFromInt(800)
)

// Line is a cart item resolved against the live catalog.
// Product is nil when the referenced product no longer exists.
type Line struct {
	models.CartItem
	Product   *models.Product `json:"product"`
	Available bool            `json:"available"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type Totals struct {
	Subtotal              decimal.Decimal       `json:"subtotal"`
	ShippingMethod        models.ShippingMethod `json:"shipping_method"`
	Shipping              decimal.Decimal       `json:"shipping"`
	Discount              decimal.Decimal       `json:"discount"`
	Total                 decimal.Decimal       `json:"total"`
	FreeShippingRemaining decimal.Decimal       `json:"free_shipping_remaining"`
}

// EffectivePrice prefers the sale price. A missing product prices at zero.
func EffectivePrice(p *models.Product) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	if p.SalePrice.Valid {
		return p.SalePrice.Decimal
	}
	return p.Price
}

// Enrich pairs every stored item with its product, keeping the item order.
func Enrich(items []models.CartItem, products []models.Product) []Line {
	byID := make(map[string]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	lines := make([]Line, 0, len(items))
	for _, item := range items {
		p := byID[item.ProductID]
		unit := EffectivePrice(p)
		lines = append(lines, Line{
			CartItem:  item,
			Product:   p,
			Available: p != nil,
			UnitPrice: unit,
			LineTotal: unit.Mul(decimal.NewFromInt(int64(item.Quantity))),
		})
	}
	return lines
}

func Subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.LineTotal)
	}
	return sum
}

// ParseShippingMethod maps an empty value to standard shipping.
func ParseShippingMethod(s string) (models.ShippingMethod, error) {
	switch models.ShippingMethod(s) {
	case "", models.ShippingStandard:
		return models.ShippingStandard, nil
	case models.ShippingExpress:
		return models.ShippingExpress, nil
	default:
		return "", fmt.Errorf("%w %q", ErrInvalidShippingMethod, s)
	}
}

// Shipping is free for standard delivery once the subtotal reaches the threshold.
func Shipping(subtotal decimal.Decimal, method models.ShippingMethod) decimal.Decimal {
	if method == models.ShippingExpress {
		return ExpressShippingCost
	}
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		return decimal.Zero
	}
	return StandardShippingCost
}

// Compute totals the lines. The discount is capped so the total never drops below zero.
func Compute(lines []Line, method models.ShippingMethod, discount decimal.Decimal) Totals {
	subtotal := Subtotal(lines)
	shipping := Shipping(subtotal, method)

	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if ceiling := subtotal.Add(shipping); discount.GreaterThan(ceiling) {
		discount = ceiling
	}

	remaining := FreeShippingThreshold.Sub(subtotal)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return Totals{
		Subtotal:              subtotal,
		ShippingMethod:        method,
		Shipping:              shipping,
		Discount:              discount,
		Total:                 subtotal.Add(shipping).Sub(discount),
		FreeShippingRemaining: remaining,
	}
}

// Unavailable returns the product ids of lines whose product is gone.
func Unavailable(lines []Line) []string {
	var ids []string
	for _, l := range lines {
		if !l.Available {
			ids = append(ids, l.ProductID)
		}
	}
	return ids
}
