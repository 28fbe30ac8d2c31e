package pricing

import (
	"errors"
	"testing"
	"time"

	"github.com/Gameminde/Zinouchawebsie/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func timePtr(t time.Time) *time.Time { return &t }

func TestValidatePromo(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	base := func() *models.PromoCode {
		return &models.PromoCode{
			Code:          "SAVE10",
			DiscountType:  models.DiscountPercentage,
			DiscountValue: decimal.NewFromInt(10),
			Active:        true,
		}
	}

	tests := []struct {
		name   string
		mutate func(p *models.PromoCode) *models.PromoCode
		want   PromoStatus
	}{
		{"valid without limits", func(p *models.PromoCode) *models.PromoCode { return p }, PromoValid},
		{"not found", func(*models.PromoCode) *models.PromoCode { return nil }, PromoNotFound},
		{"inactive but unexpired and unused", func(p *models.PromoCode) *models.PromoCode {
			p.Active = false
			return p
		}, PromoInactive},
		{"expired but active and unused", func(p *models.PromoCode) *models.PromoCode {
			p.ExpiresAt = timePtr(now.Add(-time.Minute))
			return p
		}, PromoExpired},
		{"expires in the future", func(p *models.PromoCode) *models.PromoCode {
			p.ExpiresAt = timePtr(now.Add(time.Hour))
			return p
		}, PromoValid},
		{"active and unexpired but exhausted", func(p *models.PromoCode) *models.PromoCode {
			p.MaxUses = intPtr(100)
			p.CurrentUses = 100
			return p
		}, PromoExhausted},
		{"one use left", func(p *models.PromoCode) *models.PromoCode {
			p.MaxUses = intPtr(100)
			p.CurrentUses = 99
			return p
		}, PromoValid},
		{"inactive wins over expired", func(p *models.PromoCode) *models.PromoCode {
			p.Active = false
			p.ExpiresAt = timePtr(now.Add(-time.Hour))
			return p
		}, PromoInactive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePromo(tt.mutate(base()), now))
		})
	}
}

func TestValidatePromoDoesNotMutate(t *testing.T) {
	p := &models.PromoCode{Active: true, MaxUses: intPtr(5), CurrentUses: 2}
	ValidatePromo(p, time.Now())
	assert.Equal(t, 2, p.CurrentUses)
}

func TestRedeemableExhaustedSave10(t *testing.T) {
	p := &models.PromoCode{
		Code:          "SAVE10",
		DiscountType:  models.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(10),
		MaxUses:       intPtr(100),
		CurrentUses:   100,
		Active:        true,
	}
	err := Redeemable("SAVE10", p, decimal.NewFromInt(6000), time.Now())

	var promoErr *PromoError
	require.True(t, errors.As(err, &promoErr))
	assert.Equal(t, PromoExhausted, promoErr.Status)
}

func TestCheckMinimum(t *testing.T) {
	p := &models.PromoCode{Active: true, MinOrderAmount: decimal.NewNullDecimal(decimal.NewFromInt(3000))}

	assert.Equal(t, PromoBelowMinimum, CheckMinimum(p, decimal.NewFromInt(2999)))
	assert.Equal(t, PromoValid, CheckMinimum(p, decimal.NewFromInt(3000)))
	assert.Equal(t, PromoValid, CheckMinimum(&models.PromoCode{}, decimal.Zero))

	err := Redeemable("X", p, decimal.NewFromInt(100), time.Now())
	var promoErr *PromoError
	require.True(t, errors.As(err, &promoErr))
	assert.Equal(t, PromoBelowMinimum, promoErr.Status)
}

func TestDiscount(t *testing.T) {
	pct := &models.PromoCode{DiscountType: models.DiscountPercentage, DiscountValue: decimal.NewFromInt(10)}
	assertDecimal(t, "600", Discount(pct, decimal.NewFromInt(6000)))
	assertDecimal(t, "33.33", Discount(pct, decimal.RequireFromString("333.33")))

	fixed := &models.PromoCode{DiscountType: models.DiscountFixed, DiscountValue: decimal.NewFromInt(500)}
	assertDecimal(t, "500", Discount(fixed, decimal.NewFromInt(6000)))

	assertDecimal(t, "0", Discount(nil, decimal.NewFromInt(6000)))
}
