package cmd

import (
	"bytes"
	"testing"
	"time"

	"github.com/Gameminde/Zinouchawebsie/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setPromoFlags(t *testing.T, discountType, value, minOrder string, maxUses int, expires string) {
	t.Helper()
	saved := promoFlags
	t.Cleanup(func() { promoFlags = saved })
	promoFlags.discountType = discountType
	promoFlags.value = value
	promoFlags.minOrder = minOrder
	promoFlags.maxUses = maxUses
	promoFlags.expires = expires
	promoFlags.inactive = false
}

func TestBuildPromo(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	setPromoFlags(t, "fixed", "500", "3000", 10, "2025-06-30")

	promo, err := buildPromo(" ETE25 ", now)
	require.NoError(t, err)
	assert.Equal(t, "ETE25", promo.Code)
	assert.Equal(t, models.DiscountFixed, promo.DiscountType)
	assert.True(t, decimal.NewFromInt(500).Equal(promo.DiscountValue))
	assert.True(t, promo.MinOrderAmount.Valid)
	require.NotNil(t, promo.MaxUses)
	assert.Equal(t, 10, *promo.MaxUses)
	require.NotNil(t, promo.ExpiresAt)
	assert.Equal(t, 30, promo.ExpiresAt.Day())
	assert.Equal(t, 23, promo.ExpiresAt.Hour())
	assert.True(t, promo.Active)
}

func TestBuildPromoRejects(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name         string
		discountType string
		value        string
		expires      string
	}{
		{"unknown type", "bogo", "10", ""},
		{"zero value", "fixed", "0", ""},
		{"percentage over 100", "percentage", "150", ""},
		{"past expiry", "fixed", "100", "2025-05-31"},
		{"bad date", "fixed", "100", "31/12/2025"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setPromoFlags(t, tt.discountType, tt.value, "", 0, tt.expires)
			_, err := buildPromo("CODE", now)
			assert.Error(t, err)
		})
	}
}

func TestWritePromoTable(t *testing.T) {
	maxUses := 5
	var buf bytes.Buffer
	require.NoError(t, writePromoTable(&buf, []models.PromoCode{
		{Code: "SAVE10", DiscountType: models.DiscountPercentage, DiscountValue: decimal.NewFromInt(10), CurrentUses: 2, MaxUses: &maxUses, Active: true},
	}))
	out := buf.String()
	assert.Contains(t, out, "SAVE10")
	assert.Contains(t, out, "2/5")
	assert.Contains(t, out, "percentage")
}
