package promoControllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Gameminde/Zinouchawebsie/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePromoCodeValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"fixed", `{"code":"MOINS500","discount_type":"fixed","discount_value":"500"}`, http.StatusCreated},
		{"zero minimum", `{"code":"ZERO","discount_type":"fixed","discount_value":"500","min_order_amount":"0"}`, http.StatusCreated},
		{"negative minimum", `{"code":"NEG","discount_type":"fixed","discount_value":"500","min_order_amount":"-1"}`, http.StatusBadRequest},
		{"negative value", `{"code":"NEGV","discount_type":"fixed","discount_value":"-5"}`, http.StatusBadRequest},
		{"percentage over 100", `{"code":"BIG","discount_type":"percentage","discount_value":"150"}`, http.StatusBadRequest},
		{"unknown type", `{"code":"ODD","discount_type":"bogo","discount_value":"10"}`, http.StatusBadRequest},
		{"missing value", `{"code":"NOVAL","discount_type":"fixed"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := store.NewMemoryStore()
			r := gin.New()
			r.POST("/api/admin/promo-codes", CreatePromoCode(st))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/admin/promo-codes", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code, w.Body.String())

			promos, err := st.ListPromoCodes(context.Background())
			require.NoError(t, err)
			if tt.want == http.StatusCreated {
				assert.Len(t, promos, 1)
			} else {
				assert.Empty(t, promos)
			}
		})
	}
}
