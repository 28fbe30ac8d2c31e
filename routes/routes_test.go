package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Gameminde/Zinouchawebsie/auth"
	"github.com/Gameminde/Zinouchawebsie/config"
	orderControllers "github.com/Gameminde/Zinouchawebsie/controllers/order"
	"github.com/Gameminde/Zinouchawebsie/models"
	"github.com/Gameminde/Zinouchawebsie/store"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

type shop struct {
	t        *testing.T
	router   *gin.Engine
	st       *store.MemoryStore
	customer string
	admin    string
}

func newShop(t *testing.T) *shop {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	st := store.NewMemoryStore()
	require.NoError(t, st.UpsertUser(ctx, &models.User{ID: "amina", Email: "amina@shop.dz"}))
	require.NoError(t, st.UpsertUser(ctx, &models.User{ID: "owner", Email: "owner@shop.dz", IsAdmin: true}))

	sessions := auth.NewSessionManager(config.AuthConfig{JWTSecret: "secret", SessionTTL: time.Hour})
	customer, err := sessions.Issue("amina")
	require.NoError(t, err)
	admin, err := sessions.Issue("owner")
	require.NoError(t, err)

	r := gin.New()
	SetupRoutes(r, Deps{Store: st, Sessions: sessions, Hub: orderControllers.NewHub()})
	return &shop{t: t, router: r, st: st, customer: customer, admin: admin}
}

func (s *shop) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *shop) decode(w *httptest.ResponseRecorder, v interface{}) {
	s.t.Helper()
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func TestHealth(t *testing.T) {
	s := newShop(t)
	w := s.do(http.MethodGet, "/api/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAccessControl(t *testing.T) {
	s := newShop(t)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/products", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/auth/me", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/cart", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/orders", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/api/reviews", "", `{}`).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/admin/stats", s.customer, "").Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPost, "/api/products", s.customer, `{}`).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/admin/stats", s.admin, "").Code)

	var me models.User
	s.decode(s.do(http.MethodGet, "/api/auth/me", s.customer, ""), &me)
	assert.Equal(t, "amina", me.ID)

	assert.Equal(t, http.StatusServiceUnavailable, s.do(http.MethodPost, "/api/auth/login", "", `{"id_token":"x"}`).Code)
}

func TestCheckoutFlow(t *testing.T) {
	s := newShop(t)

	// admin creates the product and a promo code
	w := s.do(http.MethodPost, "/api/products", s.admin,
		`{"name":"Gandoura","description":"Lin brodé","price":"2000","category":"robes","sizes":["M"],"colors":["Noir"],"stock":10}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var product models.Product
	s.decode(w, &product)

	w = s.do(http.MethodPost, "/api/admin/promo-codes", s.admin,
		`{"code":"MOINS500","discount_type":"fixed","discount_value":"500","max_uses":5}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// same variant twice merges into one line
	item := `{"product_id":"` + product.ID + `","size":"M","color":"Noir","quantity":%d}`
	s.do(http.MethodPost, "/api/cart", s.customer, strings.Replace(item, "%d", "1", 1))
	w = s.do(http.MethodPost, "/api/cart", s.customer, strings.Replace(item, "%d", "2", 1))
	require.Equal(t, http.StatusOK, w.Code)
	var cart struct {
		Items []struct {
			Quantity int `json:"quantity"`
		} `json:"items"`
		Totals struct {
			Subtotal decimal.Decimal `json:"subtotal"`
			Shipping decimal.Decimal `json:"shipping"`
		} `json:"totals"`
	}
	s.decode(w, &cart)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.True(t, decimal.NewFromInt(6000).Equal(cart.Totals.Subtotal))
	assert.True(t, cart.Totals.Shipping.IsZero())

	w = s.do(http.MethodPost, "/api/promo-codes/validate", "", `{"code":"MOINS500","subtotal":"6000"}`)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodPost, "/api/promo-codes/validate", "", `{"code":"moins500"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/api/orders", s.customer, `{
		"shipping_address": {"first_name":"Amina","last_name":"Benali","address":"12 rue Didouche Mourad","city":"Alger","postal_code":"16000","phone":"0555123456"},
		"promo_code": "MOINS500"
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var order models.Order
	s.decode(w, &order)
	assert.True(t, decimal.NewFromInt(5500).Equal(order.TotalAmount))
	assert.Equal(t, models.OrderStatusPending, order.Status)

	w = s.do(http.MethodGet, "/api/cart", s.customer, "")
	s.decode(w, &cart)
	assert.Empty(t, cart.Items)

	var promos []models.PromoCode
	s.decode(s.do(http.MethodGet, "/api/admin/promo-codes", s.admin, ""), &promos)
	require.Len(t, promos, 1)
	assert.Equal(t, 1, promos[0].CurrentUses)

	var stats models.AdminStats
	s.decode(s.do(http.MethodGet, "/api/admin/stats", s.admin, ""), &stats)
	assert.Equal(t, int64(1), stats.TotalOrders)
	assert.Equal(t, int64(1), stats.TotalCustomers)
	assert.True(t, decimal.NewFromInt(5500).Equal(stats.Revenue))

	w = s.do(http.MethodPut, "/api/orders/"+order.ID+"/status", s.customer, `{"status":"shipped"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(http.MethodPut, "/api/orders/"+order.ID+"/status", s.admin, `{"status":"shipped"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWishlistAndReviews(t *testing.T) {
	s := newShop(t)
	p := &models.Product{Name: "Burnous", Category: "manteaux", Price: decimal.NewFromInt(15000)}
	require.NoError(t, s.st.CreateProduct(context.Background(), p))

	body := `{"product_id":"` + p.ID + `"}`
	s.do(http.MethodPost, "/api/wishlist", s.customer, body)
	w := s.do(http.MethodPost, "/api/wishlist", s.customer, body)
	var wishlist struct {
		ProductIDs []string `json:"product_ids"`
	}
	s.decode(w, &wishlist)
	assert.Equal(t, []string{p.ID}, wishlist.ProductIDs)

	w = s.do(http.MethodDelete, "/api/wishlist/other", s.customer, "")
	s.decode(w, &wishlist)
	assert.Equal(t, []string{p.ID}, wishlist.ProductIDs)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/reviews", "", "").Code)
	assert.Equal(t, http.StatusBadRequest,
		s.do(http.MethodPost, "/api/reviews", s.customer, `{"product_id":"`+p.ID+`","rating":6}`).Code)
	require.Equal(t, http.StatusCreated,
		s.do(http.MethodPost, "/api/reviews", s.customer, `{"product_id":"`+p.ID+`","rating":5}`).Code)
	require.Equal(t, http.StatusCreated,
		s.do(http.MethodPost, "/api/reviews", s.customer, `{"product_id":"`+p.ID+`","rating":4,"comment":"Chaud"}`).Code)

	var reviews struct {
		Reviews       []models.Review `json:"reviews"`
		AverageRating decimal.Decimal `json:"average_rating"`
		Count         int             `json:"count"`
	}
	s.decode(s.do(http.MethodGet, "/api/reviews?product_id="+p.ID, "", ""), &reviews)
	assert.Equal(t, 2, reviews.Count)
	assert.True(t, decimal.RequireFromString("4.5").Equal(reviews.AverageRating))
	assert.Equal(t, "Chaud", reviews.Reviews[0].Comment)
}

func TestAddressBook(t *testing.T) {
	s := newShop(t)
	addr := `{"first_name":"Amina","last_name":"Benali","address":"12 rue Didouche Mourad","city":"Alger","postal_code":"16000","phone":"0555123456","is_default":true}`

	var first, second models.Address
	w := s.do(http.MethodPost, "/api/addresses", s.customer, addr)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	s.decode(w, &first)
	w = s.do(http.MethodPost, "/api/addresses", s.customer, strings.Replace(addr, "Alger", "Oran", 1))
	require.Equal(t, http.StatusCreated, w.Code)
	s.decode(w, &second)

	var reloaded models.Address
	s.decode(s.do(http.MethodGet, "/api/addresses/"+first.ID, s.customer, ""), &reloaded)
	assert.False(t, reloaded.IsDefault)

	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/addresses/"+first.ID, s.admin, "").Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodDelete, "/api/addresses/"+first.ID, s.admin, "").Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/addresses", s.customer, `{"city":"A"}`).Code)

	assert.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/api/addresses/"+first.ID, s.customer, "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/addresses/"+first.ID, s.customer, "").Code)

	var list []models.Address
	s.decode(s.do(http.MethodGet, "/api/addresses", s.customer, ""), &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Oran", list[0].City)
}

func TestProductExport(t *testing.T) {
	s := newShop(t)
	require.NoError(t, s.st.CreateProduct(context.Background(), &models.Product{
		Name: "Chéchia", Category: "accessoires", Price: decimal.NewFromInt(1200), Sizes: []string{"S", "M"}, Stock: 4,
	}))

	w := s.do(http.MethodGet, "/api/admin/products/export", s.admin, "")
	require.Equal(t, http.StatusOK, w.Code)

	file, err := xlsx.OpenBinary(w.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)
	rows := file.Sheets[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "Name", rows[0].Cells[1].String())
	assert.Equal(t, "Chéchia", rows[1].Cells[1].String())
	assert.Equal(t, "1200.00", rows[1].Cells[3].String())
	assert.Equal(t, "S,M", rows[1].Cells[8].String())
}
