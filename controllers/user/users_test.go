package userControllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Gameminde/Zinouchawebsie/models"
	"github.com/Gameminde/Zinouchawebsie/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateMeChangesProfileOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st := store.NewMemoryStore()
	ctx := context.Background()
	me := &models.User{ID: "u1", Email: "amina@shop.dz", FirstName: "Amina", LastName: "B"}
	require.NoError(t, st.UpsertUser(ctx, me))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		u, err := st.GetUser(c.Request.Context(), "u1")
		require.NoError(t, err)
		c.Set("user", u)
		c.Next()
	})
	r.PUT("/api/users/me", UpdateMe(st))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/users/me",
		strings.NewReader(`{"first_name":"  Yasmine ","email":"evil@shop.dz","is_admin":true}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	got, err := st.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Yasmine", got.FirstName)
	assert.Equal(t, "B", got.LastName)
	assert.Equal(t, "amina@shop.dz", got.Email)
	assert.False(t, got.IsAdmin)
}

func TestGetMeRequiresUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/auth/me", GetMe)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
