package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Gameminde/Zinouchawebsie/config"
	"github.com/Gameminde/Zinouchawebsie/models"
	"github.com/Gameminde/Zinouchawebsie/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVerifier struct {
	identity *Identity
	err      error
}

func (f fakeVerifier) Verify(context.Context, string) (*Identity, error) {
	return f.identity, f.err
}

func newSessions() *SessionManager {
	return NewSessionManager(config.AuthConfig{JWTSecret: "test-secret", SessionTTL: time.Hour, CookieName: "session"})
}

func TestSessionRoundTrip(t *testing.T) {
	m := newSessions()
	token, err := m.Issue("user-1")
	require.NoError(t, err)

	userID, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestSessionRejectsForeignAndExpiredTokens(t *testing.T) {
	m := newSessions()

	other := NewSessionManager(config.AuthConfig{JWTSecret: "other", SessionTTL: time.Hour})
	foreign, err := other.Issue("user-1")
	require.NoError(t, err)
	_, err = m.Parse(foreign)
	assert.ErrorIs(t, err, ErrInvalidSession)

	expired := NewSessionManager(config.AuthConfig{JWTSecret: "test-secret", SessionTTL: -time.Minute})
	expired.ttl = -time.Minute
	old, err := expired.Issue("user-1")
	require.NoError(t, err)
	_, err = m.Parse(old)
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = m.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestTokenFromRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := newSessions()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "Bearer abc")
	assert.Equal(t, "abc", m.TokenFromRequest(c))

	c.Request.AddCookie(&http.Cookie{Name: "session", Value: "from-cookie"})
	assert.Equal(t, "from-cookie", m.TokenFromRequest(c))
}

func doLogin(t *testing.T, st store.Store, verifier IdentityVerifier, superAdmin string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/auth/login", Login(st, newSessions(), verifier, superAdmin))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"id_token":"tok"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestLoginCreatesUserAndSetsCookie(t *testing.T) {
	st := store.NewMemoryStore()
	verifier := fakeVerifier{identity: &Identity{UID: "fb-1", Email: "amina@shop.dz", FirstName: "Amina", LastName: "B"}}

	w := doLogin(t, st, verifier, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Set-Cookie"), "session=")

	user, err := st.GetUser(context.Background(), "fb-1")
	require.NoError(t, err)
	assert.Equal(t, "amina@shop.dz", user.Email)
	assert.False(t, user.IsAdmin)

	var body struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "fb-1", body.User.ID)

	userID, err := newSessions().Parse(body.Token)
	require.NoError(t, err)
	assert.Equal(t, "fb-1", userID)
}

func TestLoginPromotesSuperAdminAndKeepsAdminFlag(t *testing.T) {
	st := store.NewMemoryStore()
	require.NoError(t, st.UpsertUser(context.Background(), &models.User{ID: "fb-2", Email: "staff@shop.dz", IsAdmin: true}))

	w := doLogin(t, st, fakeVerifier{identity: &Identity{UID: "fb-2", Email: "staff@shop.dz"}}, "")
	require.Equal(t, http.StatusOK, w.Code)
	user, err := st.GetUser(context.Background(), "fb-2")
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)

	w = doLogin(t, st, fakeVerifier{identity: &Identity{UID: "fb-3", Email: "Owner@Shop.dz"}}, "owner@shop.dz")
	require.Equal(t, http.StatusOK, w.Code)
	owner, err := st.GetUser(context.Background(), "fb-3")
	require.NoError(t, err)
	assert.True(t, owner.IsAdmin)
}

func TestLoginFailures(t *testing.T) {
	st := store.NewMemoryStore()

	w := doLogin(t, st, nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doLogin(t, st, fakeVerifier{err: errors.New("revoked")}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/auth/logout", Logout(newSessions()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestSplitName(t *testing.T) {
	first, last := splitName("Amina Ben Ali")
	assert.Equal(t, "Amina", first)
	assert.Equal(t, "Ben Ali", last)

	first, last = splitName("Cher")
	assert.Equal(t, "Cher", first)
	assert.Empty(t, last)
}
