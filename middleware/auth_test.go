package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devlog/goblog/config"
	"github.com/devlog/goblog/models"
	"github.com/devlog/goblog/stores"
	"github.com/devlog/goblog/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.Set(config.AppConfig{JWTSecret: "test-secret"})
	m.Run()
}

type stubUserStore struct {
	users map[uint]*models.User
}

func (s *stubUserStore) List(ctx context.Context) ([]models.User, error) { return nil, nil }

func (s *stubUserStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, stores.ErrNotFound
	}
	return u, nil
}

func (s *stubUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, stores.ErrNotFound
}

func (s *stubUserStore) Create(ctx context.Context, user *models.User) error { return nil }
func (s *stubUserStore) Update(ctx context.Context, user *models.User) error { return nil }

func newGuardRouter(users stores.UserStore, required bool) *gin.Engine {
	r := gin.New()
	guard := AuthOptional(users)
	if required {
		guard = AuthRequired(users)
	}
	r.GET("/whoami", guard, func(ctx *gin.Context) {
		if user, ok := CurrentUser(ctx); ok {
			ctx.JSON(http.StatusOK, gin.H{"id": user.ID})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"id": nil})
	})
	return r
}

func doWhoami(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequiredResolvesUser(t *testing.T) {
	store := &stubUserStore{users: map[uint]*models.User{7: {ID: 7, Email: "a@x.com"}}}
	r := newGuardRouter(store, true)

	token, err := utils.GenerateToken(7, "a@x.com")
	require.NoError(t, err)

	w := doWhoami(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7}`, w.Body.String())
}

func TestAuthRequiredFailures(t *testing.T) {
	store := &stubUserStore{users: map[uint]*models.User{7: {ID: 7}}}
	r := newGuardRouter(store, true)

	expired := expiredToken(t, 7)
	validForMissingUser, err := utils.GenerateToken(99, "gone@x.com")
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no bearer scheme", "Token abc"},
		{"empty token", "Bearer "},
		{"garbled token", "Bearer not.a.token"},
		{"expired token", "Bearer " + expired},
		{"vanished subject", "Bearer " + validForMissingUser},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doWhoami(r, tc.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthOptionalNeverRejects(t *testing.T) {
	store := &stubUserStore{users: map[uint]*models.User{7: {ID: 7, Email: "a@x.com"}}}
	r := newGuardRouter(store, false)

	for _, header := range []string{"", "Token abc", "Bearer not.a.token", "Bearer " + expiredToken(t, 7)} {
		w := doWhoami(r, header)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":null}`, w.Body.String())
	}

	token, err := utils.GenerateToken(7, "a@x.com")
	require.NoError(t, err)
	w := doWhoami(r, "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7}`, w.Body.String())
}

func expiredToken(t *testing.T, userID uint) string {
	t.Helper()
	claims := utils.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}
