package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"grindhub/gym-platform/internal/domain"
	"grindhub/gym-platform/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-secret"

func signToken(t *testing.T, secret string, mutate func(*service.Claims)) string {
	t.Helper()
	gym := uuid.NewString()
	claims := &service.Claims{
		UserID: uuid.NewString(),
		GymID:  &gym,
		RoleID: uuid.NewString(),
		Role:   domain.RoleTrainer,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "gym-platform",
		},
	}
	if mutate != nil {
		mutate(claims)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func authRequest(t *testing.T, header string) (*httptest.ResponseRecorder, *domain.Actor) {
	t.Helper()
	var got *domain.Actor
	router := gin.New()
	router.GET("/ping", AuthMiddleware(testSecret), func(c *gin.Context) {
		actor := getActor(c)
		got = &actor
		respondMessage(c, "pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w, got
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	userID := uuid.New()
	token := signToken(t, testSecret, func(c *service.Claims) {
		c.UserID = userID.String()
	})

	w, actor := authRequest(t, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, actor)
	require.Equal(t, userID, actor.UserID)
	require.Equal(t, domain.RoleTrainer, actor.Role)
	require.NotNil(t, actor.GymID)
}

func TestAuthMiddlewareRejectsMissingOrMalformedHeader(t *testing.T) {
	w, _ := authRequest(t, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = authRequest(t, "Basic abc123")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = authRequest(t, "Bearer not-a-jwt")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsWrongSecretAndExpiry(t *testing.T) {
	w, _ := authRequest(t, "Bearer "+signToken(t, "other-secret", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	expired := signToken(t, testSecret, func(c *service.Claims) {
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	})
	w, _ = authRequest(t, "Bearer "+expired)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "expired")
}

func TestAuthMiddlewareRejectsBadClaimIDs(t *testing.T) {
	token := signToken(t, testSecret, func(c *service.Claims) {
		c.UserID = "not-a-uuid"
	})
	w, _ := authRequest(t, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

// allowStub satisfies service.RoleService for permission middleware tests.
type allowStub struct {
	service.RoleService
	allowed bool
	err     error
}

func (s *allowStub) Allows(context.Context, domain.Actor, string, string) (bool, error) {
	return s.allowed, s.err
}

func permissionRequest(t *testing.T, roles service.RoleService) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.GET("/guarded",
		func(c *gin.Context) {
			c.Set(contextActorKey, domain.Actor{UserID: uuid.New(), Role: domain.RoleStudent})
		},
		RequirePermission(roles, "orders", "create"),
		func(c *gin.Context) { respondMessage(c, "ok") },
	)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	return w
}

func TestRequirePermission(t *testing.T) {
	require.Equal(t, http.StatusOK, permissionRequest(t, &allowStub{allowed: true}).Code)
	require.Equal(t, http.StatusForbidden, permissionRequest(t, &allowStub{allowed: false}).Code)
}
