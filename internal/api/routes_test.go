package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"grindhub/gym-platform/internal/domain"
	"grindhub/gym-platform/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// profileStub satisfies service.UserService for routing tests.
type profileStub struct {
	service.UserService
	user *domain.User
}

func (s *profileStub) Get(context.Context, domain.Actor, uuid.UUID) (*domain.User, error) {
	return s.user, nil
}

func TestProfileRouteRequiresAuth(t *testing.T) {
	router := gin.New()
	SetupRoutes(router, zap.NewNop(), testSecret, Services{
		Users: &profileStub{user: &domain.User{ID: uuid.New()}},
	})

	token := signToken(t, testSecret, nil)

	// The profile lives under the auth prefix and needs a valid token.
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// No handler answers outside the auth prefix.
	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)
}
