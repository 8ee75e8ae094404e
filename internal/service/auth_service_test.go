package service

import (
	"context"
	"testing"
	"time"

	"grindhub/gym-platform/internal/domain"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func newAuthSetup() (*testStore, AuthService) {
	store := newTestStore()
	svc := NewAuthService(store.users, store.roles, testJWTSecret, time.Hour)
	return store, svc
}

func TestBootstrapCreatesFirstSuperAdmin(t *testing.T) {
	store, svc := newAuthSetup()

	user, err := svc.Bootstrap(context.Background(), "Admin", "admin@example.com", "s3cret")
	require.NoError(t, err)
	require.Equal(t, domain.RoleSuperAdmin, user.RoleName())
	require.Nil(t, user.GymID)
	require.Empty(t, user.PasswordHash)

	// The SuperAdmin role was seeded alongside.
	role, err := store.roles.GetByName(context.Background(), nil, domain.RoleSuperAdmin)
	require.NoError(t, err)
	require.True(t, role.IsSystem)
	require.True(t, role.Allows("gyms", "delete"))

	// Bootstrap only works on an empty user table.
	_, err = svc.Bootstrap(context.Background(), "Second", "second@example.com", "pw")
	require.ErrorIs(t, err, ErrBootstrapDone)
}

func TestBootstrapRequiresAllFields(t *testing.T) {
	_, svc := newAuthSetup()

	_, err := svc.Bootstrap(context.Background(), "", "admin@example.com", "pw")
	require.ErrorIs(t, err, ErrValidation)
}

func TestLoginIssuesToken(t *testing.T) {
	_, svc := newAuthSetup()

	_, err := svc.Bootstrap(context.Background(), "Admin", "admin@example.com", "s3cret")
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "admin@example.com", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Empty(t, user.PasswordHash)

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	require.Equal(t, user.ID.String(), claims.UserID)
	require.Equal(t, domain.RoleSuperAdmin, claims.Role)
	require.Nil(t, claims.GymID)
	require.Equal(t, "gym-platform", claims.Issuer)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	_, svc := newAuthSetup()

	_, err := svc.Bootstrap(context.Background(), "Admin", "admin@example.com", "s3cret")
	require.NoError(t, err)

	// Wrong password and unknown email fail identically.
	_, _, err = svc.Login(context.Background(), "admin@example.com", "wrong")
	require.ErrorIs(t, err, ErrAuthenticationFailed)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "s3cret")
	require.ErrorIs(t, err, ErrAuthenticationFailed)
}
