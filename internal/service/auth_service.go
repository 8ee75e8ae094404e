package service

import (
	"context"
	"errors"
	"time"

	"grindhub/gym-platform/internal/domain"
	"grindhub/gym-platform/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrBootstrapDone        = errors.New("bootstrap registration is closed: users already exist")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// Claims is the JWT payload carried by every authenticated request.
type Claims struct {
	UserID string  `json:"uid"`
	GymID  *string `json:"gym,omitempty"`
	RoleID string  `json:"rid"`
	Role   string  `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	// Bootstrap creates the first SuperAdmin account. It only works while
	// the user table is empty; afterwards accounts come from user
	// management.
	Bootstrap(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (token string, user *domain.User, err error)
}

type authService struct {
	users         repository.UserRepository
	roles         repository.RoleRepository
	jwtSecret     string
	jwtExpiration time.Duration
}

func NewAuthService(users repository.UserRepository, roles repository.RoleRepository, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty")
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour
	}
	return &authService{
		users:         users,
		roles:         roles,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

func (s *authService) Bootstrap(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, validationError("name, email and password are required")
	}

	count, err := s.users.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrBootstrapDone
	}

	role, err := s.ensureSuperAdminRole(ctx)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	user := &domain.User{
		ID:           uuid.New(),
		RoleID:       role.ID,
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, conflictError("user with this email already exists")
		}
		return nil, err
	}

	user.Role = role
	user.PasswordHash = ""
	return user, nil
}

func (s *authService) ensureSuperAdminRole(ctx context.Context) (*domain.Role, error) {
	role, err := s.roles.GetByName(ctx, nil, domain.RoleSuperAdmin)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	role = &domain.Role{
		ID:          uuid.New(),
		Name:        domain.RoleSuperAdmin,
		Description: "Cross-tenant administrator",
		IsSystem:    true,
		Permissions: domain.FullPermissions().ToJSONMap(),
	}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, validationError("email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrAuthenticationFailed
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrAuthenticationFailed
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	user.PasswordHash = ""
	return token, user, nil
}

func (s *authService) generateJWT(user *domain.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID.String(),
		RoleID: user.RoleID.String(),
		Role:   user.RoleName(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "gym-platform",
		},
	}
	if user.GymID != nil {
		gym := user.GymID.String()
		claims.GymID = &gym
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
