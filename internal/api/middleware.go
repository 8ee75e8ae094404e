package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"grindhub/gym-platform/internal/domain"
	"grindhub/gym-platform/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	contextActorKey  = "actor"
	contextLoggerKey = "logger"
)

// WithLogger places the server logger in the request context so error
// responders can report unexpected failures.
func WithLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(contextLoggerKey, logger)
		c.Next()
	}
}

func requestLogger(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(contextLoggerKey); ok {
		if logger, ok := v.(*zap.Logger); ok {
			return logger
		}
	}
	return zap.NewNop()
}

// AuthMiddleware validates the Bearer token and places the resolved
// Actor in the request context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}

		claims := &service.Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, "Invalid token")
			}
			return
		}
		if !token.Valid || claims.UserID == "" || claims.Role == "" {
			abortWithError(c, http.StatusUnauthorized, "Invalid token or missing claims")
			return
		}

		actor, err := actorFromClaims(claims)
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "Invalid token claims")
			return
		}

		c.Set(contextActorKey, actor)
		c.Next()
	}
}

func actorFromClaims(claims *service.Claims) (domain.Actor, error) {
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return domain.Actor{}, err
	}
	roleID, err := uuid.Parse(claims.RoleID)
	if err != nil {
		return domain.Actor{}, err
	}

	actor := domain.Actor{
		UserID: userID,
		RoleID: roleID,
		Role:   claims.Role,
	}
	if claims.GymID != nil {
		gymID, err := uuid.Parse(*claims.GymID)
		if err != nil {
			return domain.Actor{}, err
		}
		actor.GymID = &gymID
	}
	return actor, nil
}

// RequirePermission checks the caller's role map for one (resource,
// action) pair. Must run after AuthMiddleware.
func RequirePermission(roles service.RoleService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := getActor(c)
		allowed, err := roles.Allows(c.Request.Context(), actor, resource, action)
		if err != nil {
			requestLogger(c).Error("permission check failed",
				zap.Error(err),
				zap.String("resource", resource),
				zap.String("action", action))
			abortWithError(c, http.StatusInternalServerError, "permission check failed")
			return
		}
		if !allowed {
			abortWithError(c, http.StatusForbidden, fmt.Sprintf("role %q may not %s %s", actor.Role, action, resource))
			return
		}
		c.Next()
	}
}

func getActor(c *gin.Context) domain.Actor {
	actor, _ := c.MustGet(contextActorKey).(domain.Actor)
	return actor
}
