package api

import (
	"net/http"

	"grindhub/gym-platform/internal/domain"
	"grindhub/gym-platform/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type BootstrapRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Bootstrap godoc
// @Summary Create the first SuperAdmin account
// @Description Only available while no users exist; afterwards always returns 409.
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body BootstrapRequest true "SuperAdmin details"
// @Success 201 {object} Response "Account created"
// @Failure 400 {object} Response "Invalid input"
// @Failure 409 {object} Response "Users already exist"
// @Router /auth/bootstrap [post]
func (h *AuthHandler) Bootstrap(c *gin.Context) {
	var req BootstrapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authService.Bootstrap(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, user)
}

// Login godoc
// @Summary Log in
// @Description Authenticates a user and returns a JWT token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} Response "Login successful"
// @Failure 401 {object} Response "Invalid credentials"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, LoginResponse{Token: token, User: user})
}
