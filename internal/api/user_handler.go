package api

import (
	"net/http"

	"grindhub/gym-platform/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type CreateUserRequest struct {
	GymID    uuid.UUID `json:"gymId" binding:"required"`
	RoleID   uuid.UUID `json:"roleId" binding:"required"`
	Name     string    `json:"name" binding:"required"`
	Email    string    `json:"email" binding:"required,email"`
	Password string    `json:"password" binding:"required,min=8"`
}

type UpdateUserRequest struct {
	Name     string     `json:"name"`
	Email    string     `json:"email" binding:"omitempty,email"`
	RoleID   *uuid.UUID `json:"roleId"`
	Password string     `json:"password" binding:"omitempty,min=8"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.Create(c.Request.Context(), getActor(c), service.CreateUserInput{
		GymID:    req.GymID,
		RoleID:   req.RoleID,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, user)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid user id")
		return
	}
	user, err := h.userService.Get(c.Request.Context(), getActor(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, user)
}

// Me returns the authenticated caller's own profile.
func (h *UserHandler) Me(c *gin.Context) {
	actor := getActor(c)
	user, err := h.userService.Get(c.Request.Context(), actor, actor.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, user)
}

func (h *UserHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	users, total, err := h.userService.List(c.Request.Context(), getActor(c), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, users, total, page, limit)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid user id")
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.userService.Update(c.Request.Context(), getActor(c), id, service.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		RoleID:   req.RoleID,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid user id")
		return
	}
	if err := h.userService.Delete(c.Request.Context(), getActor(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "user deleted")
}
