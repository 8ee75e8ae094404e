package api

import (
	"net/http"

	"grindhub/gym-platform/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type GymHandler struct {
	gymService service.GymService
}

func NewGymHandler(gymService service.GymService) *GymHandler {
	return &GymHandler{gymService: gymService}
}

type GymRequest struct {
	Name         string `json:"name" binding:"required"`
	Address      string `json:"address"`
	ContactEmail string `json:"contactEmail" binding:"omitempty,email"`
}

type UpdateGymRequest struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	ContactEmail string `json:"contactEmail" binding:"omitempty,email"`
}

// Create godoc
// @Summary Register a new gym
// @Description Creates a gym and seeds its system roles. SuperAdmin only.
// @Tags Gyms
// @Accept json
// @Produce json
// @Param gym body GymRequest true "Gym details"
// @Success 201 {object} Response
// @Failure 403 {object} Response
// @Router /gyms [post]
func (h *GymHandler) Create(c *gin.Context) {
	var req GymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	gym, err := h.gymService.Create(c.Request.Context(), getActor(c), req.Name, req.Address, req.ContactEmail)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, gym)
}

func (h *GymHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("gymId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid gym id")
		return
	}

	gym, err := h.gymService.Get(c.Request.Context(), getActor(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gym)
}

func (h *GymHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	gyms, total, err := h.gymService.List(c.Request.Context(), getActor(c), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, gyms, total, page, limit)
}

func (h *GymHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("gymId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid gym id")
		return
	}
	var req UpdateGymRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	gym, err := h.gymService.Update(c.Request.Context(), getActor(c), id, req.Name, req.Address, req.ContactEmail)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gym)
}

func (h *GymHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("gymId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid gym id")
		return
	}
	if err := h.gymService.Delete(c.Request.Context(), getActor(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "gym deleted")
}
