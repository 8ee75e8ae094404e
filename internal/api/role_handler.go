package api

import (
	"net/http"

	"grindhub/gym-platform/internal/domain"
	"grindhub/gym-platform/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoleHandler struct {
	roleService service.RoleService
}

func NewRoleHandler(roleService service.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

type RoleRequest struct {
	Name        string               `json:"name" binding:"required"`
	Description string               `json:"description"`
	Permissions domain.PermissionMap `json:"permissions" binding:"required"`
}

type UpdateRoleRequest struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Permissions domain.PermissionMap `json:"permissions"`
}

type InstantiateTemplateRequest struct {
	Template string `json:"template" binding:"required"`
}

// Create godoc
// @Summary Create a custom role
// @Description Permissions are validated against the closed resource/action registry.
// @Tags Roles
// @Accept json
// @Produce json
// @Param role body RoleRequest true "Role details"
// @Success 201 {object} Response
// @Failure 400 {object} Response "Unknown resource or action"
// @Failure 409 {object} Response "Reserved or duplicate name"
// @Router /gyms/{gymId}/roles [post]
func (h *RoleHandler) Create(c *gin.Context) {
	gymID, err := uuid.Parse(c.Param("gymId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid gym id")
		return
	}
	var req RoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	role, err := h.roleService.Create(c.Request.Context(), getActor(c), gymID, req.Name, req.Description, req.Permissions)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, role)
}

// InstantiateTemplate copies a template role (Receptionist, Assistant
// Trainer) into the gym.
func (h *RoleHandler) InstantiateTemplate(c *gin.Context) {
	gymID, err := uuid.Parse(c.Param("gymId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid gym id")
		return
	}
	var req InstantiateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	role, err := h.roleService.InstantiateTemplate(c.Request.Context(), getActor(c), gymID, req.Template)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, role)
}

func (h *RoleHandler) List(c *gin.Context) {
	gymID, err := uuid.Parse(c.Param("gymId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid gym id")
		return
	}
	roles, err := h.roleService.ListByGym(c.Request.Context(), getActor(c), gymID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, roles)
}

func (h *RoleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid role id")
		return
	}
	role, err := h.roleService.Get(c.Request.Context(), getActor(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, role)
}

func (h *RoleHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid role id")
		return
	}
	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	role, err := h.roleService.Update(c.Request.Context(), getActor(c), id, req.Name, req.Description, req.Permissions)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, role)
}

func (h *RoleHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid role id")
		return
	}
	if err := h.roleService.Delete(c.Request.Context(), getActor(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "role deleted")
}
