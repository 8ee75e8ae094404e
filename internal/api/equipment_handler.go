package api

import (
	"net/http"

	"grindhub/gym-platform/internal/domain"
	"grindhub/gym-platform/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EquipmentHandler struct {
	equipmentService service.EquipmentService
}

func NewEquipmentHandler(equipmentService service.EquipmentService) *EquipmentHandler {
	return &EquipmentHandler{equipmentService: equipmentService}
}

type EquipmentRequest struct {
	Name        string                 `json:"name" binding:"required"`
	Description string                 `json:"description"`
	Status      domain.EquipmentStatus `json:"status"`
}

type UpdateEquipmentRequest struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Status      domain.EquipmentStatus `json:"status"`
}

type UploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

func (h *EquipmentHandler) Create(c *gin.Context) {
	var req EquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	eq, err := h.equipmentService.Create(c.Request.Context(), getActor(c), req.Name, req.Description, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, eq)
}

func (h *EquipmentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid equipment id")
		return
	}
	eq, err := h.equipmentService.Get(c.Request.Context(), getActor(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, eq)
}

func (h *EquipmentHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	items, total, err := h.equipmentService.List(c.Request.Context(), getActor(c), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, items, total, page, limit)
}

func (h *EquipmentHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid equipment id")
		return
	}
	var req UpdateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	eq, err := h.equipmentService.Update(c.Request.Context(), getActor(c), id, req.Name, req.Description, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, eq)
}

func (h *EquipmentHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid equipment id")
		return
	}
	if err := h.equipmentService.Delete(c.Request.Context(), getActor(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "equipment deleted")
}

// ResolveQRCode godoc
// @Summary Resolve a scanned equipment QR sticker
// @Description Returns the machine, a status warning if it is not operational, and a photo URL.
// @Tags Equipment
// @Produce json
// @Param uuid path string true "QR code UUID"
// @Success 200 {object} Response
// @Failure 404 {object} Response "Unknown or reissued sticker"
// @Router /equipment/qr/{uuid} [get]
func (h *EquipmentHandler) ResolveQRCode(c *gin.Context) {
	qrCodeID, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid qr code")
		return
	}
	result, err := h.equipmentService.ResolveQRCode(c.Request.Context(), getActor(c), qrCodeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, result)
}

func (h *EquipmentHandler) RegenerateQRCode(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid equipment id")
		return
	}
	eq, err := h.equipmentService.RegenerateQRCode(c.Request.Context(), getActor(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, eq)
}

func (h *EquipmentHandler) PhotoUploadURL(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid equipment id")
		return
	}
	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	url, err := h.equipmentService.PhotoUploadURL(c.Request.Context(), getActor(c), id, req.ContentType)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"uploadUrl": url})
}
