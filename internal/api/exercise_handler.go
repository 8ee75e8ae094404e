package api

import (
	"net/http"

	"grindhub/gym-platform/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

type ExerciseRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	MuscleGroup string     `json:"muscleGroup"`
	Difficulty  string     `json:"difficulty"`
	EquipmentID *uuid.UUID `json:"equipmentId"`
}

type UpdateExerciseRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	MuscleGroup string     `json:"muscleGroup"`
	Difficulty  string     `json:"difficulty"`
	EquipmentID *uuid.UUID `json:"equipmentId"`
}

func (h *ExerciseHandler) Create(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	ex, err := h.exerciseService.Create(c.Request.Context(), getActor(c), service.ExerciseInput{
		Name:        req.Name,
		Description: req.Description,
		MuscleGroup: req.MuscleGroup,
		Difficulty:  req.Difficulty,
		EquipmentID: req.EquipmentID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, ex)
}

func (h *ExerciseHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid exercise id")
		return
	}
	ex, err := h.exerciseService.Get(c.Request.Context(), getActor(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, ex)
}

func (h *ExerciseHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	items, total, err := h.exerciseService.List(c.Request.Context(), getActor(c), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, items, total, page, limit)
}

func (h *ExerciseHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid exercise id")
		return
	}
	var req UpdateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	ex, err := h.exerciseService.Update(c.Request.Context(), getActor(c), id, service.ExerciseInput{
		Name:        req.Name,
		Description: req.Description,
		MuscleGroup: req.MuscleGroup,
		Difficulty:  req.Difficulty,
		EquipmentID: req.EquipmentID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, ex)
}

func (h *ExerciseHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid exercise id")
		return
	}
	if err := h.exerciseService.Delete(c.Request.Context(), getActor(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "exercise deleted")
}

func (h *ExerciseHandler) VideoUploadURL(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid exercise id")
		return
	}
	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	url, err := h.exerciseService.VideoUploadURL(c.Request.Context(), getActor(c), id, req.ContentType)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"uploadUrl": url})
}

func (h *ExerciseHandler) VideoDownloadURL(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid exercise id")
		return
	}
	url, err := h.exerciseService.VideoDownloadURL(c.Request.Context(), getActor(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"downloadUrl": url})
}
