package api

import (
	"net/http"

	"grindhub/gym-platform/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MatchHandler struct {
	matchService service.MatchService
}

func NewMatchHandler(matchService service.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

type MatchRequest struct {
	TrainerID uuid.UUID `json:"trainerId" binding:"required"`
	StudentID uuid.UUID `json:"studentId" binding:"required"`
}

func (h *MatchHandler) Create(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	m, err := h.matchService.Match(c.Request.Context(), getActor(c), req.TrainerID, req.StudentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, m)
}

func (h *MatchHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid match id")
		return
	}
	m, err := h.matchService.Get(c.Request.Context(), getActor(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, m)
}

func (h *MatchHandler) End(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid match id")
		return
	}
	m, err := h.matchService.End(c.Request.Context(), getActor(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, m)
}

func (h *MatchHandler) ListByTrainer(c *gin.Context) {
	trainerID, err := uuid.Parse(c.Param("trainerId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid trainer id")
		return
	}
	matches, err := h.matchService.ListByTrainer(c.Request.Context(), getActor(c), trainerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, matches)
}

func (h *MatchHandler) ListByStudent(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("studentId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid student id")
		return
	}
	matches, err := h.matchService.ListByStudent(c.Request.Context(), getActor(c), studentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, matches)
}
