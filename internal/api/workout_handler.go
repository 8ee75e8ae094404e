package api

import (
	"net/http"

	"grindhub/gym-platform/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WorkoutHandler struct {
	workoutService service.WorkoutService
}

func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

type StartWorkoutRequest struct {
	ProgramID uuid.UUID `json:"programId" binding:"required"`
}

type LogEntryRequest struct {
	ExerciseID uuid.UUID       `json:"exerciseId" binding:"required"`
	SetNumber  int             `json:"setNumber" binding:"required,min=1"`
	Reps       int             `json:"reps" binding:"min=0"`
	Weight     decimal.Decimal `json:"weight"`
	Notes      string          `json:"notes"`
}

// Start godoc
// @Summary Start a workout session
// @Description Opens a session against a program. Only one session may be active per user.
// @Tags Workouts
// @Accept json
// @Produce json
// @Param workout body StartWorkoutRequest true "Program to train"
// @Success 201 {object} Response
// @Failure 409 {object} Response "A session is already active"
// @Router /workouts [post]
func (h *WorkoutHandler) Start(c *gin.Context) {
	var req StartWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	log, err := h.workoutService.Start(c.Request.Context(), getActor(c), req.ProgramID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, log)
}

func (h *WorkoutHandler) End(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid workout id")
		return
	}
	log, err := h.workoutService.End(c.Request.Context(), getActor(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, log)
}

func (h *WorkoutHandler) AppendEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid workout id")
		return
	}
	var req LogEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.workoutService.AppendEntry(c.Request.Context(), getActor(c), id, service.LogEntryInput{
		ExerciseID: req.ExerciseID,
		SetNumber:  req.SetNumber,
		Reps:       req.Reps,
		Weight:     req.Weight,
		Notes:      req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, entry)
}

func (h *WorkoutHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid workout id")
		return
	}
	log, err := h.workoutService.Get(c.Request.Context(), getActor(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, log)
}

// GetActive returns the caller's in-progress session, if any.
func (h *WorkoutHandler) GetActive(c *gin.Context) {
	log, err := h.workoutService.GetActive(c.Request.Context(), getActor(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, log)
}

func (h *WorkoutHandler) ListByUser(c *gin.Context) {
	actor := getActor(c)
	userID := actor.UserID
	if raw := c.Query("userId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid user id")
			return
		}
		userID = parsed
	}

	page, limit := parsePagination(c)
	logs, total, err := h.workoutService.ListByUser(c.Request.Context(), actor, userID, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, logs, total, page, limit)
}

func (h *WorkoutHandler) ListEntries(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid workout id")
		return
	}
	entries, err := h.workoutService.ListEntries(c.Request.Context(), getActor(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, entries)
}
