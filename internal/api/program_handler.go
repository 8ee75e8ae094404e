package api

import (
	"net/http"

	"grindhub/gym-platform/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProgramHandler struct {
	programService service.ProgramService
}

func NewProgramHandler(programService service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

type ProgramRequest struct {
	Name         string     `json:"name" binding:"required"`
	Description  string     `json:"description"`
	AssignedToID *uuid.UUID `json:"assignedToId"`
}

type UpdateProgramRequest struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	AssignedToID *uuid.UUID `json:"assignedToId"`
}

type ProgramEntryRequest struct {
	ExerciseID      uuid.UUID `json:"exerciseId" binding:"required"`
	OrderIndex      *int      `json:"orderIndex"`
	Sets            int       `json:"sets"`
	Reps            int       `json:"reps"`
	RestTimeSeconds int       `json:"restTimeSeconds"`
	Notes           string    `json:"notes"`
}

type UpdateProgramEntryRequest struct {
	OrderIndex      *int   `json:"orderIndex"`
	Sets            int    `json:"sets"`
	Reps            int    `json:"reps"`
	RestTimeSeconds int    `json:"restTimeSeconds"`
	Notes           string `json:"notes"`
}

type ReorderRequest struct {
	Items []ReorderItemRequest `json:"items" binding:"required"`
}

type ReorderItemRequest struct {
	ID         uuid.UUID `json:"id" binding:"required"`
	OrderIndex int       `json:"orderIndex"`
}

func (h *ProgramHandler) Create(c *gin.Context) {
	var req ProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.programService.Create(c.Request.Context(), getActor(c), service.ProgramInput{
		Name:         req.Name,
		Description:  req.Description,
		AssignedToID: req.AssignedToID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, p)
}

func (h *ProgramHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid program id")
		return
	}
	p, err := h.programService.Get(c.Request.Context(), getActor(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}

func (h *ProgramHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)
	items, total, err := h.programService.List(c.Request.Context(), getActor(c), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, items, total, page, limit)
}

func (h *ProgramHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid program id")
		return
	}
	var req UpdateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.programService.Update(c.Request.Context(), getActor(c), id, service.ProgramInput{
		Name:         req.Name,
		Description:  req.Description,
		AssignedToID: req.AssignedToID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, p)
}

func (h *ProgramHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid program id")
		return
	}
	if err := h.programService.Delete(c.Request.Context(), getActor(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "program deleted")
}

func (h *ProgramHandler) ListEntries(c *gin.Context) {
	programID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid program id")
		return
	}
	entries, err := h.programService.ListEntries(c.Request.Context(), getActor(c), programID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, entries)
}

// AddEntry godoc
// @Summary Add an exercise to a program
// @Description Inserts at the requested position (shifting later entries) or appends.
// @Tags Programs
// @Accept json
// @Produce json
// @Param id path string true "Program ID"
// @Param entry body ProgramEntryRequest true "Exercise slot"
// @Success 201 {object} Response
// @Failure 409 {object} Response "Exercise already in program"
// @Router /programs/{id}/exercises [post]
func (h *ProgramHandler) AddEntry(c *gin.Context) {
	programID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid program id")
		return
	}
	var req ProgramEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.programService.AddEntry(c.Request.Context(), getActor(c), programID, service.ProgramEntryInput{
		ExerciseID:      req.ExerciseID,
		OrderIndex:      req.OrderIndex,
		Sets:            req.Sets,
		Reps:            req.Reps,
		RestTimeSeconds: req.RestTimeSeconds,
		Notes:           req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, entry)
}

func (h *ProgramHandler) UpdateEntry(c *gin.Context) {
	programID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid program id")
		return
	}
	entryID, err := uuid.Parse(c.Param("entryId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid entry id")
		return
	}
	var req UpdateProgramEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.programService.UpdateEntry(c.Request.Context(), getActor(c), programID, entryID, service.ProgramEntryInput{
		OrderIndex:      req.OrderIndex,
		Sets:            req.Sets,
		Reps:            req.Reps,
		RestTimeSeconds: req.RestTimeSeconds,
		Notes:           req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, entry)
}

func (h *ProgramHandler) RemoveEntry(c *gin.Context) {
	programID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid program id")
		return
	}
	entryID, err := uuid.Parse(c.Param("entryId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid entry id")
		return
	}

	if err := h.programService.RemoveEntry(c.Request.Context(), getActor(c), programID, entryID); err != nil {
		respondServiceError(c, err)
		return
	}
	respondMessage(c, "exercise removed from program")
}

// Reorder godoc
// @Summary Reorder a program's exercises in one batch
// @Description The request must list every entry exactly once with indexes 0..N-1.
// @Tags Programs
// @Accept json
// @Produce json
// @Param id path string true "Program ID"
// @Param reorder body ReorderRequest true "Complete permutation"
// @Success 200 {object} Response
// @Failure 400 {object} Response "Not a permutation"
// @Failure 404 {object} Response "Unknown entry in request"
// @Router /programs/{id}/exercises/reorder [post]
func (h *ProgramHandler) Reorder(c *gin.Context) {
	programID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid program id")
		return
	}
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	items := make([]service.ReorderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.ReorderItem{EntryID: item.ID, OrderIndex: item.OrderIndex}
	}

	entries, err := h.programService.Reorder(c.Request.Context(), getActor(c), programID, items)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, entries)
}
