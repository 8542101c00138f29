package api

import (
	"errors"
	"net/http"

	"fitplan/training-planner/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ExerciseHandler serves the exercise library and movement patterns.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- Request/Response Structs ---

type ExerciseRequest struct {
	Name              string  `json:"name" binding:"required"`
	Instructions      string  `json:"instructions"`
	Notes             string  `json:"notes"`
	MovementPatternID *string `json:"movementPatternId"`
}

type PatternRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func parsePatternID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, errors.New("movementPatternId must be a UUID")
	}
	return &id, nil
}

// --- Handler Methods ---

func (h *ExerciseHandler) Create(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "name is required")
		return
	}
	patternID, err := parsePatternID(req.MovementPatternID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), getUserFromContext(c), req.Name, req.Instructions, req.Notes, patternID)
	if err != nil {
		respondExerciseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, exercise)
}

func (h *ExerciseHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid exercise id")
		return
	}
	exercise, err := h.exerciseService.GetExercise(c.Request.Context(), getUserFromContext(c), id)
	if err != nil {
		respondExerciseError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercise)
}

func (h *ExerciseHandler) List(c *gin.Context) {
	exercises, err := h.exerciseService.ListExercises(c.Request.Context(), getUserFromContext(c))
	if err != nil {
		respondExerciseError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercises)
}

func (h *ExerciseHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid exercise id")
		return
	}
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "name is required")
		return
	}
	patternID, err := parsePatternID(req.MovementPatternID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	exercise, err := h.exerciseService.UpdateExercise(c.Request.Context(), getUserFromContext(c), id, req.Name, req.Instructions, req.Notes, patternID)
	if err != nil {
		respondExerciseError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercise)
}

func (h *ExerciseHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid exercise id")
		return
	}
	if err := h.exerciseService.DeleteExercise(c.Request.Context(), getUserFromContext(c), id); err != nil {
		respondExerciseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// === Movement Patterns ===

func (h *ExerciseHandler) CreatePattern(c *gin.Context) {
	var req PatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "name is required")
		return
	}
	pattern, err := h.exerciseService.CreatePattern(c.Request.Context(), getUserFromContext(c), req.Name, req.Description)
	if err != nil {
		respondExerciseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pattern)
}

func (h *ExerciseHandler) ListPatterns(c *gin.Context) {
	patterns, err := h.exerciseService.ListPatterns(c.Request.Context(), getUserFromContext(c))
	if err != nil {
		respondExerciseError(c, err)
		return
	}
	c.JSON(http.StatusOK, patterns)
}

func (h *ExerciseHandler) UpdatePattern(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid pattern id")
		return
	}
	var req PatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "name is required")
		return
	}
	pattern, err := h.exerciseService.UpdatePattern(c.Request.Context(), getUserFromContext(c), id, req.Name, req.Description)
	if err != nil {
		respondExerciseError(c, err)
		return
	}
	c.JSON(http.StatusOK, pattern)
}

func (h *ExerciseHandler) DeletePattern(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid pattern id")
		return
	}
	if err := h.exerciseService.DeletePattern(c.Request.Context(), getUserFromContext(c), id); err != nil {
		respondExerciseError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondExerciseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrPatternNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEditNotAllowed):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNameRequired):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "something went wrong, please try again")
	}
}
