package api

import (
	"errors"
	"net/http"
	"time"

	"fitplan/training-planner/internal/domain"
	"fitplan/training-planner/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TrainingHandler serves trainings and their nested blocks and
// prescriptions.
type TrainingHandler struct {
	plannerService service.PlannerService
}

// NewTrainingHandler creates a new TrainingHandler.
func NewTrainingHandler(plannerService service.PlannerService) *TrainingHandler {
	return &TrainingHandler{plannerService: plannerService}
}

// --- Request/Response Structs ---

type TrainingRequest struct {
	ScheduledDate        string `json:"scheduledDate" binding:"required"` // YYYY-MM-DD
	Title                string `json:"title" binding:"required"`
	Description          string `json:"description"`
	Intensity            string `json:"intensity"`
	EstimatedDurationMin int    `json:"estimatedDurationMin"`
}

func (r TrainingRequest) toInput() (service.TrainingInput, error) {
	date, err := time.Parse("2006-01-02", r.ScheduledDate)
	if err != nil {
		return service.TrainingInput{}, errors.New("scheduledDate must be YYYY-MM-DD")
	}
	return service.TrainingInput{
		ScheduledDate:        date,
		Title:                r.Title,
		Description:          r.Description,
		Intensity:            domain.Intensity(r.Intensity),
		EstimatedDurationMin: r.EstimatedDurationMin,
	}, nil
}

type BlockRequest struct {
	Type           string `json:"type" binding:"required"`
	Label          string `json:"label"`
	OrderIndex     int    `json:"orderIndex"`
	DefaultRestSec int    `json:"defaultRestSec"`
}

type PrescriptionRequest struct {
	BlockID    string   `json:"blockId" binding:"required"`
	ExerciseID string   `json:"exerciseId" binding:"required"`
	OrderIndex int      `json:"orderIndex"`
	Sets       int      `json:"sets" binding:"required,min=1"`
	Reps       string   `json:"reps" binding:"required"`
	Load       string   `json:"load"`
	RestSec    int      `json:"restSec"`
	RPE        *float64 `json:"rpe"`
	Notes      string   `json:"notes"`
}

func (r PrescriptionRequest) toDomain() (domain.ExercisePrescription, error) {
	blockID, err := uuid.Parse(r.BlockID)
	if err != nil {
		return domain.ExercisePrescription{}, errors.New("blockId must be a UUID")
	}
	exerciseID, err := uuid.Parse(r.ExerciseID)
	if err != nil {
		return domain.ExercisePrescription{}, errors.New("exerciseId must be a UUID")
	}
	return domain.ExercisePrescription{
		BlockID:    blockID,
		ExerciseID: exerciseID,
		OrderIndex: r.OrderIndex,
		Sets:       r.Sets,
		Reps:       r.Reps,
		Load:       r.Load,
		RestSec:    r.RestSec,
		RPE:        r.RPE,
		Notes:      r.Notes,
	}, nil
}

// --- Handler Methods ---

// Create schedules a training inside the week given in the path.
func (h *TrainingHandler) Create(c *gin.Context) {
	weekID, err := uuid.Parse(c.Param("weekId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid week id")
		return
	}
	var req TrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "scheduledDate and title are required")
		return
	}
	input, err := req.toInput()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	training, err := h.plannerService.CreateTraining(c.Request.Context(), getUserFromContext(c), weekID, input)
	if err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, training)
}

// Get returns one training with its blocks.
func (h *TrainingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid training id")
		return
	}
	training, err := h.plannerService.GetTraining(c.Request.Context(), getUserFromContext(c), id)
	if err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, training)
}

// Update rewrites a training's fields.
func (h *TrainingHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid training id")
		return
	}
	var req TrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "scheduledDate and title are required")
		return
	}
	input, err := req.toInput()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	training, err := h.plannerService.UpdateTraining(c.Request.Context(), getUserFromContext(c), id, input)
	if err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, training)
}

// Delete removes a training.
func (h *TrainingHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid training id")
		return
	}
	if err := h.plannerService.DeleteTraining(c.Request.Context(), getUserFromContext(c), id); err != nil {
		respondPlannerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// === Blocks ===

// AddBlock appends a block to a training.
func (h *TrainingHandler) AddBlock(c *gin.Context) {
	trainingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid training id")
		return
	}
	var req BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "type is required")
		return
	}

	block := domain.TrainingBlock{
		Type:           domain.BlockType(req.Type),
		Label:          req.Label,
		OrderIndex:     req.OrderIndex,
		DefaultRestSec: req.DefaultRestSec,
	}
	created, err := h.plannerService.AddBlock(c.Request.Context(), getUserFromContext(c), trainingID, block)
	if err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateBlock rewrites a block's fields.
func (h *TrainingHandler) UpdateBlock(c *gin.Context) {
	trainingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid training id")
		return
	}
	blockID, err := uuid.Parse(c.Param("blockId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid block id")
		return
	}
	var req BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "type is required")
		return
	}

	block := domain.TrainingBlock{
		ID:             blockID,
		TrainingID:     trainingID,
		Type:           domain.BlockType(req.Type),
		Label:          req.Label,
		OrderIndex:     req.OrderIndex,
		DefaultRestSec: req.DefaultRestSec,
	}
	updated, err := h.plannerService.UpdateBlock(c.Request.Context(), getUserFromContext(c), block)
	if err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteBlock removes a block and its prescriptions.
func (h *TrainingHandler) DeleteBlock(c *gin.Context) {
	trainingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid training id")
		return
	}
	blockID, err := uuid.Parse(c.Param("blockId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid block id")
		return
	}
	if err := h.plannerService.DeleteBlock(c.Request.Context(), getUserFromContext(c), trainingID, blockID); err != nil {
		respondPlannerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// === Prescriptions ===

// AddPrescription appends an exercise prescription to a block.
func (h *TrainingHandler) AddPrescription(c *gin.Context) {
	trainingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid training id")
		return
	}
	var req PrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "blockId, exerciseId, sets and reps are required")
		return
	}
	p, err := req.toDomain()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.plannerService.AddPrescription(c.Request.Context(), getUserFromContext(c), trainingID, p)
	if err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdatePrescription rewrites a prescription.
func (h *TrainingHandler) UpdatePrescription(c *gin.Context) {
	trainingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid training id")
		return
	}
	prescriptionID, err := uuid.Parse(c.Param("prescriptionId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid prescription id")
		return
	}
	var req PrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "blockId, exerciseId, sets and reps are required")
		return
	}
	p, err := req.toDomain()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	p.ID = prescriptionID

	updated, err := h.plannerService.UpdatePrescription(c.Request.Context(), getUserFromContext(c), trainingID, p)
	if err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeletePrescription removes a prescription.
func (h *TrainingHandler) DeletePrescription(c *gin.Context) {
	trainingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid training id")
		return
	}
	prescriptionID, err := uuid.Parse(c.Param("prescriptionId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid prescription id")
		return
	}
	if err := h.plannerService.DeletePrescription(c.Request.Context(), getUserFromContext(c), trainingID, prescriptionID); err != nil {
		respondPlannerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
