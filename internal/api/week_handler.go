package api

import (
	"errors"
	"net/http"
	"time"

	"fitplan/training-planner/internal/domain"
	"fitplan/training-planner/internal/planner"
	"fitplan/training-planner/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WeekHandler serves training weeks, the calendar view and the alert feed.
type WeekHandler struct {
	plannerService service.PlannerService
}

// NewWeekHandler creates a new WeekHandler.
func NewWeekHandler(plannerService service.PlannerService) *WeekHandler {
	return &WeekHandler{plannerService: plannerService}
}

// --- Request/Response Structs ---

type WeekRequest struct {
	StartDate string  `json:"startDate" binding:"required"` // YYYY-MM-DD
	EndDate   string  `json:"endDate" binding:"required"`
	Status    string  `json:"status"`
	FocusID   *string `json:"focusId"`
	Notes     string  `json:"notes"`
}

type FocusRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

func (r WeekRequest) toInput() (service.WeekInput, error) {
	start, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return service.WeekInput{}, errors.New("startDate must be YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", r.EndDate)
	if err != nil {
		return service.WeekInput{}, errors.New("endDate must be YYYY-MM-DD")
	}
	input := service.WeekInput{
		StartDate: start,
		EndDate:   end,
		Status:    domain.WeekStatus(r.Status),
		Notes:     r.Notes,
	}
	if r.FocusID != nil {
		id, err := uuid.Parse(*r.FocusID)
		if err != nil {
			return service.WeekInput{}, errors.New("focusId must be a UUID")
		}
		input.FocusID = &id
	}
	return input, nil
}

// --- Handler Methods ---

// Create adds a training week.
func (h *WeekHandler) Create(c *gin.Context) {
	var req WeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "startDate and endDate are required")
		return
	}
	input, err := req.toInput()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	week, err := h.plannerService.CreateWeek(c.Request.Context(), getUserFromContext(c), input)
	if err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, week)
}

// List returns the bare week rows of the workspace.
func (h *WeekHandler) List(c *gin.Context) {
	weeks, err := h.plannerService.ListWeeks(c.Request.Context(), getUserFromContext(c))
	if err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, weeks)
}

// ListFull returns the weeks with their trainings, blocks and
// prescriptions nested.
func (h *WeekHandler) ListFull(c *gin.Context) {
	weeks, err := h.plannerService.WeeksWithTrainings(c.Request.Context(), getUserFromContext(c))
	if err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, weeks)
}

// Schedule returns the calendar-shaped view: one weekday grid per week.
func (h *WeekHandler) Schedule(c *gin.Context) {
	weeks, err := h.plannerService.WeeksWithTrainings(c.Request.Context(), getUserFromContext(c))
	if err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, planner.BuildSchedule(weeks))
}

// Alerts analyzes the current plan and returns the findings, severest
// first.
func (h *WeekHandler) Alerts(c *gin.Context) {
	weeks, err := h.plannerService.WeeksWithTrainings(c.Request.Context(), getUserFromContext(c))
	if err != nil {
		respondPlannerError(c, err)
		return
	}
	alerts := planner.Analyze(planner.BuildSchedule(weeks), time.Now().UTC())
	c.JSON(http.StatusOK, gin.H{"alerts": alerts})
}

// Update rewrites a week's fields.
func (h *WeekHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid week id")
		return
	}
	var req WeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "startDate and endDate are required")
		return
	}
	input, err := req.toInput()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	week, err := h.plannerService.UpdateWeek(c.Request.Context(), getUserFromContext(c), id, input)
	if err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, week)
}

// Delete removes a week and everything scheduled in it.
func (h *WeekHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid week id")
		return
	}
	if err := h.plannerService.DeleteWeek(c.Request.Context(), getUserFromContext(c), id); err != nil {
		respondPlannerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// === Week Focuses ===

func (h *WeekHandler) CreateFocus(c *gin.Context) {
	var req FocusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "name is required")
		return
	}
	focus, err := h.plannerService.CreateFocus(c.Request.Context(), getUserFromContext(c), req.Name, req.Description, req.Color)
	if err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, focus)
}

func (h *WeekHandler) ListFocuses(c *gin.Context) {
	focuses, err := h.plannerService.ListFocuses(c.Request.Context(), getUserFromContext(c))
	if err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, focuses)
}

func (h *WeekHandler) UpdateFocus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid focus id")
		return
	}
	var req FocusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "name is required")
		return
	}
	focus, err := h.plannerService.UpdateFocus(c.Request.Context(), getUserFromContext(c), id, req.Name, req.Description, req.Color)
	if err != nil {
		respondPlannerError(c, err)
		return
	}
	c.JSON(http.StatusOK, focus)
}

func (h *WeekHandler) DeleteFocus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid focus id")
		return
	}
	if err := h.plannerService.DeleteFocus(c.Request.Context(), getUserFromContext(c), id); err != nil {
		respondPlannerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Error Mapping ---

// respondPlannerError maps planner service errors onto HTTP statuses.
// Unknown errors deliberately collapse into a generic 500 so provider
// details never leak to the client.
func respondPlannerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWeekNotFound),
		errors.Is(err, service.ErrTrainingNotFound),
		errors.Is(err, service.ErrBlockNotFound),
		errors.Is(err, service.ErrPrescriptionNotFound),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrFocusNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEditNotAllowed):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidWeekDates),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidBlockType),
		errors.Is(err, service.ErrDateOutsideWeek),
		errors.Is(err, service.ErrNameRequired):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "something went wrong, please try again")
	}
}
