package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"exercise-tracker/internal/middleware"
	"exercise-tracker/internal/repository"
	"exercise-tracker/internal/service"
)

type ExerciseHandler struct {
	exerciseService *service.ExerciseService
}

func NewExerciseHandler(exerciseService *service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// List serves the exercise collection the chart renders, optionally
// filtered by division or team name.
func (h *ExerciseHandler) List(c *gin.Context) {
	filter := repository.ExerciseFilter{
		DivisionName: c.Query("division_name"),
		TeamName:     c.Query("team_name"),
	}

	exercises, apiErr := h.exerciseService.List(c.Request.Context(), filter)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, exercises)
}

func (h *ExerciseHandler) Create(c *gin.Context) {
	var input service.ExerciseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "invalid_json", "message": "invalid request body"},
		})
		return
	}

	exercise, apiErr := h.exerciseService.Create(c.Request.Context(), middleware.SessionID(c), input)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, exercise)
}

func (h *ExerciseHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "invalid_id", "message": "invalid exercise id"},
		})
		return
	}

	var input service.ExerciseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "invalid_json", "message": "invalid request body"},
		})
		return
	}

	exercise, apiErr := h.exerciseService.Update(c.Request.Context(), middleware.SessionID(c), id, input)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, exercise)
}

func (h *ExerciseHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "invalid_id", "message": "invalid exercise id"},
		})
		return
	}

	if apiErr := h.exerciseService.Delete(c.Request.Context(), middleware.SessionID(c), id); apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
