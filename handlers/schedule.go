package handlers

import (
	"net/http"

	"marketplace/models"
	"marketplace/services/schedule"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	Service schedule.ScheduleService
}

func NewScheduleHandler(svc schedule.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{Service: svc}
}

func (h *ScheduleHandler) GetWorkingHoursHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	days, err := h.Service.GetWeeklyHours(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get working hours")
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

// SetWorkingHoursHandler upserts the listed days; unlisted days keep their rows.
func (h *ScheduleHandler) SetWorkingHoursHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.SetWeeklyHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	days, err := h.Service.SetWeeklyHours(c.Request.Context(), id, req.Days)
	if err != nil {
		respondError(c, err, "Failed to update working hours")
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}
