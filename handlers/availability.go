package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"marketplace/services/availability"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	Service availability.AvailabilityService
}

func NewAvailabilityHandler(svc availability.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// GetScheduleHandler serves GET /api/executor/schedule?executorId=&date=.
func (h *AvailabilityHandler) GetScheduleHandler(c *gin.Context) {
	logger := getLogger(c)

	rawID := c.Query("executorId")
	date := c.Query("date")
	if rawID == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "executorId and date are required"})
		return
	}
	executorID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || executorID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "executorId must be a positive integer"})
		return
	}

	result, err := h.Service.GetAvailability(c.Request.Context(), executorID, date)
	if errors.Is(err, availability.ErrPastDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "availableSlots": []string{}})
		return
	}
	if err != nil {
		respondError(c, err, "Failed to compute availability")
		return
	}

	logger.Debug("Availability computed",
		zap.Int64("executorID", executorID),
		zap.String("date", date),
		zap.Int("slots", len(result.AvailableSlots)),
	)
	c.JSON(http.StatusOK, result)
}
