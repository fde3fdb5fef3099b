package handlers

import (
	"net/http"

	"marketplace/models"
	"marketplace/services/calendar"

	"github.com/gin-gonic/gin"
)

type CalendarHandler struct {
	Service calendar.CalendarService
}

func NewCalendarHandler(svc calendar.CalendarService) *CalendarHandler {
	return &CalendarHandler{Service: svc}
}

func (h *CalendarHandler) CreateEventHandler(c *gin.Context) {
	executorID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	event, err := h.Service.CreateEvent(c.Request.Context(), executorID, req)
	if err != nil {
		respondError(c, err, "Failed to create event")
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *CalendarHandler) ListEventsHandler(c *gin.Context) {
	executorID, ok := parseID(c, "id")
	if !ok {
		return
	}
	events, err := h.Service.ListEvents(c.Request.Context(), executorID, c.Query("date"))
	if err != nil {
		respondError(c, err, "Failed to list events")
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *CalendarHandler) DeleteEventHandler(c *gin.Context) {
	executorID, ok := parseID(c, "id")
	if !ok {
		return
	}
	eventID, ok := parseID(c, "eventId")
	if !ok {
		return
	}
	if err := h.Service.DeleteEvent(c.Request.Context(), executorID, eventID); err != nil {
		respondError(c, err, "Failed to delete event")
		return
	}
	c.Status(http.StatusNoContent)
}
