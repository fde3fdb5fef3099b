package handlers

import (
	"net/http"

	"marketplace/models"
	"marketplace/services/executor"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ExecutorHandler struct {
	Service executor.ExecutorService
}

func NewExecutorHandler(svc executor.ExecutorService) *ExecutorHandler {
	return &ExecutorHandler{Service: svc}
}

// RegisterExecutorHandler onboards a new executor.
func (h *ExecutorHandler) RegisterExecutorHandler(c *gin.Context) {
	logger := getLogger(c)
	var req models.RegisterExecutorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid executor registration request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	exec, err := h.Service.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register executor")
		return
	}
	c.JSON(http.StatusCreated, exec)
}

func (h *ExecutorHandler) GetExecutorHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	exec, err := h.Service.GetExecutor(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to get executor")
		return
	}
	c.JSON(http.StatusOK, exec)
}

// ListExecutorsHandler supports ?specialization= and ?city= filters.
func (h *ExecutorHandler) ListExecutorsHandler(c *gin.Context) {
	criteria := models.ExecutorSearchCriteria{
		Specialization: c.Query("specialization"),
		City:           c.Query("city"),
	}
	executors, err := h.Service.ListExecutors(c.Request.Context(), criteria)
	if err != nil {
		respondError(c, err, "Failed to list executors")
		return
	}
	c.JSON(http.StatusOK, gin.H{"executors": executors})
}
