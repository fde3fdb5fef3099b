package handlers

import (
	"net/http"
	"strconv"

	"marketplace/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError writes a service error with the status its type calls for.
// Unexpected errors are logged with a stack and reported as 500 with details.
func respondError(c *gin.Context, err error, message string) {
	status := utils.StatusFor(err)
	if status == http.StatusInternalServerError {
		getLogger(c).Error(message, zap.Error(err), zap.Stack("stack"))
		utils.JSONError(c, status, message, err.Error())
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
