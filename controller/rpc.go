package controller

import (
	"errors"
	"net/http"

	"braincontrol/platform"
	"braincontrol/service"

	"github.com/gin-gonic/gin"
)

var logger = platform.Logger

// respond writes a successful procedure result.
func respond(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"result": gin.H{"data": data}})
}

// respondError writes a failed procedure result with the status matching
// the service error code.
func respondError(c *gin.Context, procedure string, err error) {
	code := service.Code(err)
	message := err.Error()
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		message = svcErr.Message()
	}

	status := http.StatusServiceUnavailable
	switch code {
	case service.CodeNotFound:
		status = http.StatusNotFound
	case service.CodeValidation:
		status = http.StatusBadRequest
	}

	if status == http.StatusServiceUnavailable {
		logger.Errorf("[%s] %s failed: %s", c.GetString("requestId"), procedure, err)
	} else {
		logger.Warnf("[%s] %s rejected: %s", c.GetString("requestId"), procedure, err)
	}
	c.JSON(status, gin.H{"error": gin.H{"code": code, "message": message}})
}

// invalidInput reports a request that could not be bound to the procedure's
// input shape.
func invalidInput(c *gin.Context, procedure string, err error) {
	respondError(c, procedure, service.NewValidationError("Invalid input", err))
}
