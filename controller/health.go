package controller

import (
	"context"
	"net/http"

	"braincontrol/service"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	store Pinger
}

func NewHealthController(store Pinger) *HealthController {
	return &HealthController{store: store}
}

func (ctrl *HealthController) Check(c *gin.Context) {
	if err := ctrl.store.Ping(c.Request.Context()); err != nil {
		respondError(c, "healthz", service.NewStoreUnavailableError("store unreachable", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
