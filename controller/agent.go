package controller

import (
	"braincontrol/service"

	"github.com/gin-gonic/gin"
)

type AgentController struct {
	agents *service.AgentService
}

func NewAgentController(agents *service.AgentService) *AgentController {
	return &AgentController{agents: agents}
}

func (ctrl *AgentController) GetAll(c *gin.Context) {
	agents, err := ctrl.agents.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, "agents.getAll", err)
		return
	}
	respond(c, agents)
}

func (ctrl *AgentController) GetMessages(c *gin.Context) {
	in, err := bindMessagesInput(c)
	if err != nil {
		invalidInput(c, "agents.getMessages", err)
		return
	}

	messages, err := ctrl.agents.GetMessages(c.Request.Context(), in)
	if err != nil {
		respondError(c, "agents.getMessages", err)
		return
	}
	respond(c, messages)
}
