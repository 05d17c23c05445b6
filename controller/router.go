package controller

import (
	"braincontrol/model"
	"braincontrol/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the procedure endpoints, the dashboard page and the
// health check on r, all backed by store.
func SetupRoutes(r *gin.Engine, store *model.Store) {
	messages := service.NewMessageService(store)
	users := service.NewUserService(store)
	agents := service.NewAgentService(store, messages)
	groups := service.NewGroupService(store, messages)

	userCtrl := NewUserController(users)
	agentCtrl := NewAgentController(agents)
	groupCtrl := NewGroupController(groups)
	page := NewPageController(users, agents, groups)
	health := NewHealthController(store)

	r.SetHTMLTemplate(loadTemplates())

	r.GET("/", page.Index)
	r.POST("/users/:id", userCtrl.Edit)
	r.GET("/healthz", health.Check)

	rpc := r.Group("/api/trpc")
	{
		rpc.GET("/users.getAll", userCtrl.GetAll)
		rpc.POST("/users.updateOne", userCtrl.UpdateOne)

		rpc.GET("/agents.getAll", agentCtrl.GetAll)
		rpc.GET("/agents.getMessages", agentCtrl.GetMessages)

		rpc.GET("/groups.getAll", groupCtrl.GetAll)
		rpc.GET("/groups.getMessages", groupCtrl.GetMessages)
	}
}
