package controller

import (
	"braincontrol/service"

	"github.com/gin-gonic/gin"
)

type GroupController struct {
	groups *service.GroupService
}

func NewGroupController(groups *service.GroupService) *GroupController {
	return &GroupController{groups: groups}
}

func (ctrl *GroupController) GetAll(c *gin.Context) {
	groups, err := ctrl.groups.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, "groups.getAll", err)
		return
	}
	respond(c, groups)
}

func (ctrl *GroupController) GetMessages(c *gin.Context) {
	in, err := bindMessagesInput(c)
	if err != nil {
		invalidInput(c, "groups.getMessages", err)
		return
	}

	messages, err := ctrl.groups.GetMessages(c.Request.Context(), in)
	if err != nil {
		respondError(c, "groups.getMessages", err)
		return
	}
	respond(c, messages)
}

// bindMessagesInput reads {id, limit?} from the query string.
func bindMessagesInput(c *gin.Context) (service.MessagesInput, error) {
	var query struct {
		ID    string `form:"id" binding:"required"`
		Limit *int   `form:"limit" binding:"omitempty,min=1"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		return service.MessagesInput{}, err
	}
	return service.MessagesInput{ID: query.ID, Limit: query.Limit}, nil
}
