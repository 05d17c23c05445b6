package controller

import (
	"net/http"
	"net/url"

	"braincontrol/model"
	"braincontrol/service"

	"github.com/gin-gonic/gin"
)

// UserController ...
type UserController struct {
	users *service.UserService
}

func NewUserController(users *service.UserService) *UserController {
	return &UserController{users: users}
}

// GetAll handles users.getAll.
func (ctrl *UserController) GetAll(c *gin.Context) {
	users, err := ctrl.users.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, "users.getAll", err)
		return
	}
	respond(c, users)
}

// UpdateOne handles users.updateOne.
func (ctrl *UserController) UpdateOne(c *gin.Context) {
	logger.Infof("[%s] Handling users.updateOne request", c.GetString("requestId"))

	var input struct {
		ID       string                 `json:"id" binding:"required"`
		UserName model.Optional[string] `json:"userName"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		invalidInput(c, "users.updateOne", err)
		return
	}

	user, err := ctrl.users.UpdateOne(c.Request.Context(), service.UpdateUserInput{
		ID:       input.ID,
		UserName: input.UserName,
	})
	if err != nil {
		respondError(c, "users.updateOne", err)
		return
	}

	logger.Infof("[%s] User %s updated successfully", c.GetString("requestId"), user.ID)
	respond(c, user)
}

// Edit handles the dashboard's user edit form and sends the browser back to
// the page it came from.
func (ctrl *UserController) Edit(c *gin.Context) {
	input := service.UpdateUserInput{ID: c.Param("id")}
	if userName, ok := c.GetPostForm("userName"); ok {
		input.UserName = model.Some(userName)
	}

	if _, err := ctrl.users.UpdateOne(c.Request.Context(), input); err != nil {
		logger.Warnf("[%s] Failed to edit user %s: %s", c.GetString("requestId"), input.ID, err)
		status := http.StatusServiceUnavailable
		switch {
		case service.IsNotFound(err):
			status = http.StatusNotFound
		case service.IsValidation(err):
			status = http.StatusBadRequest
		}
		c.String(status, "Failed to update user")
		return
	}

	target := "/"
	if groupID := c.PostForm("groupId"); groupID != "" {
		target += "?" + url.Values{"groupId": {groupID}}.Encode()
	}
	c.Redirect(http.StatusSeeOther, target)
}
