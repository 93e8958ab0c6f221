package routing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	commentController "github.com/tasklink/tasklink/internal/api/controllers/comment"
	"github.com/tasklink/tasklink/internal/api/models/comment"
	"github.com/tasklink/tasklink/internal/api/models/common"
	"github.com/tasklink/tasklink/internal/config"
)

var commentsRootPath = "/tasks/:" + taskIdPathKey + "/comments"
var commentIdPathKey = "comment_id"

type CommentsRoutesHandler struct {
	AuthSettings *config.Auth
	Controller   commentController.Controller
}

func (h *CommentsRoutesHandler) RegisterRoutes(ginEngine *gin.Engine) {
	routerGroup := guardedGroup(h.AuthSettings, ginEngine, commentsRootPath)
	routerGroup.POST("", h.create)
	routerGroup.GET("", h.list)
	routerGroup.DELETE("/:"+commentIdPathKey, h.delete)
}

// @Summary Add a new Comment
// @ID create-comment
// @Tags comments
// @Description Creates a new Comment on a Task, authored by the calling user
// @Accept  json
// @Produce  json
// @Param X-TASKLINK-USER-ID header string true "User ID"
// @Param   task_id path string true "The id of the Task"
// @Param   newComment body comment.NewComment true "The request body"
// @Success 201 {object} comment.Comment
// @Failure 400 {object} common.Body "Invalid JSON or empty body field"
// @Failure 404 {object} common.Body "Task does not exist"
// @Router /tasks/{task_id}/comments [post]
func (h *CommentsRoutesHandler) create(c *gin.Context) {
	principal, apiErr := getPrincipalOrErr(c)
	if apiErr != nil {
		HandleApiErr(c, apiErr)
		return
	}
	taskId, ok := pathUuid(c, taskIdPathKey)
	if !ok {
		return
	}
	var newComment comment.NewComment
	if err := c.ShouldBindJSON(&newComment); err != nil {
		HandleJsonSerdesErr(c, err)
	} else {
		if created, err := h.Controller.Create(c.Request.Context(), *principal, taskId, &newComment); err == nil {
			c.JSON(http.StatusCreated, created)
		} else {
			c.JSON(err.StatusCode, err.Body)
		}
	}
}

// @Summary List Comments on a Task
// @ID list-comments
// @Tags comments
// @Description Lists a Task's Comments with paging, newest first
// @Accept  json
// @Produce  json
// @Param   task_id path string true "The id of the Task"
// @Param   page query int false "Page, starting at 1"
// @Param   pageSize query int false "Page size, max 100"
// @Success 200 {object} common.Page[comment.Comment]
// @Router /tasks/{task_id}/comments [get]
func (h *CommentsRoutesHandler) list(c *gin.Context) {
	taskId, ok := pathUuid(c, taskIdPathKey)
	if !ok {
		return
	}
	var params common.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		HandleJsonSerdesErr(c, err)
	} else {
		if page, err := h.Controller.List(c.Request.Context(), taskId, params); err == nil {
			c.JSON(http.StatusOK, page)
		} else {
			c.JSON(err.StatusCode, err.Body)
		}
	}
}

// @Summary Delete a Comment
// @ID delete-existing-comment
// @Tags comments
// @Description Deletes a Comment. Only its author or an admin may do so.
// @Accept  json
// @Produce  json
// @Param X-TASKLINK-USER-ID header string true "User ID"
// @Param   task_id path string true "The id of the Task"
// @Param   comment_id path string true "The id of the Comment"
// @Success 204
// @Failure 403 {object} common.Body "Not the author nor an admin"
// @Failure 404 {object} common.Body "Comment does not exist"
// @Router /tasks/{task_id}/comments/{comment_id} [delete]
func (h *CommentsRoutesHandler) delete(c *gin.Context) {
	principal, apiErr := getPrincipalOrErr(c)
	if apiErr != nil {
		HandleApiErr(c, apiErr)
		return
	}
	if _, ok := pathUuid(c, taskIdPathKey); !ok {
		return
	}
	commentId, ok := pathUuid(c, commentIdPathKey)
	if !ok {
		return
	}
	if err := h.Controller.Delete(c.Request.Context(), *principal, commentId); err == nil {
		c.Status(http.StatusNoContent)
	} else {
		c.JSON(err.StatusCode, err.Body)
	}
}
