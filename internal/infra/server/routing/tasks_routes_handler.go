package routing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	taskController "github.com/tasklink/tasklink/internal/api/controllers/task"
	"github.com/tasklink/tasklink/internal/api/models/common"
	"github.com/tasklink/tasklink/internal/api/models/task"
	"github.com/tasklink/tasklink/internal/config"
)

var tasksRootPath = projectsRootPath + "/:" + projectIdPathKey + "/tasks"
var taskIdPathKey = "task_id"

type TasksRoutesHandler struct {
	AuthSettings *config.Auth
	Controller   taskController.Controller
}

func (h *TasksRoutesHandler) RegisterRoutes(ginEngine *gin.Engine) {
	routerGroup := guardedGroup(h.AuthSettings, ginEngine, tasksRootPath)
	routerGroup.POST("", h.create)
	routerGroup.GET("", h.list)
	routerGroup.GET("/:"+taskIdPathKey, h.get)
	routerGroup.PUT("/:"+taskIdPathKey, h.update)
	routerGroup.DELETE("/:"+taskIdPathKey, h.delete)
}

// @Summary Add a new Task
// @ID create-task
// @Tags tasks
// @Description Creates a new Task in a Project
// @Accept  json
// @Produce  json
// @Param X-TASKLINK-USER-ID header string true "User ID"
// @Param   project_id path string true "The id of the Project"
// @Param   newTask body task.NewTask true "The request body"
// @Success 201 {object} task.Task
// @Failure 400 {object} common.Body "Invalid JSON, title, status or priority"
// @Failure 404 {object} common.Body "Project does not exist"
// @Router /projects/{project_id}/tasks [post]
func (h *TasksRoutesHandler) create(c *gin.Context) {
	principal, apiErr := getPrincipalOrErr(c)
	if apiErr != nil {
		HandleApiErr(c, apiErr)
		return
	}
	projectId, ok := pathUuid(c, projectIdPathKey)
	if !ok {
		return
	}
	var newTask task.NewTask
	if err := c.ShouldBindJSON(&newTask); err != nil {
		HandleJsonSerdesErr(c, err)
	} else {
		if t, err := h.Controller.Create(c.Request.Context(), *principal, projectId, &newTask); err == nil {
			c.JSON(http.StatusCreated, t)
		} else {
			c.JSON(err.StatusCode, err.Body)
		}
	}
}

// @Summary List Tasks in a Project
// @ID list-tasks
// @Tags tasks
// @Description Lists a Project's Tasks with paging, search and sorting
// @Accept  json
// @Produce  json
// @Param   project_id path string true "The id of the Project"
// @Param   page query int false "Page, starting at 1"
// @Param   pageSize query int false "Page size, max 100"
// @Param   sort query string false "createdAt, -createdAt or priority"
// @Param   search query string false "Substring to match against titles"
// @Success 200 {object} common.Page[task.Task]
// @Router /projects/{project_id}/tasks [get]
func (h *TasksRoutesHandler) list(c *gin.Context) {
	projectId, ok := pathUuid(c, projectIdPathKey)
	if !ok {
		return
	}
	var params common.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		HandleJsonSerdesErr(c, err)
	} else {
		if page, err := h.Controller.List(c.Request.Context(), projectId, params); err == nil {
			c.JSON(http.StatusOK, page)
		} else {
			c.JSON(err.StatusCode, err.Body)
		}
	}
}

// @Summary Get a Task
// @ID get-existing-task
// @Tags tasks
// @Description Retrieves a persisted Task. The response ETag header holds the
// @Description concurrency token to send back in If-Match on updates.
// @Accept  json
// @Produce  json
// @Param   project_id path string true "The id of the Project"
// @Param   task_id path string true "The id of the Task"
// @Success 200 {object} task.Task
// @Failure 404 {object} common.Body "Task does not exist in this Project"
// @Router /projects/{project_id}/tasks/{task_id} [get]
func (h *TasksRoutesHandler) get(c *gin.Context) {
	projectId, ok := pathUuid(c, projectIdPathKey)
	if !ok {
		return
	}
	taskId, ok := pathUuid(c, taskIdPathKey)
	if !ok {
		return
	}
	if t, err := h.Controller.Get(c.Request.Context(), projectId, taskId); err == nil {
		c.Header("ETag", t.Metadata.ETag)
		c.JSON(http.StatusOK, t)
	} else {
		c.JSON(err.StatusCode, err.Body)
	}
}

// @Summary Update a Task
// @ID update-existing-task
// @Tags tasks
// @Description Updates a Task, guarded by the concurrency token from a
// @Description previous read. Sent via the If-Match header or the if_match
// @Description body field.
// @Accept  json
// @Produce  json
// @Param X-TASKLINK-USER-ID header string true "User ID"
// @Param If-Match header string false "Concurrency token"
// @Param   project_id path string true "The id of the Project"
// @Param   task_id path string true "The id of the Task"
// @Param   taskUpdate body task.TaskUpdate true "The request body"
// @Success 200 {object} task.Task
// @Failure 404 {object} common.Body "Task does not exist in this Project"
// @Failure 412 {object} common.Body "The token no longer matches"
// @Failure 428 {object} common.Body "No token was sent"
// @Router /projects/{project_id}/tasks/{task_id} [put]
func (h *TasksRoutesHandler) update(c *gin.Context) {
	principal, apiErr := getPrincipalOrErr(c)
	if apiErr != nil {
		HandleApiErr(c, apiErr)
		return
	}
	projectId, ok := pathUuid(c, projectIdPathKey)
	if !ok {
		return
	}
	taskId, ok := pathUuid(c, taskIdPathKey)
	if !ok {
		return
	}
	var update task.TaskUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		HandleJsonSerdesErr(c, err)
	} else {
		ifMatch := ifMatchValue(c, update.IfMatch)
		if t, err := h.Controller.Update(c.Request.Context(), *principal, projectId, taskId, ifMatch, &update); err == nil {
			c.Header("ETag", t.Metadata.ETag)
			c.JSON(http.StatusOK, t)
		} else {
			c.JSON(err.StatusCode, err.Body)
		}
	}
}

// @Summary Delete a Task
// @ID delete-existing-task
// @Tags tasks
// @Description Deletes a Task. No concurrency token is needed; deletes always
// @Description win.
// @Accept  json
// @Produce  json
// @Param X-TASKLINK-USER-ID header string true "User ID"
// @Param   project_id path string true "The id of the Project"
// @Param   task_id path string true "The id of the Task"
// @Success 204
// @Failure 404 {object} common.Body "Task does not exist in this Project"
// @Router /projects/{project_id}/tasks/{task_id} [delete]
func (h *TasksRoutesHandler) delete(c *gin.Context) {
	principal, apiErr := getPrincipalOrErr(c)
	if apiErr != nil {
		HandleApiErr(c, apiErr)
		return
	}
	projectId, ok := pathUuid(c, projectIdPathKey)
	if !ok {
		return
	}
	taskId, ok := pathUuid(c, taskIdPathKey)
	if !ok {
		return
	}
	if err := h.Controller.Delete(c.Request.Context(), *principal, projectId, taskId); err == nil {
		c.Status(http.StatusNoContent)
	} else {
		c.JSON(err.StatusCode, err.Body)
	}
}
