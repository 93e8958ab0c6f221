package routing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	projectController "github.com/tasklink/tasklink/internal/api/controllers/project"
	"github.com/tasklink/tasklink/internal/api/models/common"
	"github.com/tasklink/tasklink/internal/api/models/project"
	"github.com/tasklink/tasklink/internal/config"
)

var projectsRootPath = "/projects"
var projectIdPathKey = "project_id"

type ProjectsRoutesHandler struct {
	AuthSettings *config.Auth
	Controller   projectController.Controller
}

func (h *ProjectsRoutesHandler) RegisterRoutes(ginEngine *gin.Engine) {
	routerGroup := guardedGroup(h.AuthSettings, ginEngine, projectsRootPath)
	routerGroup.POST("", h.create)
	routerGroup.GET("", h.list)
	routerGroup.GET("/:"+projectIdPathKey, h.get)
	routerGroup.PUT("/:"+projectIdPathKey, h.update)
	routerGroup.DELETE("/:"+projectIdPathKey, h.delete)
}

// @Summary Add a new Project
// @ID create-project
// @Tags projects
// @Description Creates a new Project owned by the calling user
// @Accept  json
// @Produce  json
// @Param X-TASKLINK-USER-ID header string true "User ID"
// @Param   newProject body project.NewProject true "The request body"
// @Success 201 {object} project.Project
// @Failure 400 {object} common.Body "Invalid JSON or name"
// @Router /projects [post]
func (h *ProjectsRoutesHandler) create(c *gin.Context) {
	principal, apiErr := getPrincipalOrErr(c)
	if apiErr != nil {
		HandleApiErr(c, apiErr)
		return
	}
	var newProject project.NewProject
	if err := c.ShouldBindJSON(&newProject); err != nil {
		HandleJsonSerdesErr(c, err)
	} else {
		if p, err := h.Controller.Create(c.Request.Context(), *principal, &newProject); err == nil {
			c.JSON(http.StatusCreated, p)
		} else {
			c.JSON(err.StatusCode, err.Body)
		}
	}
}

// @Summary List Projects
// @ID list-projects
// @Tags projects
// @Description Lists Projects with paging, search and sorting
// @Accept  json
// @Produce  json
// @Param   page query int false "Page, starting at 1"
// @Param   pageSize query int false "Page size, max 100"
// @Param   sort query string false "createdAt, -createdAt or name"
// @Param   search query string false "Substring to match against names"
// @Success 200 {object} common.Page[project.Project]
// @Router /projects [get]
func (h *ProjectsRoutesHandler) list(c *gin.Context) {
	var params common.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		HandleJsonSerdesErr(c, err)
	} else {
		if page, err := h.Controller.List(c.Request.Context(), params); err == nil {
			c.JSON(http.StatusOK, page)
		} else {
			c.JSON(err.StatusCode, err.Body)
		}
	}
}

// @Summary Get a Project
// @ID get-existing-project
// @Tags projects
// @Description Retrieves a persisted Project. The response ETag header holds
// @Description the concurrency token to send back in If-Match on updates.
// @Accept  json
// @Produce  json
// @Param   project_id path string true "The id of the Project"
// @Success 200 {object} project.Project
// @Failure 404 {object} common.Body "Project does not exist"
// @Router /projects/{project_id} [get]
func (h *ProjectsRoutesHandler) get(c *gin.Context) {
	id, ok := pathUuid(c, projectIdPathKey)
	if !ok {
		return
	}
	if p, err := h.Controller.Get(c.Request.Context(), id); err == nil {
		c.Header("ETag", p.Metadata.ETag)
		c.JSON(http.StatusOK, p)
	} else {
		c.JSON(err.StatusCode, err.Body)
	}
}

// @Summary Update a Project
// @ID update-existing-project
// @Tags projects
// @Description Updates a Project, guarded by the concurrency token from a
// @Description previous read. Sent via the If-Match header or the if_match
// @Description body field.
// @Accept  json
// @Produce  json
// @Param X-TASKLINK-USER-ID header string true "User ID"
// @Param If-Match header string false "Concurrency token"
// @Param   project_id path string true "The id of the Project"
// @Param   projectUpdate body project.ProjectUpdate true "The request body"
// @Success 200 {object} project.Project
// @Failure 404 {object} common.Body "Project does not exist"
// @Failure 412 {object} common.Body "The token no longer matches"
// @Failure 428 {object} common.Body "No token was sent"
// @Router /projects/{project_id} [put]
func (h *ProjectsRoutesHandler) update(c *gin.Context) {
	principal, apiErr := getPrincipalOrErr(c)
	if apiErr != nil {
		HandleApiErr(c, apiErr)
		return
	}
	id, ok := pathUuid(c, projectIdPathKey)
	if !ok {
		return
	}
	var update project.ProjectUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		HandleJsonSerdesErr(c, err)
	} else {
		ifMatch := ifMatchValue(c, update.IfMatch)
		if p, err := h.Controller.Update(c.Request.Context(), *principal, id, ifMatch, &update); err == nil {
			c.Header("ETag", p.Metadata.ETag)
			c.JSON(http.StatusOK, p)
		} else {
			c.JSON(err.StatusCode, err.Body)
		}
	}
}

// @Summary Delete a Project
// @ID delete-existing-project
// @Tags projects
// @Description Deletes a Project. No concurrency token is needed; deletes
// @Description always win.
// @Accept  json
// @Produce  json
// @Param X-TASKLINK-USER-ID header string true "User ID"
// @Param   project_id path string true "The id of the Project"
// @Success 204
// @Failure 404 {object} common.Body "Project does not exist"
// @Router /projects/{project_id} [delete]
func (h *ProjectsRoutesHandler) delete(c *gin.Context) {
	principal, apiErr := getPrincipalOrErr(c)
	if apiErr != nil {
		HandleApiErr(c, apiErr)
		return
	}
	id, ok := pathUuid(c, projectIdPathKey)
	if !ok {
		return
	}
	if err := h.Controller.Delete(c.Request.Context(), *principal, id); err == nil {
		c.Status(http.StatusNoContent)
	} else {
		c.JSON(err.StatusCode, err.Body)
	}
}
