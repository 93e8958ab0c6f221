package routing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	activityController "github.com/tasklink/tasklink/internal/api/controllers/activity"
	"github.com/tasklink/tasklink/internal/api/models/common"
	"github.com/tasklink/tasklink/internal/config"
)

var activityRootPath = "/activity"
var entityIdPathKey = "entity_id"

type ActivityRoutesHandler struct {
	AuthSettings *config.Auth
	Controller   activityController.Controller
}

func (h *ActivityRoutesHandler) RegisterRoutes(ginEngine *gin.Engine) {
	routerGroup := guardedGroup(h.AuthSettings, ginEngine, activityRootPath)
	routerGroup.GET("/:"+entityIdPathKey, h.forEntity)
}

// @Summary List an entity's audit trail
// @ID list-activity
// @Tags activity
// @Description Lists what happened to a project, task or comment, newest
// @Description first
// @Accept  json
// @Produce  json
// @Param   entity_id path string true "The id of the entity"
// @Param   page query int false "Page, starting at 1"
// @Param   pageSize query int false "Page size, max 100"
// @Success 200 {object} common.Page[activity.Entry]
// @Router /activity/{entity_id} [get]
func (h *ActivityRoutesHandler) forEntity(c *gin.Context) {
	entityId, ok := pathUuid(c, entityIdPathKey)
	if !ok {
		return
	}
	var params common.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		HandleJsonSerdesErr(c, err)
	} else {
		if page, err := h.Controller.ForEntity(c.Request.Context(), entityId, params); err == nil {
			c.JSON(http.StatusOK, page)
		} else {
			c.JSON(err.StatusCode, err.Body)
		}
	}
}
