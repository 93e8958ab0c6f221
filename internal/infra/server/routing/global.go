package routing

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tasklink/tasklink/internal/api/models/common"
	"github.com/tasklink/tasklink/internal/config"
	"github.com/tasklink/tasklink/internal/domain/authz"
)

// UserIdHeaderKey carries the authenticated caller's id, as asserted by the
// authenticating proxy in front of this server.
var UserIdHeaderKey = "X-TASKLINK-USER-ID"

// UserRoleHeaderKey carries the caller's role; absent or unknown values fall
// back to member.
var UserRoleHeaderKey = "X-TASKLINK-USER-ROLE"

var notFoundErr = common.ApiError{
	StatusCode: http.StatusNotFound,
	Body: common.Body{
		Message: "No such route.",
	},
}

var noMethodErr = common.ApiError{
	StatusCode: http.StatusMethodNotAllowed,
	Body: common.Body{
		Message: "No such route.",
	},
}

// guardedGroup returns a route group at the given root, wrapped in basic auth
// when accounts are configured.
func guardedGroup(auth *config.Auth, ginEngine *gin.Engine, rootPath string) *gin.RouterGroup {
	accounts := make(gin.Accounts)
	if auth != nil {
		for _, bAuthUser := range auth.BasicAuth {
			accounts[bAuthUser.Name] = bAuthUser.Password
		}
	}

	if len(accounts) > 0 {
		return ginEngine.Group(rootPath, gin.BasicAuth(accounts))
	}
	return ginEngine.Group(rootPath)
}

func NoRoute(c *gin.Context) {
	c.JSON(notFoundErr.StatusCode, notFoundErr.Body)
}

func NoMethod(c *gin.Context) {
	c.JSON(notFoundErr.StatusCode, noMethodErr.Body)
}

func HandleApiErr(c *gin.Context, apiError *common.ApiError) {
	c.JSON(apiError.StatusCode, apiError.Body)
}

func HandleJsonSerdesErr(c *gin.Context, err error) {
	errResp := common.ApiError{
		StatusCode: http.StatusBadRequest,
		Body: common.Body{
			Message: err.Error(),
		},
	}
	HandleApiErr(c, &errResp)
}

var noUserIdApiErr = common.ApiError{
	StatusCode: http.StatusUnauthorized,
	Body: common.Body{
		Message: fmt.Sprintf("User Id header [%s] not sent", UserIdHeaderKey),
	},
}

func badUserIdApiErr(raw string) *common.ApiError {
	return &common.ApiError{
		StatusCode: http.StatusUnauthorized,
		Body: common.Body{
			Message: fmt.Sprintf("User Id header [%s] is not a valid UUID: [%s]", UserIdHeaderKey, raw),
		},
	}
}

func getPrincipalOrErr(c *gin.Context) (*authz.Principal, *common.ApiError) {
	userIdStr := strings.TrimSpace(c.Request.Header.Get(UserIdHeaderKey))
	if len(userIdStr) == 0 {
		return nil, &noUserIdApiErr
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return nil, badUserIdApiErr(userIdStr)
	}
	principal := authz.Principal{
		ID:   userId,
		Role: authz.RoleFromString(strings.TrimSpace(c.Request.Header.Get(UserRoleHeaderKey))),
	}
	return &principal, nil
}

func badPathId(c *gin.Context, pathKey string, raw string) {
	errResp := common.ApiError{
		StatusCode: http.StatusBadRequest,
		Body: common.Body{
			Message: fmt.Sprintf("Path parameter [%s] is not a valid UUID: [%s]", pathKey, raw),
		},
	}
	HandleApiErr(c, &errResp)
}

func pathUuid(c *gin.Context, pathKey string) (uuid.UUID, bool) {
	raw := c.Param(pathKey)
	id, err := uuid.Parse(raw)
	if err != nil {
		badPathId(c, pathKey, raw)
		return uuid.Nil, false
	}
	return id, true
}

// ifMatchValue resolves the concurrency token for an update: the If-Match
// header wins, with a body-level fallback for clients that cannot set
// headers. An empty result means no token was sent at all.
func ifMatchValue(c *gin.Context, bodyFallback *string) string {
	if header := strings.TrimSpace(c.Request.Header.Get("If-Match")); header != "" {
		return header
	}
	if bodyFallback != nil {
		return strings.TrimSpace(*bodyFallback)
	}
	return ""
}
