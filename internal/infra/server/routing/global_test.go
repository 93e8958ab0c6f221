package routing

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/tasklink/tasklink/internal/api/models/project"
	"github.com/tasklink/tasklink/internal/config"
)

var mockAuthSettings = config.Auth{
	BasicAuth: []config.BasicAuthUser{
		{Name: "admin", Password: "passw0rd"},
	},
}

func basicAuthHeaders(name string, password string) http.Header {
	h := userHeaders()
	credentials := base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s:%s", name, password)))
	h.Set("Authorization", "Basic "+credentials)
	return h
}

func setupGuardedProjectsRouter() (*gin.Engine, *mockProjectsController) {
	engine := gin.New()
	mockController := mockProjectsController{}
	handler := ProjectsRoutesHandler{AuthSettings: &mockAuthSettings, Controller: &mockController}
	handler.RegisterRoutes(engine)
	return engine, &mockController
}

func TestGuardedRoutes_NoCredentials(t *testing.T) {
	router, mockController := setupGuardedProjectsRouter()
	resp := performRequest(router, http.MethodPost, "/projects", project.NewProject{Name: "Apollo"}, userHeaders())
	assert.EqualValues(t, http.StatusUnauthorized, resp.Code)
	assert.EqualValues(t, 0, mockController.createCalled)
}

func TestGuardedRoutes_WrongPassword(t *testing.T) {
	router, mockController := setupGuardedProjectsRouter()
	resp := performRequest(router, http.MethodGet, "/projects", nil, basicAuthHeaders("admin", "letmein"))
	assert.EqualValues(t, http.StatusUnauthorized, resp.Code)
	assert.EqualValues(t, 0, mockController.listCalled)
}

func TestGuardedRoutes_ValidCredentials(t *testing.T) {
	router, mockController := setupGuardedProjectsRouter()
	resp := performRequest(router, http.MethodPost, "/projects", project.NewProject{Name: "Apollo"}, basicAuthHeaders("admin", "passw0rd"))
	assert.EqualValues(t, http.StatusCreated, resp.Code)
	assert.EqualValues(t, 1, mockController.createCalled)
}

func TestGuardedRoutes_NilAuthLeavesRoutesOpen(t *testing.T) {
	engine := gin.New()
	mockController := mockProjectsController{}
	handler := ProjectsRoutesHandler{AuthSettings: nil, Controller: &mockController}
	handler.RegisterRoutes(engine)
	resp := performRequest(engine, http.MethodGet, "/projects", nil, nil)
	assert.EqualValues(t, http.StatusOK, resp.Code)
	assert.EqualValues(t, 1, mockController.listCalled)
}
