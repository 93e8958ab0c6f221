package project

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tasklink/tasklink/internal/api/models/common"
	"github.com/tasklink/tasklink/internal/api/models/project"
	"github.com/tasklink/tasklink/internal/domain/authz"
	"github.com/tasklink/tasklink/internal/domain/etag"
	"github.com/tasklink/tasklink/internal/domain/metadata"
	domainProject "github.com/tasklink/tasklink/internal/domain/project"
	"github.com/tasklink/tasklink/internal/domain/storage"
)

var ctx = context.Background()

var mockPrincipal = authz.Principal{
	ID:   uuid.MustParse("44444444-4444-4444-4444-444444444444"),
	Role: authz.RoleMember,
}

var validIfMatch = etag.Encode(metadata.Version{0x01})

func TestController_Create(t *testing.T) {
	mockService := &domainProject.MockProjectsService{}
	controller := New(mockService)
	created, apiErr := controller.Create(ctx, mockPrincipal, &project.NewProject{Name: "Apollo"})
	assert.Nil(t, apiErr)
	assert.EqualValues(t, domainProject.MockDomainProject.ID, created.ID)
	assert.EqualValues(t, 1, mockService.CreateCalled)
}

func TestController_Create_invalid(t *testing.T) {
	mockService := &domainProject.MockProjectsService{
		CreateOverride: func() (*domainProject.Project, error) {
			return nil, domainProject.InvalidField{Field: "name", Reason: "too short"}
		},
	}
	controller := New(mockService)
	_, apiErr := controller.Create(ctx, mockPrincipal, &project.NewProject{Name: "x"})
	assert.EqualValues(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestController_Get(t *testing.T) {
	mockService := &domainProject.MockProjectsService{}
	controller := New(mockService)
	retrieved, apiErr := controller.Get(ctx, domainProject.MockDomainProject.ID)
	assert.Nil(t, apiErr)
	assert.EqualValues(t, domainProject.MockDomainProject.ID, retrieved.ID)
	assert.EqualValues(t, 1, mockService.GetCalled)
}

func TestController_Get_notFound(t *testing.T) {
	id := uuid.New()
	mockService := &domainProject.MockProjectsService{
		GetOverride: func() (*domainProject.Project, error) {
			return nil, storage.NotFound{ID: id}
		},
	}
	controller := New(mockService)
	_, apiErr := controller.Get(ctx, id)
	assert.EqualValues(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestController_List(t *testing.T) {
	mockService := &domainProject.MockProjectsService{}
	controller := New(mockService)
	page, apiErr := controller.List(ctx, common.ListParams{Page: 1, PageSize: 20})
	assert.Nil(t, apiErr)
	assert.Len(t, page.Items, 1)
	assert.EqualValues(t, 1, page.Total)
	assert.EqualValues(t, 1, mockService.ListCalled)
}

func TestController_Update(t *testing.T) {
	mockService := &domainProject.MockProjectsService{}
	controller := New(mockService)
	updated, apiErr := controller.Update(ctx, mockPrincipal, domainProject.MockDomainProject.ID, validIfMatch, &project.ProjectUpdate{Name: "Apollo"})
	assert.Nil(t, apiErr)
	assert.EqualValues(t, domainProject.MockDomainProject.ID, updated.ID)
	assert.EqualValues(t, 1, mockService.UpdateCalled)
}

func TestController_Update_missingToken(t *testing.T) {
	mockService := &domainProject.MockProjectsService{}
	controller := New(mockService)
	_, apiErr := controller.Update(ctx, mockPrincipal, domainProject.MockDomainProject.ID, "", &project.ProjectUpdate{Name: "Apollo"})
	assert.EqualValues(t, http.StatusPreconditionRequired, apiErr.StatusCode)
	// The service is never consulted without a token
	assert.EqualValues(t, 0, mockService.UpdateCalled)
}

func TestController_Update_malformedToken(t *testing.T) {
	mockService := &domainProject.MockProjectsService{}
	controller := New(mockService)
	_, apiErr := controller.Update(ctx, mockPrincipal, domainProject.MockDomainProject.ID, "garbage", &project.ProjectUpdate{Name: "Apollo"})
	assert.EqualValues(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.EqualValues(t, 0, mockService.UpdateCalled)
}

func TestController_Update_conflict(t *testing.T) {
	id := uuid.New()
	mockService := &domainProject.MockProjectsService{
		UpdateOverride: func() (*domainProject.Project, error) {
			return nil, storage.VersionConflict{ID: id}
		},
	}
	controller := New(mockService)
	_, apiErr := controller.Update(ctx, mockPrincipal, id, validIfMatch, &project.ProjectUpdate{Name: "Apollo"})
	assert.EqualValues(t, http.StatusPreconditionFailed, apiErr.StatusCode)
}

func TestController_Delete(t *testing.T) {
	mockService := &domainProject.MockProjectsService{}
	controller := New(mockService)
	assert.Nil(t, controller.Delete(ctx, mockPrincipal, domainProject.MockDomainProject.ID))
	assert.EqualValues(t, 1, mockService.DeleteCalled)
}

func TestController_Delete_forbidden(t *testing.T) {
	mockService := &domainProject.MockProjectsService{
		DeleteOverride: func() error {
			return authz.Forbidden{Subject: mockPrincipal.ID}
		},
	}
	controller := New(mockService)
	apiErr := controller.Delete(ctx, mockPrincipal, domainProject.MockDomainProject.ID)
	assert.EqualValues(t, http.StatusForbidden, apiErr.StatusCode)
}

func Test_handleErr(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			"NotFound",
			storage.NotFound{ID: uuid.New()},
			http.StatusNotFound,
		},
		{
			"VersionConflict",
			storage.VersionConflict{ID: uuid.New()},
			http.StatusPreconditionFailed,
		},
		{
			"InvalidField",
			domainProject.InvalidField{Field: "name", Reason: "too short"},
			http.StatusBadRequest,
		},
		{
			"Missing token",
			etag.Missing{},
			http.StatusPreconditionRequired,
		},
		{
			"Malformed token",
			etag.Malformed{Raw: "garbage"},
			http.StatusBadRequest,
		},
		{
			"Forbidden",
			authz.Forbidden{Subject: uuid.New()},
			http.StatusForbidden,
		},
		{
			"InvalidPersistedData",
			storage.InvalidPersistedData{PersistedData: "{"},
			http.StatusInternalServerError,
		},
		{
			"anything else",
			fmt.Errorf("boom"),
			http.StatusInternalServerError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := handleErr(tt.err)
			assert.EqualValues(t, tt.wantStatus, apiErr.StatusCode)
			assert.NotEmpty(t, apiErr.Body.Message)
		})
	}
}
