package task

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tasklink/tasklink/internal/api/models/common"
	"github.com/tasklink/tasklink/internal/api/models/task"
	"github.com/tasklink/tasklink/internal/domain/authz"
	"github.com/tasklink/tasklink/internal/domain/etag"
	"github.com/tasklink/tasklink/internal/domain/metadata"
	"github.com/tasklink/tasklink/internal/domain/storage"
	domainTask "github.com/tasklink/tasklink/internal/domain/task"
)

var ctx = context.Background()

var mockPrincipal = authz.Principal{
	ID:   uuid.MustParse("44444444-4444-4444-4444-444444444444"),
	Role: authz.RoleMember,
}

var (
	mockProjectID = domainTask.MockDomainTask.ProjectID
	validIfMatch  = etag.Encode(metadata.Version{0x01})
)

func validUpdate() *task.TaskUpdate {
	return &task.TaskUpdate{
		Title:    "Ship it",
		Status:   string(domainTask.StatusInProgress),
		Priority: string(domainTask.PriorityHigh),
	}
}

func TestController_Create(t *testing.T) {
	mockService := &domainTask.MockTasksService{}
	controller := New(mockService)
	created, apiErr := controller.Create(ctx, mockPrincipal, mockProjectID, &task.NewTask{Title: "Ship it"})
	assert.Nil(t, apiErr)
	assert.EqualValues(t, domainTask.MockDomainTask.ID, created.ID)
	assert.EqualValues(t, 1, mockService.CreateCalled)
}

func TestController_Create_missingProject(t *testing.T) {
	projectID := uuid.New()
	mockService := &domainTask.MockTasksService{
		CreateOverride: func() (*domainTask.Task, error) {
			return nil, storage.NotFound{ID: projectID}
		},
	}
	controller := New(mockService)
	_, apiErr := controller.Create(ctx, mockPrincipal, projectID, &task.NewTask{Title: "Ship it"})
	assert.EqualValues(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestController_Get(t *testing.T) {
	mockService := &domainTask.MockTasksService{}
	controller := New(mockService)
	retrieved, apiErr := controller.Get(ctx, mockProjectID, domainTask.MockDomainTask.ID)
	assert.Nil(t, apiErr)
	assert.EqualValues(t, domainTask.MockDomainTask.ID, retrieved.ID)
	assert.EqualValues(t, 1, mockService.GetCalled)
}

func TestController_List(t *testing.T) {
	mockService := &domainTask.MockTasksService{}
	controller := New(mockService)
	page, apiErr := controller.List(ctx, mockProjectID, common.ListParams{Sort: domainTask.SortPriority})
	assert.Nil(t, apiErr)
	assert.Len(t, page.Items, 1)
	assert.EqualValues(t, 1, mockService.ListCalled)
}

func TestController_Update(t *testing.T) {
	mockService := &domainTask.MockTasksService{}
	controller := New(mockService)
	updated, apiErr := controller.Update(ctx, mockPrincipal, mockProjectID, domainTask.MockDomainTask.ID, validIfMatch, validUpdate())
	assert.Nil(t, apiErr)
	assert.EqualValues(t, domainTask.MockDomainTask.ID, updated.ID)
	assert.EqualValues(t, 1, mockService.UpdateCalled)
}

func TestController_Update_missingToken(t *testing.T) {
	mockService := &domainTask.MockTasksService{}
	controller := New(mockService)
	_, apiErr := controller.Update(ctx, mockPrincipal, mockProjectID, domainTask.MockDomainTask.ID, "", validUpdate())
	assert.EqualValues(t, http.StatusPreconditionRequired, apiErr.StatusCode)
	assert.EqualValues(t, 0, mockService.UpdateCalled)
}

func TestController_Update_malformedToken(t *testing.T) {
	mockService := &domainTask.MockTasksService{}
	controller := New(mockService)
	_, apiErr := controller.Update(ctx, mockPrincipal, mockProjectID, domainTask.MockDomainTask.ID, "garbage", validUpdate())
	assert.EqualValues(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.EqualValues(t, 0, mockService.UpdateCalled)
}

func TestController_Update_conflict(t *testing.T) {
	mockService := &domainTask.MockTasksService{
		UpdateOverride: func() (*domainTask.Task, error) {
			return nil, storage.VersionConflict{ID: domainTask.MockDomainTask.ID}
		},
	}
	controller := New(mockService)
	_, apiErr := controller.Update(ctx, mockPrincipal, mockProjectID, domainTask.MockDomainTask.ID, validIfMatch, validUpdate())
	assert.EqualValues(t, http.StatusPreconditionFailed, apiErr.StatusCode)
}

func TestController_Delete(t *testing.T) {
	mockService := &domainTask.MockTasksService{}
	controller := New(mockService)
	assert.Nil(t, controller.Delete(ctx, mockPrincipal, mockProjectID, domainTask.MockDomainTask.ID))
	assert.EqualValues(t, 1, mockService.DeleteCalled)
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
			domainTask.InvalidField{Field: "status", Reason: "not a valid status"},
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
