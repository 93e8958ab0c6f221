package comment

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tasklink/tasklink/internal/api/models/comment"
	"github.com/tasklink/tasklink/internal/api/models/common"
	"github.com/tasklink/tasklink/internal/domain/authz"
	domainComment "github.com/tasklink/tasklink/internal/domain/comment"
	"github.com/tasklink/tasklink/internal/domain/storage"
)

var ctx = context.Background()

var mockPrincipal = authz.Principal{
	ID:   domainComment.MockDomainComment.AuthorID,
	Role: authz.RoleMember,
}

func TestController_Create(t *testing.T) {
	mockService := &domainComment.MockCommentsService{}
	controller := New(mockService)
	created, apiErr := controller.Create(ctx, mockPrincipal, domainComment.MockDomainComment.TaskID, &comment.NewComment{Body: "nice"})
	assert.Nil(t, apiErr)
	assert.EqualValues(t, domainComment.MockDomainComment.ID, created.ID)
	assert.EqualValues(t, 1, mockService.CreateCalled)
}

func TestController_Create_missingTask(t *testing.T) {
	taskID := uuid.New()
	mockService := &domainComment.MockCommentsService{
		CreateOverride: func() (*domainComment.Comment, error) {
			return nil, storage.NotFound{ID: taskID}
		},
	}
	controller := New(mockService)
	_, apiErr := controller.Create(ctx, mockPrincipal, taskID, &comment.NewComment{Body: "nice"})
	assert.EqualValues(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestController_List(t *testing.T) {
	mockService := &domainComment.MockCommentsService{}
	controller := New(mockService)
	page, apiErr := controller.List(ctx, domainComment.MockDomainComment.TaskID, common.ListParams{})
	assert.Nil(t, apiErr)
	assert.Len(t, page.Items, 1)
	assert.EqualValues(t, 1, mockService.ListCalled)
}

func TestController_Delete(t *testing.T) {
	mockService := &domainComment.MockCommentsService{}
	controller := New(mockService)
	assert.Nil(t, controller.Delete(ctx, mockPrincipal, domainComment.MockDomainComment.ID))
	assert.EqualValues(t, 1, mockService.DeleteCalled)
}

func TestController_Delete_forbidden(t *testing.T) {
	stranger := authz.Principal{ID: uuid.New(), Role: authz.RoleMember}
	mockService := &domainComment.MockCommentsService{
		DeleteOverride: func() error {
			return authz.Forbidden{Subject: stranger.ID}
		},
	}
	controller := New(mockService)
	apiErr := controller.Delete(ctx, stranger, domainComment.MockDomainComment.ID)
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
			"InvalidField",
			domainComment.InvalidField{Field: "body", Reason: "must not be empty"},
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
